package ontology

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// defaultDebounce batches rapid editor writes into one reload.
const defaultDebounce = 100 * time.Millisecond

// Store persists a graph as a YAML document and can hot-reload it when the
// file changes on disk.
type Store struct {
	path     string
	logger   *slog.Logger
	debounce time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for watch and reload events.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDebounce overrides the reload debounce interval.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewStore creates a store backed by the YAML file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:     path,
		logger:   slog.Default(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the graph from disk. A missing file seeds the store with the
// built-in ontology and persists it, so first runs work out of the box.
func (s *Store) Load() (*Graph, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		g := Default()
		if saveErr := s.Save(g); saveErr != nil {
			return nil, fmt.Errorf("seed ontology store: %w", saveErr)
		}
		s.logger.Info("seeded ontology store with built-in defaults", "path", s.path)
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ontology store: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse ontology store: %w", err)
	}

	g, err := New(doc)
	if err != nil {
		return nil, fmt.Errorf("load ontology store: %w", err)
	}
	return g, nil
}

// Save writes the graph's current contents to disk, creating parent
// directories as needed.
func (s *Store) Save(g *Graph) error {
	data, err := yaml.Marshal(g.Document())
	if err != nil {
		return fmt.Errorf("marshal ontology: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create ontology dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write ontology store: %w", err)
	}
	return nil
}

// Watch reloads the graph whenever the store file changes, until ctx is
// cancelled. Reload failures are logged and the graph keeps its previous
// contents, so a half-saved edit never takes down running pipelines.
// Watch blocks; run it on its own goroutine.
func (s *Store) Watch(ctx context.Context, g *Graph) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create ontology watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors typically replace files
	// via rename, which drops file-level watches.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch ontology dir %s: %w", dir, err)
	}

	s.logger.Debug("watching ontology store", "path", s.path, "debounce", s.debounce)

	ticker := time.NewTicker(s.debounce)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			dirty = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("ontology watch error", "error", err)

		case <-ticker.C:
			if !dirty {
				continue
			}
			dirty = false
			if err := s.reload(g); err != nil {
				s.logger.Warn("ontology reload failed, keeping previous contents",
					"path", s.path,
					"error", err)
				continue
			}
			s.logger.Info("ontology reloaded", "path", s.path)
		}
	}
}

func (s *Store) reload(g *Graph) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read ontology store: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse ontology store: %w", err)
	}
	return g.Reload(doc)
}
