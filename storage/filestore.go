package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileStore persists records as JSON files under a directory, one file per
// project id.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory records are stored under.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(projectID string) string {
	return filepath.Join(s.dir, projectID+".json")
}

// Put writes the record, replacing any previous run for the same project.
// A zero SavedAt is stamped with the current time.
func (s *FileStore) Put(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec == nil || rec.Result == nil {
		return fmt.Errorf("record with a result is required")
	}
	if err := checkID(rec.ProjectID); err != nil {
		return err
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(s.path(rec.ProjectID), data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Get loads the record for a project id.
func (s *FileStore) Get(ctx context.Context, projectID string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkID(projectID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(projectID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record %s: %w", projectID, err)
	}
	return &rec, nil
}

// List returns the project ids with stored records, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list storage directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the record for a project id.
func (s *FileStore) Delete(ctx context.Context, projectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkID(projectID); err != nil {
		return err
	}

	if err := os.Remove(s.path(projectID)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
