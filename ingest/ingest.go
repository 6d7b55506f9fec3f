// Package ingest reads hackathon submissions from a workspace directory.
// Each project is a subdirectory holding a description.md and any number of
// review*.md files; both are markdown forms with optional YAML frontmatter.
// Parsing is deliberately forgiving: a submission that cannot be read is
// logged and skipped rather than failing a batch.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/c360studio/semreview/workflow"
)

// Section headings of the description form.
const (
	nameSection        = "Project Name"
	descriptionSection = "Project Description (max 400 words)"
	hackathonSection   = "Hackathon ID"
	workDoneSection    = "Explain the work you've done so far"
)

// Loader reads projects from a workspace root.
type Loader struct {
	root   string
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for skip and warning messages.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a loader over the given projects directory.
func New(root string, opts ...Option) *Loader {
	l := &Loader{
		root:   root,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Projects returns the ids of every project directory under the root that
// carries a description.md, sorted.
func (l *Loader) Projects() ([]string, error) {
	if _, err := os.Stat(l.root); err != nil {
		return nil, fmt.Errorf("projects directory %q: %w", l.root, err)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(l.root, "*", "description.md"))
	if err != nil {
		return nil, fmt.Errorf("glob projects under %q: %w", l.root, err)
	}

	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, filepath.Base(filepath.Dir(match)))
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads one project directory into a Project. A missing description
// file degrades to an id-named project, matching how incomplete submissions
// are treated; review files that cannot be read are skipped with a warning.
func (l *Loader) Load(projectID string) (*workflow.Project, error) {
	dir := filepath.Join(l.root, projectID)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("project directory %q: %w", dir, err)
	}

	project := l.loadDescription(projectID, filepath.Join(dir, "description.md"))
	reviews, err := l.loadReviews(dir)
	if err != nil {
		return nil, err
	}
	project.Reviews = reviews
	return project, nil
}

// LoadAll loads every discovered project. Projects that fail to load are
// logged and skipped so one broken directory does not sink a batch.
func (l *Loader) LoadAll() ([]*workflow.Project, error) {
	ids, err := l.Projects()
	if err != nil {
		return nil, err
	}

	projects := make([]*workflow.Project, 0, len(ids))
	for _, id := range ids {
		project, err := l.Load(id)
		if err != nil {
			l.logger.Warn("skipping project", "project_id", id, "error", err)
			continue
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (l *Loader) loadDescription(projectID, path string) *workflow.Project {
	project := &workflow.Project{ID: projectID, Name: projectID}

	content, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("description file missing, using defaults",
			"project_id", projectID, "path", path)
		return project
	}

	doc := parseDocument(content)
	if name := doc.section(nameSection); name != "" {
		project.Name = name
	}
	if name, ok := doc.frontmatterString("name"); ok && name != "" {
		project.Name = name
	}
	project.Description = doc.section(descriptionSection)
	project.WorkDone = doc.section(workDoneSection)
	project.HackathonID = doc.section(hackathonSection)
	if id, ok := doc.frontmatterString("hackathon_id"); ok && id != "" {
		project.HackathonID = id
	}
	return project
}

func (l *Loader) loadReviews(dir string) ([]*workflow.Review, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "review*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob reviews under %q: %w", dir, err)
	}
	sort.Strings(matches)

	reviews := make([]*workflow.Review, 0, len(matches))
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warn("skipping unreadable review", "path", path, "error", err)
			continue
		}

		review := parseReview(parseDocument(content))
		if review.Text == "" {
			l.logger.Warn("skipping review with no text", "path", path)
			continue
		}
		review.ID = uuid.NewString()

		l.logger.Debug("loaded review",
			"path", path,
			"reviewer", review.ReviewerName,
			"confidence", review.ConfidenceScore)
		reviews = append(reviews, review)
	}
	return reviews, nil
}
