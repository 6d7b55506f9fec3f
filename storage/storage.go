// Package storage persists analysis results keyed by project id. The file
// backend is the default for single-machine runs; the NATS backend shares a
// JetStream KV bucket across a fleet of analyzers. Both serve the report and
// reprocess-detection paths of the CLI.
package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/c360studio/semreview/workflow"
)

// Record is one persisted analysis run for a project.
type Record struct {
	ProjectID   string                   `json:"project_id"`
	ProjectName string                   `json:"project_name,omitempty"`
	SavedAt     time.Time                `json:"saved_at"`
	Result      *workflow.AnalysisResult `json:"result"`
}

// Store persists analysis records keyed by project id. Get and Delete return
// ErrNotFound when no record exists for the id.
type Store interface {
	Put(ctx context.Context, rec *Record) error
	Get(ctx context.Context, projectID string) (*Record, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, projectID string) error
}

// Project ids become file names and KV keys, so they are restricted to a
// character set both backends accept.
var validID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

func checkID(projectID string) error {
	if projectID == "" {
		return fmt.Errorf("project id is required")
	}
	if !validID.MatchString(projectID) {
		return fmt.Errorf("project id %q is not a valid storage key", projectID)
	}
	return nil
}
