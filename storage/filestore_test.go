package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semreview/workflow"
)

func testRecord(projectID string) *Record {
	return &Record{
		ProjectID:   projectID,
		ProjectName: "Cluster Billing",
		Result: &workflow.AnalysisResult{
			FeedbackScores: map[string]float64{"technical_feasibility": 4.2},
			OverallScore:   4.2,
			FinalReview:    "Solid work.",
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	rec := testRecord("cluster-billing")
	require.NoError(t, store.Put(ctx, rec))
	assert.False(t, rec.SavedAt.IsZero(), "Put should stamp SavedAt")

	got, err := store.Get(ctx, "cluster-billing")
	require.NoError(t, err)
	assert.Equal(t, "cluster-billing", got.ProjectID)
	assert.Equal(t, "Cluster Billing", got.ProjectName)
	require.NotNil(t, got.Result)
	assert.Equal(t, 4.2, got.Result.FeedbackScores["technical_feasibility"])
	assert.Equal(t, "Solid work.", got.Result.FinalReview)
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "never-analyzed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreList(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testRecord("zeta")))
	require.NoError(t, store.Put(ctx, testRecord("alpha")))

	// Stray files in the directory are not records.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, ids)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testRecord("cluster-billing")))
	require.NoError(t, store.Delete(ctx, "cluster-billing"))

	_, err = store.Get(ctx, "cluster-billing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "cluster-billing"), ErrNotFound)
}

func TestFileStorePutValidation(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("nil result", func(t *testing.T) {
		err := store.Put(ctx, &Record{ProjectID: "p1"})
		assert.ErrorContains(t, err, "record with a result is required")
	})

	t.Run("bad project id", func(t *testing.T) {
		rec := testRecord("../escape")
		assert.ErrorContains(t, store.Put(ctx, rec), "not a valid storage key")
	})
}

func TestFileStoreHonorsContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, testRecord("p1")), context.Canceled)
	_, err = store.Get(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"simple slug", "cluster-billing", true},
		{"dots and underscores", "team_4.entry-2", true},
		{"single char", "a", true},
		{"empty", "", false},
		{"path separator", "a/b", false},
		{"parent escape", "..", false},
		{"leading dot", ".hidden", false},
		{"space", "my project", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkID(tt.id)
			if tt.ok && err != nil {
				t.Errorf("checkID(%q) = %v, want nil", tt.id, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("checkID(%q) = nil, want error", tt.id)
			}
		})
	}
}
