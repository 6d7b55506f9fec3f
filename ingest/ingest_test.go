package ingest

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptionDoc = `# Project Name

Cluster Billing

## Project Description (max 400 words)

Reconciles usage across tenants.

## Hackathon ID

hack-2026

## Explain the work you've done so far

Built the metering pipeline.
`

const reviewDoc = `## Reviewer name

Jane Doe

## Confidence score (0-100)

88

## Text review of the project (max 400 words)

Strong data model.
`

func writeProject(t *testing.T, root, id string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestLoaderProjects(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "zeta", map[string]string{"description.md": descriptionDoc})
	writeProject(t, root, "alpha", map[string]string{"description.md": descriptionDoc})
	writeProject(t, root, "no-description", map[string]string{"notes.txt": "scratch"})

	loader := New(root)
	ids, err := loader.Projects()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, ids)
}

func TestLoaderProjectsMissingRoot(t *testing.T) {
	loader := New(filepath.Join(t.TempDir(), "nope"))
	_, err := loader.Projects()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects directory")
}

func TestLoaderLoad(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "cluster-billing", map[string]string{
		"description.md": descriptionDoc,
		"review1.md":     reviewDoc,
		"review2.md": "## Reviewer name\n\nRaj Patel\n\n" +
			"## Confidence score (0-100)\n\n45\n\n" +
			"## Text review of the project (max 400 words)\n\nNice demo.\n",
		"notes.md": "# Not a review\n\nIgnored.\n",
	})

	loader := New(root)
	project, err := loader.Load("cluster-billing")
	require.NoError(t, err)

	assert.Equal(t, "cluster-billing", project.ID)
	assert.Equal(t, "Cluster Billing", project.Name)
	assert.Equal(t, "Reconciles usage across tenants.", project.Description)
	assert.Equal(t, "hack-2026", project.HackathonID)
	assert.Equal(t, "Built the metering pipeline.", project.WorkDone)

	require.Len(t, project.Reviews, 2)
	assert.Equal(t, "Jane Doe", project.Reviews[0].ReviewerName)
	assert.Equal(t, 88, project.Reviews[0].ConfidenceScore)
	assert.Equal(t, "Raj Patel", project.Reviews[1].ReviewerName)
	assert.Equal(t, 45, project.Reviews[1].ConfidenceScore)

	assert.NotEmpty(t, project.Reviews[0].ID)
	assert.NotEqual(t, project.Reviews[0].ID, project.Reviews[1].ID)
	for _, review := range project.Reviews {
		assert.False(t, review.IsArtificial)
	}
}

func TestLoaderLoadMissingDescription(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "bare", map[string]string{"review1.md": reviewDoc})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	loader := New(root, WithLogger(logger))
	project, err := loader.Load("bare")
	require.NoError(t, err)

	assert.Equal(t, "bare", project.ID)
	assert.Equal(t, "bare", project.Name)
	assert.Empty(t, project.Description)
	require.Len(t, project.Reviews, 1)
	assert.Contains(t, buf.String(), "description file missing")
}

func TestLoaderLoadMissingDirectory(t *testing.T) {
	loader := New(t.TempDir())
	_, err := loader.Load("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project directory")
}

func TestLoaderSkipsReviewWithoutText(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "proj", map[string]string{
		"description.md": descriptionDoc,
		"review1.md":     reviewDoc,
		"review2.md":     "## Reviewer name\n\nNo Text Given\n",
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	loader := New(root, WithLogger(logger))
	project, err := loader.Load("proj")
	require.NoError(t, err)

	require.Len(t, project.Reviews, 1)
	assert.Equal(t, "Jane Doe", project.Reviews[0].ReviewerName)
	assert.Contains(t, buf.String(), "skipping review with no text")
}

func TestLoaderLoadAll(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "beta", map[string]string{
		"description.md": descriptionDoc,
		"review1.md":     reviewDoc,
	})
	writeProject(t, root, "acme", map[string]string{
		"description.md": descriptionDoc,
	})

	loader := New(root)
	projects, err := loader.LoadAll()
	require.NoError(t, err)

	require.Len(t, projects, 2)
	assert.Equal(t, "acme", projects[0].ID)
	assert.Equal(t, "beta", projects[1].ID)
	assert.Empty(t, projects[0].Reviews)
	assert.Len(t, projects[1].Reviews, 1)
}
