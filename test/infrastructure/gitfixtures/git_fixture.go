//go:build integration || unit || test

package gitfixtures //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repository is a throwaway Git repository rooted in a test temp directory.
type Repository struct {
	t    *testing.T
	Root string
	repo *gogit.Repository
	tick time.Time
}

// NewRepository initialises an empty repository in t.TempDir().
func NewRepository(t *testing.T) *Repository {
	t.Helper()
	root := t.TempDir()
	repo, err := gogit.PlainInit(root, false)
	require.NoError(t, err)
	return &Repository{
		t:    t,
		Root: root,
		repo: repo,
		tick: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WriteFile writes content to the slash-separated path, creating parents.
func (r *Repository) WriteFile(relativePath, content string) *Repository {
	r.t.Helper()
	full := filepath.Join(r.Root, filepath.FromSlash(relativePath))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o600))
	return r
}

// RemoveFile deletes the file from the working tree and the index.
func (r *Repository) RemoveFile(relativePath string) *Repository {
	r.t.Helper()
	worktree, err := r.repo.Worktree()
	require.NoError(r.t, err)
	_, err = worktree.Remove(relativePath)
	require.NoError(r.t, err)
	return r
}

// Commit stages the given paths and commits them as author. Each commit is
// one hour after the previous one; the author time is returned.
func (r *Repository) Commit(author, message string, paths ...string) time.Time {
	r.t.Helper()
	worktree, err := r.repo.Worktree()
	require.NoError(r.t, err)
	for _, p := range paths {
		_, err = worktree.Add(p)
		require.NoError(r.t, err)
	}

	r.tick = r.tick.Add(time.Hour)
	when := r.tick
	_, err = worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: author, Email: author + "@example.com", When: when},
	})
	require.NoError(r.t, err)
	return when
}
