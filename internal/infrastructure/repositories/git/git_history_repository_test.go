//go:build unit

package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/repominer/test/infrastructure/gitfixtures"
)

// threeCommitRepository creates main.go and util.go in a root commit, then
// changes util.go and finally main.go.
func threeCommitRepository(t *testing.T) *gitfixtures.Repository {
	t.Helper()
	fixture := gitfixtures.NewRepository(t)
	fixture.WriteFile("main.go", "package main\n").WriteFile("util.go", "package main\n")
	fixture.Commit("alice", "initial", "main.go", "util.go")
	fixture.WriteFile("util.go", "package main\n\nfunc helper() {}\n")
	fixture.Commit("bob", "add helper", "util.go")
	fixture.WriteFile("main.go", "package main\n\nfunc main() {}\n")
	fixture.Commit("alice", "add main", "main.go")
	return fixture
}

func TestHistoryRepository_Mine(t *testing.T) {
	t.Parallel()

	t.Run("should count commits and changes without the root commit", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := threeCommitRepository(t)
		repository := git.NewHistoryRepository()

		// when
		history, err := repository.Mine(context.Background(), fixture.Root, entities.HistoryOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, history.TotalCommits)
		mainFile := history.ChangeFrequency("main.go")
		assert.Equal(t, 1, mainFile.FileCommits)
		assert.InDelta(t, 100.0/3, mainFile.Frequency, 1e-9)
		assert.Equal(t, 1, history.ChangeFrequency("util.go").FileCommits)
	})

	t.Run("should count the root commit tree when asked to", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := threeCommitRepository(t)
		repository := git.NewHistoryRepository()
		opts := entities.HistoryOptions{IncludeRootCommit: true, TreeCacheSize: 2}

		// when
		history, err := repository.Mine(context.Background(), fixture.Root, opts)

		// then
		require.NoError(t, err)
		mainFile := history.ChangeFrequency("main.go")
		assert.Equal(t, 2, mainFile.FileCommits)
		assert.InDelta(t, 200.0/3, mainFile.Frequency, 1e-9)
		assert.Equal(t, 2, history.ChangeFrequency("util.go").FileCommits)
	})

	t.Run("should aggregate contributors by author name", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.WriteFile("a.go", "package a\n")
		fixture.Commit("alice", "first", "a.go")
		fixture.WriteFile("a.go", "package a\n\nvar x = 1\n")
		fixture.Commit("bob", "second", "a.go")
		fixture.WriteFile("a.go", "package a\n\nvar x = 2\n")
		last := fixture.Commit("alice", "third", "a.go")
		repository := git.NewHistoryRepository()

		// when
		history, err := repository.Mine(context.Background(), fixture.Root, entities.HistoryOptions{})

		// then
		require.NoError(t, err)
		require.Len(t, history.Contributors, 2)
		alice := history.Contributors[0]
		assert.Equal(t, "alice", alice.Name)
		assert.Equal(t, 2, alice.Statistics.NumCommits)
		assert.InDelta(t, 200.0/3, alice.PercentageContribution, 1e-9)
		assert.True(t, last.Equal(alice.LastContribution))
		assert.Equal(t, "bob", history.Contributors[1].Name)
	})

	t.Run("should attribute deletions to the old path", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.WriteFile("a.go", "package a\n").WriteFile("b.go", "package a\n")
		fixture.Commit("alice", "first", "a.go", "b.go")
		fixture.RemoveFile("b.go")
		fixture.Commit("alice", "drop b")
		repository := git.NewHistoryRepository()

		// when
		history, err := repository.Mine(context.Background(), fixture.Root, entities.HistoryOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, history.TotalCommits)
		assert.Equal(t, 1, history.ChangeFrequency("b.go").FileCommits)
		assert.Zero(t, history.ChangeFrequency("a.go").FileCommits)
	})

	t.Run("should count a rename as a deletion of the old path", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		body := "package a\n\nfunc A() int { return 1 }\n"
		fixture.WriteFile("keep.go", "package a\n").WriteFile("a.go", body)
		fixture.Commit("alice", "first", "keep.go", "a.go")
		fixture.RemoveFile("a.go").WriteFile("b.go", body)
		fixture.Commit("alice", "rename a to b", "b.go")
		fixture.WriteFile("a.go", "package a\n\nvar Again = true\n")
		fixture.Commit("bob", "recreate a", "a.go")
		repository := git.NewHistoryRepository()

		// when
		history, err := repository.Mine(context.Background(), fixture.Root, entities.HistoryOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, history.TotalCommits)
		assert.Equal(t, 2, history.ChangeFrequency("a.go").FileCommits)
		assert.Equal(t, 1, history.ChangeFrequency("b.go").FileCommits)
		assert.Zero(t, history.ChangeFrequency("keep.go").FileCommits)
	})

	t.Run("should return an empty history for a repository without commits", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		repository := git.NewHistoryRepository()

		// when
		history, err := repository.Mine(context.Background(), fixture.Root, entities.HistoryOptions{})

		// then
		require.NoError(t, err)
		assert.Zero(t, history.TotalCommits)
		assert.Empty(t, history.Contributors)
	})

	t.Run("should fail with an open error outside a repository", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		repository := git.NewHistoryRepository()

		// when
		_, err := repository.Mine(context.Background(), root, entities.HistoryOptions{})

		// then
		require.Error(t, err)
		assert.True(t, entities.IsStage(err, entities.StageOpen))
	})

	t.Run("should abort the walk when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := threeCommitRepository(t)
		repository := git.NewHistoryRepository()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		history, err := repository.Mine(ctx, fixture.Root, entities.HistoryOptions{})

		// then
		require.Error(t, err)
		assert.Nil(t, history)
		assert.True(t, entities.IsStage(err, entities.StageTraversal))
	})
}
