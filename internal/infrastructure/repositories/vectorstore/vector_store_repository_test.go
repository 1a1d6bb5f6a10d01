//go:build unit

package vectorstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
	"github.com/rios0rios0/repominer/internal/infrastructure/repositories/vectorstore"
	"github.com/rios0rios0/repominer/test/domain/entitybuilders"
)

type storeFactory func(entities.StoreSettings) (repositories.VectorStoreRepository, error)

func newSnapshot(t *testing.T, name string, tokens []string) *entities.Snapshot {
	t.Helper()
	files := []entities.SourceFileInfo{
		entitybuilders.NewSourceFileBuilder().WithRelativePath("cmd/main.go").WithLOC(3).BuildSourceFile(),
	}
	repo := entities.NewRepositoryInfo(name, files, entities.NewCommitHistory(2, nil, nil))
	vectors := make([][]float32, len(tokens))
	for i := range tokens {
		vectors[i] = []float32{float32(i), -0.5, 0.25}
	}
	snapshot, err := entities.NewSnapshot(repo, tokens, vectors)
	require.NoError(t, err)
	return snapshot
}

func TestPersistentVectorStores(t *testing.T) {
	t.Parallel()

	stores := map[string]storeFactory{
		"bbolt":  vectorstore.NewBboltVectorStoreRepository,
		"sqlite": vectorstore.NewSQLiteVectorStoreRepository,
	}

	for name, factory := range stores {
		t.Run("should round trip a snapshot in "+name, func(t *testing.T) {
			t.Parallel()

			// given
			store, err := factory(entities.StoreSettings{Type: name, Path: filepath.Join(t.TempDir(), "nested", "vectors.db")})
			require.NoError(t, err)
			defer func() { _ = store.Close() }()
			snapshot := newSnapshot(t, "example.com/demo", []string{"t0", "t1", "t2"})

			// when
			saveErr := store.Save(context.Background(), snapshot)
			loaded, loadErr := store.Load(context.Background(), "example.com/demo")

			// then
			require.NoError(t, saveErr)
			require.NoError(t, loadErr)
			assert.Equal(t, name, store.Name())
			assert.Equal(t, snapshot.Tokens, loaded.Tokens)
			assert.Equal(t, snapshot.Vectors, loaded.Vectors)
			assert.Equal(t, "example.com/demo", loaded.Repository.Name)
			assert.Equal(t, snapshot.Repository.Statistics, loaded.Repository.Statistics)
			require.Len(t, loaded.Repository.SourceFiles, 1)
			assert.Equal(t, "cmd/main.go", loaded.Repository.SourceFiles[0].RelativePath)
		})

		t.Run("should replace the previous snapshot in "+name, func(t *testing.T) {
			t.Parallel()

			// given
			store, err := factory(entities.StoreSettings{Type: name, Path: filepath.Join(t.TempDir(), "vectors.db")})
			require.NoError(t, err)
			defer func() { _ = store.Close() }()
			require.NoError(t, store.Save(context.Background(), newSnapshot(t, "demo", []string{"a", "b", "c"})))

			// when
			saveErr := store.Save(context.Background(), newSnapshot(t, "demo", []string{"z"}))
			loaded, loadErr := store.Load(context.Background(), "demo")

			// then
			require.NoError(t, saveErr)
			require.NoError(t, loadErr)
			assert.Equal(t, []string{"z"}, loaded.Tokens)
		})

		t.Run("should report a missing snapshot in "+name, func(t *testing.T) {
			t.Parallel()

			// given
			store, err := factory(entities.StoreSettings{Type: name, Path: filepath.Join(t.TempDir(), "vectors.db")})
			require.NoError(t, err)
			defer func() { _ = store.Close() }()

			// when
			_, loadErr := store.Load(context.Background(), "unknown")

			// then
			require.ErrorIs(t, loadErr, entities.ErrSnapshotNotFound)
		})

		t.Run("should keep snapshots of different repositories apart in "+name, func(t *testing.T) {
			t.Parallel()

			// given
			store, err := factory(entities.StoreSettings{Type: name, Path: filepath.Join(t.TempDir(), "vectors.db")})
			require.NoError(t, err)
			defer func() { _ = store.Close() }()
			require.NoError(t, store.Save(context.Background(), newSnapshot(t, "first", []string{"a"})))

			// when
			saveErr := store.Save(context.Background(), newSnapshot(t, "second", []string{"b", "c"}))
			first, firstErr := store.Load(context.Background(), "first")

			// then
			require.NoError(t, saveErr)
			require.NoError(t, firstErr)
			assert.Equal(t, []string{"a"}, first.Tokens)
		})
	}
}

func TestNoneVectorStoreRepository(t *testing.T) {
	t.Parallel()

	t.Run("should discard snapshots", func(t *testing.T) {
		t.Parallel()

		// given
		store, err := vectorstore.NewNoneVectorStoreRepository(entities.StoreSettings{})
		require.NoError(t, err)

		// when
		saveErr := store.Save(context.Background(), newSnapshot(t, "demo", []string{"a"}))
		_, loadErr := store.Load(context.Background(), "demo")

		// then
		require.NoError(t, saveErr)
		require.ErrorIs(t, loadErr, entities.ErrSnapshotNotFound)
		assert.NoError(t, store.Close())
	})
}
