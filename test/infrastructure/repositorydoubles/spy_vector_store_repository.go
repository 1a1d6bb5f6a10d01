//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

// SpyVectorStoreRepository implements repositories.VectorStoreRepository as
// an in-memory spy.
type SpyVectorStoreRepository struct {
	StoreName string
	SaveErr   error
	Saved     []*entities.Snapshot
	Closed    bool
}

var _ repositories.VectorStoreRepository = (*SpyVectorStoreRepository)(nil)

func (s *SpyVectorStoreRepository) Name() string { return s.StoreName }

func (s *SpyVectorStoreRepository) Save(_ context.Context, snapshot *entities.Snapshot) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saved = append(s.Saved, snapshot)
	return nil
}

func (s *SpyVectorStoreRepository) Load(_ context.Context, repository string) (*entities.Snapshot, error) {
	for i := len(s.Saved) - 1; i >= 0; i-- {
		if s.Saved[i].Repository.Name == repository {
			return s.Saved[i], nil
		}
	}
	return nil, entities.ErrSnapshotNotFound
}

func (s *SpyVectorStoreRepository) Close() error {
	s.Closed = true
	return nil
}
