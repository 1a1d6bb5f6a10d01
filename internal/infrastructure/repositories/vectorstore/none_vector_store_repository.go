package vectorstore

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

// NoneVectorStoreRepository discards snapshots. It is selected when no store
// is configured.
type NoneVectorStoreRepository struct{}

// NewNoneVectorStoreRepository creates the discarding store.
func NewNoneVectorStoreRepository(_ entities.StoreSettings) (repositories.VectorStoreRepository, error) {
	return &NoneVectorStoreRepository{}, nil
}

func (r *NoneVectorStoreRepository) Name() string { return "none" }

func (r *NoneVectorStoreRepository) Save(_ context.Context, snapshot *entities.Snapshot) error {
	logger.Debugf("No vector store configured, discarding %d vectors", len(snapshot.Vectors))
	return nil
}

func (r *NoneVectorStoreRepository) Load(_ context.Context, _ string) (*entities.Snapshot, error) {
	return nil, entities.ErrSnapshotNotFound
}

func (r *NoneVectorStoreRepository) Close() error { return nil }
