package repositories

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// VectorStoreRepository persists embedded snapshots. A snapshot is
// self-contained: the repository document is stored alongside the vectors.
// Saving a snapshot replaces any previous one of the same repository name.
type VectorStoreRepository interface {
	// Name returns the store identifier (e.g. "bbolt", "sqlite").
	Name() string

	Save(ctx context.Context, snapshot *entities.Snapshot) error

	// Load returns the last snapshot saved under the repository name.
	Load(ctx context.Context, repository string) (*entities.Snapshot, error)

	Close() error
}
