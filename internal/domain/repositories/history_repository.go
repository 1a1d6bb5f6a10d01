package repositories

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// HistoryRepository abstracts the version-control collaborator. Mine walks the
// whole commit graph reachable from HEAD exactly once and returns the total
// commit count, per-path change counts and contributor aggregation.
// Any open, traversal or diff failure aborts the walk; no partial history is
// returned.
type HistoryRepository interface {
	Mine(ctx context.Context, repoPath string, opts entities.HistoryOptions) (*entities.CommitHistory, error)
}
