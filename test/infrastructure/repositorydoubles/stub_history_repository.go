//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

// StubHistoryRepository implements repositories.HistoryRepository with a
// canned history.
type StubHistoryRepository struct {
	History   *entities.CommitHistory
	MineErr   error
	MinedPath string
	MineCalls int
}

var _ repositories.HistoryRepository = (*StubHistoryRepository)(nil)

func (s *StubHistoryRepository) Mine(
	_ context.Context, repoPath string, _ entities.HistoryOptions,
) (*entities.CommitHistory, error) {
	s.MineCalls++
	s.MinedPath = repoPath
	if s.MineErr != nil {
		return nil, s.MineErr
	}
	if s.History == nil {
		return entities.NewCommitHistory(0, nil, nil), nil
	}
	return s.History, nil
}
