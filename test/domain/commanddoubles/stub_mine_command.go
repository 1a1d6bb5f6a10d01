//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/commands"
	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// StubMineCommand is a stub implementation of commands.Mine.
type StubMineCommand struct {
	ExecuteCallCount int
	Result           *entities.RepositoryInfo
	ExecuteErr       error
	LastOpts         commands.MineOptions
}

var _ commands.Mine = (*StubMineCommand)(nil)

func (s *StubMineCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.MineOptions,
) (*entities.RepositoryInfo, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Result, nil
}
