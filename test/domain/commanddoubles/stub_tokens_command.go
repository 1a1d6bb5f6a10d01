//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/commands"
	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// StubTokensCommand is a stub implementation of commands.Tokens.
type StubTokensCommand struct {
	ExecuteCallCount int
	Tokens           []string
	ExecuteErr       error
	LastOpts         commands.MineOptions
}

var _ commands.Tokens = (*StubTokensCommand)(nil)

func (s *StubTokensCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.MineOptions,
) ([]string, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Tokens, s.ExecuteErr
}
