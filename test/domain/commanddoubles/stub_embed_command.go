//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/commands"
	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// StubEmbedCommand is a stub implementation of commands.Embed.
type StubEmbedCommand struct {
	ExecuteCallCount int
	Snapshot         *entities.Snapshot
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.MineOptions
}

var _ commands.Embed = (*StubEmbedCommand)(nil)

func (s *StubEmbedCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.MineOptions,
) (*entities.Snapshot, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Snapshot, s.ExecuteErr
}
