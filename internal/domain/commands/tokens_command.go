package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// Tokens is the interface for the token preparation command.
type Tokens interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MineOptions) ([]string, error)
}

// TokensCommand mines a repository and flattens it into embedding tokens
// without calling any provider.
type TokensCommand struct {
	mine Mine
}

// NewTokensCommand creates a new TokensCommand.
func NewTokensCommand(mine Mine) *TokensCommand {
	return &TokensCommand{mine: mine}
}

// Execute returns the token sequence of the mined repository, in registry
// order.
func (it *TokensCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts MineOptions,
) ([]string, error) {
	repo, err := it.mine.Execute(ctx, settings, opts)
	if err != nil {
		return nil, err
	}

	tokens, err := entities.PrepareTokens(repo)
	if err != nil {
		recordFailure(err)
		return nil, err
	}

	logger.Infof("Prepared %d tokens from %d files", len(tokens), len(repo.SourceFiles))
	return tokens, nil
}
