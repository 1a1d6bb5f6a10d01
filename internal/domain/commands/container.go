package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewMineCommand); err != nil {
		return err
	}
	if err := container.Provide(NewTokensCommand); err != nil {
		return err
	}
	if err := container.Provide(NewEmbedCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *MineCommand) Mine {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *TokensCommand) Tokens {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *EmbedCommand) Embed {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
