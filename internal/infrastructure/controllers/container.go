package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewMineController); err != nil {
		return err
	}
	if err := container.Provide(NewTokensController); err != nil {
		return err
	}
	if err := container.Provide(NewEmbedController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	mineController *MineController,
	tokensController *TokensController,
	embedController *EmbedController,
) *[]entities.Controller {
	return &[]entities.Controller{
		mineController,
		tokensController,
		embedController,
	}
}
