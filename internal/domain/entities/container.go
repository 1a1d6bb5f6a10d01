package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// The container only holds the built-in defaults; settings read from a config
// file are loaded per invocation by the controllers layer.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(DefaultSettings)
}
