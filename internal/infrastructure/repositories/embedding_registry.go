package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repominer/internal/domain/repositories"
)

// EmbeddingFactory is a constructor function that creates an EmbeddingRepository from its settings.
type EmbeddingFactory func(settings entities.EmbeddingSettings) (domainRepos.EmbeddingRepository, error)

// EmbeddingRegistry manages all registered embedding provider implementations.
type EmbeddingRegistry struct {
	providers map[string]EmbeddingFactory
}

// NewEmbeddingRegistry creates an empty embedding registry.
func NewEmbeddingRegistry() *EmbeddingRegistry {
	return &EmbeddingRegistry{
		providers: make(map[string]EmbeddingFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "openai").
func (r *EmbeddingRegistry) Register(name string, factory EmbeddingFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for settings.Provider.
func (r *EmbeddingRegistry) Get(settings entities.EmbeddingSettings) (domainRepos.EmbeddingRepository, error) {
	factory, ok := r.providers[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown embedding provider: %q", settings.Provider)
	}
	return factory(settings)
}

// Names returns the sorted list of registered provider names.
func (r *EmbeddingRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
