package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repominer/internal/domain/repositories"
)

// VectorStoreFactory opens a VectorStoreRepository from its settings.
type VectorStoreFactory func(settings entities.StoreSettings) (domainRepos.VectorStoreRepository, error)

// VectorStoreRegistry manages all registered vector store implementations.
type VectorStoreRegistry struct {
	stores map[string]VectorStoreFactory
}

// NewVectorStoreRegistry creates an empty vector store registry.
func NewVectorStoreRegistry() *VectorStoreRegistry {
	return &VectorStoreRegistry{
		stores: make(map[string]VectorStoreFactory),
	}
}

// Register adds a store factory under the given name (e.g. "bbolt").
func (r *VectorStoreRegistry) Register(name string, factory VectorStoreFactory) {
	r.stores[name] = factory
}

// Open returns an opened store for settings.Type. The caller owns it and must
// Close it.
func (r *VectorStoreRegistry) Open(settings entities.StoreSettings) (domainRepos.VectorStoreRepository, error) {
	factory, ok := r.stores[settings.Type]
	if !ok {
		return nil, fmt.Errorf("unknown store type: %q", settings.Type)
	}
	return factory(settings)
}

// Names returns the sorted list of registered store names.
func (r *VectorStoreRegistry) Names() []string {
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
