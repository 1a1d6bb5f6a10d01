package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repominer/internal/infrastructure/repositories/codemetrics"
	"github.com/rios0rios0/repominer/internal/infrastructure/repositories/embedding"
	"github.com/rios0rios0/repominer/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/repominer/internal/infrastructure/repositories/vectorstore"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register the version-control and line-counting collaborators
	if err := container.Provide(git.NewHistoryRepository); err != nil {
		return err
	}
	if err := container.Provide(codemetrics.NewCodeMetricsRepository); err != nil {
		return err
	}

	// Register embedding registry with all provider factories
	if err := container.Provide(func() *EmbeddingRegistry {
		reg := NewEmbeddingRegistry()
		reg.Register("mock", embedding.NewMockEmbeddingRepository)
		reg.Register("openai", embedding.NewOpenAIEmbeddingRepository)
		reg.Register("gemini", embedding.NewGeminiEmbeddingRepository)
		reg.Register("ollama", embedding.NewOllamaEmbeddingRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register vector store registry with all store factories
	if err := container.Provide(func() *VectorStoreRegistry {
		reg := NewVectorStoreRegistry()
		reg.Register("none", vectorstore.NewNoneVectorStoreRepository)
		reg.Register("bbolt", vectorstore.NewBboltVectorStoreRepository)
		reg.Register("sqlite", vectorstore.NewSQLiteVectorStoreRepository)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
