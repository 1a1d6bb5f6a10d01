package commands

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	infraRepos "github.com/rios0rios0/repominer/internal/infrastructure/repositories"
	"github.com/rios0rios0/repominer/internal/infrastructure/telemetry"
)

// Embed is the interface for the embed command.
type Embed interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MineOptions) (*entities.Snapshot, error)
}

// EmbedCommand orchestrates the full pipeline:
// mine -> prepare tokens -> embed -> store.
type EmbedCommand struct {
	mine       Mine
	embeddings *infraRepos.EmbeddingRegistry
	stores     *infraRepos.VectorStoreRegistry
}

// NewEmbedCommand creates a new EmbedCommand with the given registries.
func NewEmbedCommand(
	mine Mine,
	embeddings *infraRepos.EmbeddingRegistry,
	stores *infraRepos.VectorStoreRegistry,
) *EmbedCommand {
	return &EmbedCommand{
		mine:       mine,
		embeddings: embeddings,
		stores:     stores,
	}
}

// Execute mines the repository, hands its tokens once to the configured
// embedding provider and saves the resulting snapshot.
func (it *EmbedCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts MineOptions,
) (*entities.Snapshot, error) {
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	repo, err := it.mine.Execute(ctx, settings, opts)
	if err != nil {
		return nil, err
	}

	snapshot, err := it.embed(ctx, settings, repo)
	if err != nil {
		recordFailure(err)
		return nil, err
	}
	return snapshot, nil
}

func (it *EmbedCommand) embed(
	ctx context.Context,
	settings *entities.Settings,
	repo *entities.RepositoryInfo,
) (*entities.Snapshot, error) {
	tokens, err := entities.PrepareTokens(repo)
	if err != nil {
		return nil, err
	}

	provider, err := it.embeddings.Get(settings.Embedding)
	if err != nil {
		return nil, entities.NewMiningError(entities.StageEmbedding, "", err)
	}

	logger.Infof("Embedding %d tokens with %s", len(tokens), provider.Name())
	start := time.Now()
	vectors, err := provider.Embed(ctx, tokens)
	if err != nil {
		return nil, entities.NewMiningError(entities.StageEmbedding, "", err)
	}
	telemetry.ObserveStage("embedding", start)
	telemetry.RecordTokens(len(tokens))

	snapshot, err := entities.NewSnapshot(repo, tokens, vectors)
	if err != nil {
		return nil, entities.NewMiningError(entities.StageEmbedding, "", err)
	}

	if err = it.save(ctx, settings.Store, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (it *EmbedCommand) save(ctx context.Context, settings entities.StoreSettings, snapshot *entities.Snapshot) error {
	store, err := it.stores.Open(settings)
	if err != nil {
		return entities.NewMiningError(entities.StageVectorStore, settings.Path, err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warnf("Failed to close %s store: %v", store.Name(), closeErr)
		}
	}()

	start := time.Now()
	if err = store.Save(ctx, snapshot); err != nil {
		return entities.NewMiningError(entities.StageVectorStore, settings.Path, err)
	}
	telemetry.ObserveStage("store", start)
	telemetry.RecordVectors(len(snapshot.Vectors))

	logger.Infof("Saved %d vectors of %s to %s store", len(snapshot.Vectors), snapshot.Repository.Name, store.Name())
	return nil
}
