package embedding

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sashabaranov/go-openai"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

const defaultOpenAIModel = openai.SmallEmbedding3

// OpenAIEmbeddingRepository calls the OpenAI embeddings API, or any server
// speaking the same protocol when a base URL is configured.
type OpenAIEmbeddingRepository struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
	batcher   *batcher
}

// NewOpenAIEmbeddingRepository creates a provider authenticated with the
// configured API key.
func NewOpenAIEmbeddingRepository(settings entities.EmbeddingSettings) (repositories.EmbeddingRepository, error) {
	if settings.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	config := openai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		config.BaseURL = settings.BaseURL
	}

	model := openai.EmbeddingModel(settings.Model)
	if settings.Model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIEmbeddingRepository{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		dimension: settings.Dimension,
		batcher:   newBatcher("openai", settings.BatchSize, settings.RequestsPerSecond),
	}, nil
}

func (r *OpenAIEmbeddingRepository) Name() string { return "openai" }

func (r *OpenAIEmbeddingRepository) Embed(ctx context.Context, tokens []string) ([][]float32, error) {
	return r.batcher.run(ctx, tokens, r.embedBatch)
}

func (r *OpenAIEmbeddingRepository) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	//nolint:exhaustruct // Minimal request with required fields only
	resp, err := r.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      batch,
		Model:      r.model,
		Dimensions: r.dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}

	// items carry the index of their input
	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vectors := make([][]float32, len(data))
	for i, item := range data {
		vectors[i] = item.Embedding
	}
	return vectors, nil
}
