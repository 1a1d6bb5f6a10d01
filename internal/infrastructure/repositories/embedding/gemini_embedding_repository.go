package embedding

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

const defaultGeminiModel = "text-embedding-004"

// GeminiEmbeddingRepository calls the Gemini API embedContent method.
type GeminiEmbeddingRepository struct {
	client    *genai.Client
	model     string
	dimension int32
	batcher   *batcher
}

// NewGeminiEmbeddingRepository creates a provider for the Gemini API backend.
func NewGeminiEmbeddingRepository(settings entities.EmbeddingSettings) (repositories.EmbeddingRepository, error) {
	if settings.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	//nolint:exhaustruct // Minimal ClientConfig initialization with required fields only
	clientConfig := &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if settings.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = settings.BaseURL
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := settings.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiEmbeddingRepository{
		client:    client,
		model:     model,
		dimension: int32(settings.Dimension), //nolint:gosec // validated as a small positive value
		batcher:   newBatcher("gemini", settings.BatchSize, settings.RequestsPerSecond),
	}, nil
}

func (r *GeminiEmbeddingRepository) Name() string { return "gemini" }

func (r *GeminiEmbeddingRepository) Embed(ctx context.Context, tokens []string) ([][]float32, error) {
	return r.batcher.run(ctx, tokens, r.embedBatch)
}

func (r *GeminiEmbeddingRepository) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(batch))
	for _, token := range batch {
		contents = append(contents, genai.Text(token)...)
	}

	//nolint:exhaustruct // Minimal config with required fields only
	config := &genai.EmbedContentConfig{TaskType: "RETRIEVAL_DOCUMENT"}
	if r.dimension > 0 {
		config.OutputDimensionality = &r.dimension
	}

	resp, err := r.client.Models.EmbedContent(ctx, r.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini embeddings: %w", err)
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	for _, embedding := range resp.Embeddings {
		if embedding == nil {
			return nil, errors.New("gemini returned an empty embedding")
		}
		vectors = append(vectors, embedding.Values)
	}
	return vectors, nil
}
