//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

// SpyEmbeddingRepository implements repositories.EmbeddingRepository as a
// configurable spy. Unless Vectors is set it returns one single-value vector
// per token holding the token's position.
type SpyEmbeddingRepository struct {
	ProviderName string
	Vectors      [][]float32
	EmbedErr     error
	EmbedCalls   [][]string
}

var _ repositories.EmbeddingRepository = (*SpyEmbeddingRepository)(nil)

func (s *SpyEmbeddingRepository) Name() string { return s.ProviderName }

func (s *SpyEmbeddingRepository) Embed(_ context.Context, tokens []string) ([][]float32, error) {
	s.EmbedCalls = append(s.EmbedCalls, tokens)
	if s.EmbedErr != nil {
		return nil, s.EmbedErr
	}
	if s.Vectors != nil {
		return s.Vectors, nil
	}
	vectors := make([][]float32, len(tokens))
	for i := range tokens {
		vectors[i] = []float32{float32(i)}
	}
	return vectors, nil
}
