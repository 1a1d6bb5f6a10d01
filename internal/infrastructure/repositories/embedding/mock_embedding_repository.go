package embedding

import (
	"context"
	"hash/fnv"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

// MockEmbeddingRepository produces deterministic unit vectors derived from a
// hash of each token. It needs no network and is the default provider.
type MockEmbeddingRepository struct {
	dimension int
}

// NewMockEmbeddingRepository creates the offline provider.
func NewMockEmbeddingRepository(settings entities.EmbeddingSettings) (repositories.EmbeddingRepository, error) {
	dimension := settings.Dimension
	if dimension <= 0 {
		dimension = 384
	}
	return &MockEmbeddingRepository{dimension: dimension}, nil
}

func (r *MockEmbeddingRepository) Name() string { return "mock" }

func (r *MockEmbeddingRepository) Embed(ctx context.Context, tokens []string) ([][]float32, error) {
	vectors := make([][]float32, len(tokens))
	for i, token := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = r.vector(token)
	}
	return vectors, nil
}

func (r *MockEmbeddingRepository) vector(token string) []float32 {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(token))
	seed := hasher.Sum64()

	v := make([]float32, r.dimension)
	for i := range v {
		val := float32((seed+uint64(i)*7919)%10000) / 10000.0 //nolint:mnd // spread into [0,1)
		v[i] = val*2 - 1
	}
	return normalize(v)
}
