package embedding

import (
	"context"
	"fmt"
	"math"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/repominer/internal/infrastructure/telemetry"
)

// embedBatchFunc embeds one batch and must return exactly one vector per
// input, in input order.
type embedBatchFunc func(ctx context.Context, batch []string) ([][]float32, error)

// batcher splits a token sequence into fixed-size batches, throttles the
// requests and concatenates the results without reordering.
type batcher struct {
	provider string
	size     int
	limiter  *rate.Limiter
}

func newBatcher(provider string, size int, requestsPerSecond float64) *batcher {
	if size <= 0 {
		size = 1
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &batcher{
		provider: provider,
		size:     size,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

func (b *batcher) run(ctx context.Context, tokens []string, embed embedBatchFunc) ([][]float32, error) {
	vectors := make([][]float32, 0, len(tokens))
	for start := 0; start < len(tokens); start += b.size {
		end := min(start+b.size, len(tokens))
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		telemetry.RecordEmbeddingRequest(b.provider)
		batch, err := embed(ctx, tokens[start:end])
		if err != nil {
			return nil, fmt.Errorf("%s batch %d-%d: %w", b.provider, start, end, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("%s returned %d vectors for %d tokens", b.provider, len(batch), end-start)
		}
		vectors = append(vectors, batch...)
		logger.Debugf("Embedded %d/%d tokens with %s", end, len(tokens), b.provider)
	}
	return vectors, nil
}

// normalize scales v to unit length in place.
func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}
