package repositories

import "context"

// EmbeddingRepository abstracts an embedding provider (OpenAI, Gemini, Ollama, etc.).
// Embed returns exactly one vector per token, in token order. Implementations
// may batch requests internally but never reorder them.
type EmbeddingRepository interface {
	// Name returns the provider identifier (e.g. "openai", "ollama").
	Name() string

	Embed(ctx context.Context, tokens []string) ([][]float32, error)
}
