package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "nomic-embed-text"
	ollamaTimeout        = 120 * time.Second
)

// OllamaEmbeddingRepository calls the embeddings endpoint of a local Ollama
// server, one prompt per request.
type OllamaEmbeddingRepository struct {
	baseURL    string
	model      string
	httpClient *http.Client
	batcher    *batcher
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

type ollamaErrorResponse struct {
	Error string `json:"error"`
}

// NewOllamaEmbeddingRepository creates a provider for the configured server.
func NewOllamaEmbeddingRepository(settings entities.EmbeddingSettings) (repositories.EmbeddingRepository, error) {
	baseURL := strings.TrimRight(settings.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	model := settings.Model
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaEmbeddingRepository{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: ollamaTimeout},
		batcher:    newBatcher("ollama", 1, settings.RequestsPerSecond),
	}, nil
}

func (r *OllamaEmbeddingRepository) Name() string { return "ollama" }

func (r *OllamaEmbeddingRepository) Embed(ctx context.Context, tokens []string) ([][]float32, error) {
	return r.batcher.run(ctx, tokens, func(ctx context.Context, batch []string) ([][]float32, error) {
		vector, err := r.embedOne(ctx, batch[0])
		if err != nil {
			return nil, err
		}
		return [][]float32{vector}, nil
	})
}

func (r *OllamaEmbeddingRepository) embedOne(ctx context.Context, prompt string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: r.model, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request (is Ollama running at %s?): %w", r.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ollamaErrorResponse
		if jsonErr := json.Unmarshal(payload, &errResp); jsonErr == nil && errResp.Error != "" {
			return nil, fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(payload))
	}

	var embedResp ollamaEmbedResponse
	if err = json.Unmarshal(payload, &embedResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(embedResp.Embedding) == 0 {
		return nil, errors.New("ollama returned empty embedding")
	}
	return embedResp.Embedding, nil
}
