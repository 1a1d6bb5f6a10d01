package entities

import (
	"errors"
	"fmt"
)

// ErrSnapshotNotFound is returned by vector stores holding no snapshot for a
// repository.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is one embedded mining pass: the repository document, its token
// sequence and one vector per token, in token order.
type Snapshot struct {
	Repository *RepositoryInfo
	Tokens     []string
	Vectors    [][]float32
}

// NewSnapshot pairs tokens with their vectors, rejecting mismatched lengths.
func NewSnapshot(repo *RepositoryInfo, tokens []string, vectors [][]float32) (*Snapshot, error) {
	if len(tokens) != len(vectors) {
		return nil, fmt.Errorf("got %d vectors for %d tokens", len(vectors), len(tokens))
	}
	return &Snapshot{Repository: repo, Tokens: tokens, Vectors: vectors}, nil
}
