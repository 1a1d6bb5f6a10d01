package entities

import (
	"errors"
	"fmt"
)

// Stage identifies which part of a mining or embedding run failed.
type Stage string

const (
	StageOpen          Stage = "open"
	StageTraversal     Stage = "traversal"
	StageDiff          Stage = "diff"
	StageRead          Stage = "read"
	StageOverflow      Stage = "overflow"
	StagePath          Stage = "path"
	StageMetrics       Stage = "metrics"
	StageSerialization Stage = "serialization"
	StageEmbedding     Stage = "embedding"
	StageVectorStore   Stage = "vector_store"
)

// MiningError is the single typed failure returned when a pass aborts.
// Path is set when the failure concerns one file or one commit.
type MiningError struct {
	Stage Stage
	Path  string
	Err   error
}

// NewMiningError wraps err with the failing stage and an optional path.
func NewMiningError(stage Stage, path string, err error) *MiningError {
	return &MiningError{Stage: stage, Path: path, Err: err}
}

func (e *MiningError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s failed for %q: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *MiningError) Unwrap() error { return e.Err }

// IsStage reports whether err (or anything it wraps) is a MiningError of the
// given stage.
func IsStage(err error, stage Stage) bool {
	var miningErr *MiningError
	if errors.As(err, &miningErr) {
		return miningErr.Stage == stage
	}
	return false
}
