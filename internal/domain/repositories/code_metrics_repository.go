package repositories

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/entities"
)

// CodeMetricsRepository abstracts the line-counting collaborator. Analyze
// discovers the source files below roots, skipping paths matching any of the
// excluded globs, and reports blank/code/comment lines per file and language.
type CodeMetricsRepository interface {
	Analyze(ctx context.Context, roots []string, excluded []string) (*entities.CodeMetricsReport, error)
}
