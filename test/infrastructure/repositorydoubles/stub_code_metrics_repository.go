//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

// StubCodeMetricsRepository implements repositories.CodeMetricsRepository
// with a canned report.
type StubCodeMetricsRepository struct {
	Report       *entities.CodeMetricsReport
	AnalyzeErr   error
	LastRoots    []string
	LastExcluded []string
}

var _ repositories.CodeMetricsRepository = (*StubCodeMetricsRepository)(nil)

func (s *StubCodeMetricsRepository) Analyze(
	_ context.Context, roots []string, excluded []string,
) (*entities.CodeMetricsReport, error) {
	s.LastRoots = roots
	s.LastExcluded = excluded
	if s.AnalyzeErr != nil {
		return nil, s.AnalyzeErr
	}
	if s.Report == nil {
		return &entities.CodeMetricsReport{Languages: map[string]entities.LanguageTotals{}}, nil
	}
	return s.Report, nil
}
