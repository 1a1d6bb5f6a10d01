package codemetrics

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

// CodeMetricsRepository implements repositories.CodeMetricsRepository by
// walking the file tree and counting lines per recognised language.
type CodeMetricsRepository struct {
	workers int
}

// NewCodeMetricsRepository creates a line counter using one worker per CPU.
func NewCodeMetricsRepository() repositories.CodeMetricsRepository {
	return &CodeMetricsRepository{workers: runtime.NumCPU()}
}

type candidate struct {
	path string
	spec languageSpec
}

// Analyze discovers recognised source files below roots and counts their
// blank, code and comment lines. Excluded globs are matched against the
// slash-separated path relative to the root being walked, and against the
// base name for patterns without a slash.
func (r *CodeMetricsRepository) Analyze(
	ctx context.Context,
	roots []string,
	excluded []string,
) (*entities.CodeMetricsReport, error) {
	for _, pattern := range excluded {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var candidates []candidate
	for _, root := range roots {
		found, err := discover(root, excluded)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	files := make([]entities.FileReport, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(r.workers, 1))
	for i, c := range candidates {
		group.Go(func() error {
			src, err := os.ReadFile(c.path)
			if err != nil {
				return fmt.Errorf("failed to read %q: %w", c.path, err)
			}
			files[i] = entities.FileReport{
				Path:           c.path,
				Language:       c.spec.name,
				LanguageTotals: countLines(groupCtx, c.path, src, c.spec),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	report := &entities.CodeMetricsReport{
		Languages: make(map[string]entities.LanguageTotals),
		Files:     files,
	}
	for _, file := range files {
		totals := report.Languages[file.Language]
		totals.Blanks += file.Blanks
		totals.Code += file.Code
		totals.Comments += file.Comments
		report.Languages[file.Language] = totals
	}

	logger.Debugf("Counted %d files in %d languages", len(files), len(report.Languages))
	return report, nil
}

func discover(root string, excluded []string) ([]candidate, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root %q: %w", root, err)
	}

	var found []candidate
	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if entry.Name() == ".git" || (rel != "." && isExcluded(rel, excluded)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || isExcluded(rel, excluded) {
			return nil
		}
		if spec, ok := detectLanguage(path); ok {
			found = append(found, candidate{path: path, spec: spec})
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, walkErr)
	}
	return found, nil
}

func isExcluded(rel string, excluded []string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, pattern := range excluded {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
