package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
	"github.com/rios0rios0/repominer/internal/infrastructure/telemetry"
)

// Mine is the interface for the mining pass.
type Mine interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MineOptions) (*entities.RepositoryInfo, error)
}

// MineOptions holds runtime options for a single mining pass.
type MineOptions struct {
	RepoPath string
	Name     string // If set, overrides the configured and detected repository name
}

// MineCommand builds the repository model: source file registry, commit
// history and the aggregated statistics and language distribution.
type MineCommand struct {
	history repositories.HistoryRepository
	metrics repositories.CodeMetricsRepository
}

// NewMineCommand creates a new MineCommand with the given collaborators.
func NewMineCommand(
	history repositories.HistoryRepository,
	metrics repositories.CodeMetricsRepository,
) *MineCommand {
	return &MineCommand{
		history: history,
		metrics: metrics,
	}
}

// Execute runs one full mining pass. Any failure aborts the pass and no
// partial model is returned.
func (it *MineCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts MineOptions,
) (*entities.RepositoryInfo, error) {
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	info, err := it.mine(ctx, settings, opts)
	if err != nil {
		recordFailure(err)
		return nil, err
	}
	return info, nil
}

func (it *MineCommand) mine(
	ctx context.Context,
	settings *entities.Settings,
	opts MineOptions,
) (*entities.RepositoryInfo, error) {
	root, err := filepath.Abs(opts.RepoPath)
	if err != nil {
		return nil, entities.NewMiningError(entities.StagePath, opts.RepoPath, err)
	}

	logger.Infof("Mining repository at %s", root)

	start := time.Now()
	files, err := it.buildRegistry(ctx, root, settings)
	if err != nil {
		return nil, err
	}
	telemetry.ObserveStage("registry", start)
	telemetry.RecordFiles(len(files))

	start = time.Now()
	history, err := it.history.Mine(ctx, root, settings.History)
	if err != nil {
		return nil, err
	}
	telemetry.ObserveStage("history", start)
	telemetry.RecordCommits(history.TotalCommits)

	for i := range files {
		change := history.ChangeFrequency(files[i].RelativePath)
		files[i].Statistics.NumCommits = change.FileCommits
		files[i].Statistics.Frequency = change.Frequency
	}

	name := opts.Name
	if name == "" {
		name = settings.Name
	}
	info := entities.NewRepositoryInfo(entities.ResolveRepositoryName(root, name), files, history)

	logger.WithFields(logger.Fields{
		"repository": info.Name,
		"files":      info.Statistics.NumFiles,
		"loc":        info.Statistics.LOC,
		"commits":    info.Statistics.NumCommits,
		"languages":  len(info.Languages),
	}).Info("Mining complete")
	return info, nil
}

// buildRegistry reads every file reported by the metrics collaborator once
// and creates its registry record. Records are sorted by relative path.
func (it *MineCommand) buildRegistry(
	ctx context.Context,
	root string,
	settings *entities.Settings,
) ([]entities.SourceFileInfo, error) {
	report, err := it.metrics.Analyze(ctx, []string{root}, settings.Exclude)
	if err != nil {
		return nil, entities.NewMiningError(entities.StageMetrics, root, err)
	}

	files := make([]entities.SourceFileInfo, len(report.Files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(settings.Workers, 1))
	for i, fileReport := range report.Files {
		group.Go(func() error {
			if ctxErr := groupCtx.Err(); ctxErr != nil {
				return ctxErr
			}
			record, recordErr := newSourceFile(root, fileReport)
			if recordErr != nil {
				return recordErr
			}
			files[i] = record
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelativePath < files[j].RelativePath })
	logger.Debugf("Registered %d source files", len(files))
	return files, nil
}

// newSourceFile reads one reported file and derives its identity, size and
// line statistics.
func newSourceFile(root string, report entities.FileReport) (entities.SourceFileInfo, error) {
	relative, err := relativePath(root, report.Path)
	if err != nil {
		return entities.SourceFileInfo{}, entities.NewMiningError(entities.StagePath, report.Path, err)
	}

	content, err := os.ReadFile(report.Path)
	if err != nil {
		return entities.SourceFileInfo{}, entities.NewMiningError(entities.StageRead, report.Path, err)
	}

	size, err := entities.CheckedSize(uint64(len(content)))
	if err != nil {
		return entities.SourceFileInfo{}, entities.NewMiningError(entities.StageOverflow, report.Path, err)
	}

	name := filepath.Base(report.Path)
	language := entities.NewLanguageType(report.Language, filepath.Ext(name))

	return entities.SourceFileInfo{
		Name:         name,
		RelativePath: relative,
		Language:     &language,
		ContentHash:  entities.ContentHash(content),
		Content:      content,
		Statistics: entities.Statistics{
			Size:     size,
			LOC:      report.Code,
			NumFiles: 1,
		},
	}, nil
}

// relativePath returns path relative to root with forward slashes, failing
// when path does not lie below root.
func relativePath(root, path string) (string, error) {
	relative, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if relative == "." || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q is not inside %q", path, root)
	}
	return filepath.ToSlash(relative), nil
}

func recordFailure(err error) {
	var miningErr *entities.MiningError
	if errors.As(err, &miningErr) {
		telemetry.RecordFailure(string(miningErr.Stage))
		return
	}
	telemetry.RecordFailure("unknown")
}
