package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	lru "github.com/hashicorp/golang-lru/v2"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repominer/internal/domain/entities"
	"github.com/rios0rios0/repominer/internal/domain/repositories"
)

const defaultTreeCacheSize = 512

// HistoryRepository implements repositories.HistoryRepository on go-git.
type HistoryRepository struct{}

// NewHistoryRepository creates a go-git backed history miner.
func NewHistoryRepository() repositories.HistoryRepository {
	return &HistoryRepository{}
}

// Mine opens the repository at repoPath and walks every commit reachable from
// HEAD once. A repository without commits yields an empty history.
func (r *HistoryRepository) Mine(
	ctx context.Context,
	repoPath string,
	opts entities.HistoryOptions,
) (*entities.CommitHistory, error) {
	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return nil, entities.NewMiningError(entities.StageOpen, repoPath, err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		logger.Infof("Repository %s has no commits yet", repoPath)
		return entities.NewCommitHistory(0, nil, nil), nil
	}
	if err != nil {
		return nil, entities.NewMiningError(entities.StageTraversal, repoPath, fmt.Errorf("resolve HEAD: %w", err))
	}

	walker, err := newHistoryWalker(repo, opts)
	if err != nil {
		return nil, err
	}
	return walker.walk(ctx, head.Hash())
}

// historyWalker holds the state of one walk; it is not safe for concurrent use.
type historyWalker struct {
	repo        *gogit.Repository
	opts        entities.HistoryOptions
	trees       *lru.Cache[plumbing.Hash, *object.Tree]
	fileCommits map[string]int
	tally       *entities.ContributorTally
	total       int
}

func newHistoryWalker(repo *gogit.Repository, opts entities.HistoryOptions) (*historyWalker, error) {
	size := opts.TreeCacheSize
	if size <= 0 {
		size = defaultTreeCacheSize
	}
	trees, err := lru.New[plumbing.Hash, *object.Tree](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree cache: %w", err)
	}
	return &historyWalker{
		repo:        repo,
		opts:        opts,
		trees:       trees,
		fileCommits: make(map[string]int),
		tally:       entities.NewContributorTally(),
	}, nil
}

func (w *historyWalker) walk(ctx context.Context, from plumbing.Hash) (*entities.CommitHistory, error) {
	iter, err := w.repo.Log(&gogit.LogOptions{From: from})
	if err != nil {
		return nil, entities.NewMiningError(entities.StageTraversal, from.String(), err)
	}
	defer iter.Close()

	var visitErr error
	err = iter.ForEach(func(commit *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			visitErr = entities.NewMiningError(entities.StageTraversal, commit.Hash.String(), ctxErr)
			return visitErr
		}
		if commitErr := w.visit(ctx, commit); commitErr != nil {
			visitErr = commitErr
			return commitErr
		}
		return nil
	})
	if visitErr != nil {
		return nil, visitErr
	}
	if err != nil {
		return nil, entities.NewMiningError(entities.StageTraversal, from.String(), err)
	}

	logger.Debugf("Walked %d commits, %d paths changed", w.total, len(w.fileCommits))
	return entities.NewCommitHistory(w.total, w.fileCommits, w.tally.Contributors()), nil
}

func (w *historyWalker) visit(ctx context.Context, commit *object.Commit) error {
	w.total++
	w.tally.Record(commit.Author.Name, commit.Author.When)

	paths, err := w.changedPaths(ctx, commit)
	if err != nil {
		return entities.NewMiningError(entities.StageDiff, commit.Hash.String(), err)
	}
	for path := range paths {
		w.fileCommits[path]++
	}
	return nil
}

// changedPaths returns the set of paths a commit changed relative to its
// first parent. Each change contributes its new path, or its old path when
// the file was deleted.
func (w *historyWalker) changedPaths(ctx context.Context, commit *object.Commit) (map[string]struct{}, error) {
	paths := make(map[string]struct{})

	tree, err := w.tree(commit.TreeHash)
	if err != nil {
		return nil, err
	}

	if commit.NumParents() == 0 {
		if !w.opts.IncludeRootCommit {
			return paths, nil
		}
		err = tree.Files().ForEach(func(file *object.File) error {
			paths[file.Name] = struct{}{}
			return nil
		})
		return paths, err
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("load first parent: %w", err)
	}
	parentTree, err := w.tree(parent.TreeHash)
	if err != nil {
		return nil, err
	}

	// nil options disable rename detection, so a rename is a delete plus an add
	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, nil)
	if err != nil {
		return nil, fmt.Errorf("diff against %s: %w", parent.Hash, err)
	}
	for _, change := range changes {
		path := change.To.Name
		if path == "" {
			path = change.From.Name
		}
		paths[path] = struct{}{}
	}
	return paths, nil
}

func (w *historyWalker) tree(hash plumbing.Hash) (*object.Tree, error) {
	if tree, ok := w.trees.Get(hash); ok {
		return tree, nil
	}
	tree, err := w.repo.TreeObject(hash)
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", hash, err)
	}
	w.trees.Add(hash, tree)
	return tree, nil
}
