package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"caf/commit"
	"caf/common"
	"caf/objectdb"
	"caf/tree"
)

// CommitWorkingDir snapshots the working directory and records it as a new
// commit on the current branch. An empty author falls back to the
// configured one. The snapshot objects and the commit are written in one
// batch, so a failed snapshot stores nothing.
func (r *Repository) CommitWorkingDir(ctx context.Context, author, message string) (common.Hash, error) {
	if author == "" {
		author = r.config.Author
	}
	batch := objectdb.NewBatch()
	root, err := r.snapshotDir(ctx, batch, r.workingDir)
	if err != nil {
		return common.Hash{}, fmt.Errorf("snapshot %s: %w", r.workingDir, err)
	}

	parent, err := r.HeadCommit(ctx)
	if err != nil && !errors.Is(err, ErrNoCommits) {
		return common.Hash{}, err
	}

	hash, err := batch.PutCommit(commit.New(root, parent, author, message))
	if err != nil {
		return common.Hash{}, err
	}
	if err := r.objects.WriteBatch(batch); err != nil {
		return common.Hash{}, err
	}
	head, err := r.refs.Head(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	if err := r.refs.Write(ctx, head, hash); err != nil {
		return common.Hash{}, err
	}
	r.logger.Info().Stringer("commit", hash).Stringer("tree", root).Str("author", author).
		Int("objects", batch.Len()).Msg("committed")
	return hash, nil
}

// snapshotDir stages every regular file below dir as a blob and every
// directory as a tree, returning the hash of the tree for dir.
func (r *Repository) snapshotDir(ctx context.Context, batch *objectdb.Batch, dir string) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return common.Hash{}, err
	}
	records := make(map[string]tree.Record, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		location := filepath.Join(dir, name)
		switch {
		case entry.IsDir():
			if name == DefaultRepoDir {
				continue
			}
			hash, err := r.snapshotDir(ctx, batch, location)
			if err != nil {
				return common.Hash{}, err
			}
			records[name] = tree.NewRecord(common.KindTree, hash, name)
		case entry.Type().IsRegular():
			content, err := os.ReadFile(location)
			if err != nil {
				return common.Hash{}, err
			}
			records[name] = tree.NewRecord(common.KindBlob, batch.PutBlob(content), name)
		default:
			r.logger.Debug().Str("path", location).Msg("skipping non-regular file")
		}
	}
	return batch.PutTree(tree.New(records))
}
