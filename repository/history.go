package repository

import (
	"context"

	"caf/commit"
	"caf/common"
	"caf/tree"
)

type LogEntry struct {
	Hash   common.Hash
	Commit *commit.Commit
}

// Log walks the parent chain starting at from, newest first. A zero from
// starts at HEAD.
func (r *Repository) Log(ctx context.Context, from common.Hash) ([]LogEntry, error) {
	if from.IsZero() {
		head, err := r.HeadCommit(ctx)
		if err != nil {
			return nil, err
		}
		from = head
	}
	var entries []LogEntry
	for hash := from; !hash.IsZero(); {
		c, err := r.LookupCommit(hash)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LogEntry{Hash: hash, Commit: c})
		hash = c.Parent
	}
	return entries, nil
}

// Diff lists the paths that differ between the snapshots of two commits.
// Subtrees present on both sides are compared recursively and their
// changes are reported with slash separated paths.
func (r *Repository) Diff(from, to common.Hash) ([]tree.Change, error) {
	fromCommit, err := r.LookupCommit(from)
	if err != nil {
		return nil, err
	}
	toCommit, err := r.LookupCommit(to)
	if err != nil {
		return nil, err
	}
	return r.diffTrees(fromCommit.Tree, toCommit.Tree, "")
}

func (r *Repository) diffTrees(from, to common.Hash, prefix string) ([]tree.Change, error) {
	if from == to {
		return nil, nil
	}
	a, err := r.LookupTree(from)
	if err != nil {
		return nil, err
	}
	b, err := r.LookupTree(to)
	if err != nil {
		return nil, err
	}

	var changes []tree.Change
	for _, c := range tree.Diff(a, b) {
		if c.Type == tree.Modified && c.Old.Kind == common.KindTree && c.New.Kind == common.KindTree {
			nested, err := r.diffTrees(c.Old.Hash, c.New.Hash, prefix+c.Name+"/")
			if err != nil {
				return nil, err
			}
			changes = append(changes, nested...)
			continue
		}
		c.Name = prefix + c.Name
		changes = append(changes, c)
	}
	return changes, nil
}
