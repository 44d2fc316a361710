package cmd

import (
	"context"
	"fmt"

	"caf/common"
	"caf/repository"
)

// LsTreeCmd lists the records of a commit's tree in name order.
type LsTreeCmd struct {
	Commit    string `short:"c" long:"commit" description:"commit hash or tag (defaults to HEAD)"`
	Recursive bool   `short:"r" long:"recursive" description:"descend into subtrees"`

	global *Options
}

func (c *LsTreeCmd) Execute(_ []string) error {
	repo, err := c.global.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	hash, err := repo.ResolveCommit(context.Background(), c.Commit)
	if err != nil {
		return err
	}
	commit, err := repo.LookupCommit(hash)
	if err != nil {
		return err
	}
	return c.list(repo, commit.Tree, "")
}

func (c *LsTreeCmd) list(repo *repository.Repository, hash common.Hash, prefix string) error {
	t, err := repo.LookupTree(hash)
	if err != nil {
		return err
	}
	for name, record := range t.Records() {
		if c.Recursive && record.Kind == common.KindTree {
			if err := c.list(repo, record.Hash, prefix+name+"/"); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(stdout, "%s %s\t%s%s\n", record.Kind, record.Hash, prefix, name)
	}
	return nil
}
