package cmd

import (
	"context"
	"fmt"
)

// DiffCmd prints the paths that changed between two commits.
type DiffCmd struct {
	From string `long:"from" description:"older commit hash or tag" required:"yes"`
	To   string `long:"to" description:"newer commit hash or tag (defaults to HEAD)"`

	global *Options
}

func (c *DiffCmd) Execute(_ []string) error {
	repo, err := c.global.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()
	from, err := repo.ResolveCommit(ctx, c.From)
	if err != nil {
		return err
	}
	to, err := repo.ResolveCommit(ctx, c.To)
	if err != nil {
		return err
	}
	changes, err := repo.Diff(from, to)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Fprintln(stdout, "No changes")
		return nil
	}
	for _, change := range changes {
		fmt.Fprintln(stdout, change)
	}
	return nil
}
