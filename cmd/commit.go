package cmd

import (
	"context"
	"fmt"
)

// CommitCmd snapshots the working directory.
type CommitCmd struct {
	Author  string `short:"a" long:"author" description:"commit author (defaults to config author)"`
	Message string `short:"m" long:"message" description:"commit message" required:"yes"`

	global *Options
}

func (c *CommitCmd) Execute(_ []string) error {
	repo, err := c.global.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	hash, err := repo.CommitWorkingDir(context.Background(), c.Author, c.Message)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Commit created: %s\n", hash)
	return nil
}
