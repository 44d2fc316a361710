package cmd

import (
	"context"
	"fmt"

	"caf/repository"
)

// InitCmd creates a repository in the working directory.
type InitCmd struct {
	global *Options
}

func (c *InitCmd) Execute(_ []string) error {
	logger, err := c.global.logger(nil)
	if err != nil {
		return err
	}
	repo, err := repository.Init(context.Background(), c.global.Dir, repository.WithLogger(logger))
	if err != nil {
		return err
	}
	defer repo.Close()
	fmt.Fprintf(stdout, "Initialized empty repository in %s\n", repo.RepoDir())
	return nil
}
