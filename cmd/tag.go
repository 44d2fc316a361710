package cmd

import (
	"context"
	"fmt"
)

// TagCmd creates a tag at HEAD or at the given commit.
type TagCmd struct {
	Name   string `short:"n" long:"name" description:"tag name"`
	Commit string `short:"c" long:"commit" description:"commit hash or tag (defaults to HEAD)"`

	global *Options
}

func (c *TagCmd) Execute(_ []string) error {
	repo, err := c.global.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	hash, err := repo.CreateTag(context.Background(), c.Name, c.Commit)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Tag %q created at %s\n", c.Name, hash)
	return nil
}
