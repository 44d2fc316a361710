package cmd

import (
	"context"
	"fmt"
)

type DeleteTagCmd struct {
	Name string `short:"n" long:"name" description:"tag name"`

	global *Options
}

func (c *DeleteTagCmd) Execute(_ []string) error {
	repo, err := c.global.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.DeleteTag(context.Background(), c.Name); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Tag %q deleted\n", c.Name)
	return nil
}
