package cmd

import (
	"context"
	"fmt"
)

// TagsCmd prints every tag with the commit it points at, sorted by name.
type TagsCmd struct {
	global *Options
}

func (c *TagsCmd) Execute(_ []string) error {
	repo, err := c.global.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	tags, err := repo.ListTags(context.Background())
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Fprintln(stdout, "No tags found")
		return nil
	}
	fmt.Fprintln(stdout, "Tags:")
	for _, tag := range tags {
		fmt.Fprintf(stdout, "  %s\t%s\n", tag.Name, tag.Commit)
	}
	return nil
}
