package cmd

import (
	"context"
	"fmt"
	"time"

	"caf/common"
)

type LogCmd struct {
	global *Options
}

func (c *LogCmd) Execute(_ []string) error {
	repo, err := c.global.openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	entries, err := repo.Log(context.Background(), common.Hash{})
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Fprintf(stdout, "commit %s\n", entry.Hash)
		fmt.Fprintf(stdout, "Author: %s\n", entry.Commit.Author)
		fmt.Fprintf(stdout, "Date:   %s\n\n", entry.Commit.Time().Format(time.RFC1123Z))
		fmt.Fprintf(stdout, "    %s\n\n", entry.Commit.Message)
	}
	return nil
}
