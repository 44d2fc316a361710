package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"caf/repository"

	"github.com/jessevdk/go-flags"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the CLI and returns the process exit code: 0 on success,
// -1 on failure.
func Run(args []string) int {
	opts := newOptions()
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "caf"

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		}
		reportError(opts, err)
		return -1
	}
	return 0
}

func reportError(opts *Options, err error) {
	switch {
	case errors.Is(err, repository.ErrNoRepository):
		fmt.Fprintf(stderr, "No repository found in %s\n", opts.Dir)
	case errors.Is(err, repository.ErrTagNameRequired):
		fmt.Fprintln(stderr, "Error: Tag name is required")
	case errors.Is(err, repository.ErrNoCommits):
		fmt.Fprintln(stderr, "Error: No commits in repository")
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
}
