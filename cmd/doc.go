// Package cmd implements the sub-commands of the caf command-line
// interface. Each file holds one sub-command; repository opening and
// logger setup shared by all of them live in shared.go.
package cmd
