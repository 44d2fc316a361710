package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNoRepository     = errors.New("no repository found")
	ErrRepositoryExists = errors.New("repository already exists")
	ErrNoCommits        = errors.New("no commits in repository")
	ErrCommitNotFound   = errors.New("does not exist")
	ErrTagNameRequired  = errors.New("tag name is required")
	ErrInvalidTagName   = errors.New("invalid tag name")
	ErrTagExists        = errors.New("already exists")
	ErrTagNotFound      = errors.New("does not exist")
)

// TagError reports a tag operation that conflicts with the tags present.
type TagError struct {
	Name string
	Err  error // ErrTagExists or ErrTagNotFound
}

func (e *TagError) Error() string {
	return fmt.Sprintf("Tag %q %v", e.Name, e.Err)
}

func (e *TagError) Unwrap() error {
	return e.Err
}
