package repository

import (
	"context"
	"strings"

	"caf/common"
	"caf/refs"
)

type Tag struct {
	Name   string
	Commit common.Hash
}

func tagRef(name string) string {
	return refs.TagsDir + "/" + name
}

func validTagName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, "/\\ \t\n")
}

func checkTagName(name string) error {
	if name == "" {
		return ErrTagNameRequired
	}
	if !validTagName(name) {
		return &TagError{Name: name, Err: ErrInvalidTagName}
	}
	return nil
}

// CreateTag points a new tag at commitSpec, or at HEAD when commitSpec is
// empty, and returns the tagged commit.
func (r *Repository) CreateTag(ctx context.Context, name, commitSpec string) (common.Hash, error) {
	if err := checkTagName(name); err != nil {
		return common.Hash{}, err
	}
	if r.TagExists(ctx, name) {
		return common.Hash{}, &TagError{Name: name, Err: ErrTagExists}
	}
	target, err := r.ResolveCommit(ctx, commitSpec)
	if err != nil {
		return common.Hash{}, err
	}
	if err := r.refs.Write(ctx, tagRef(name), target); err != nil {
		return common.Hash{}, err
	}
	r.logger.Info().Str("tag", name).Stringer("commit", target).Msg("tag created")
	return target, nil
}

func (r *Repository) DeleteTag(ctx context.Context, name string) error {
	if err := checkTagName(name); err != nil {
		return err
	}
	if !r.TagExists(ctx, name) {
		return &TagError{Name: name, Err: ErrTagNotFound}
	}
	if err := r.refs.Delete(ctx, tagRef(name)); err != nil {
		return err
	}
	r.logger.Info().Str("tag", name).Msg("tag deleted")
	return nil
}

// ListTags returns all tags sorted by name.
func (r *Repository) ListTags(ctx context.Context) ([]Tag, error) {
	tags, err := r.refs.List(ctx, refs.TagsDir)
	if err != nil {
		return nil, err
	}
	result := make([]Tag, 0, tags.Len())
	for name, hash := range tags.All() {
		result = append(result, Tag{Name: name, Commit: hash})
	}
	return result, nil
}

func (r *Repository) TagExists(ctx context.Context, name string) bool {
	if !validTagName(name) {
		return false
	}
	ok, err := r.refs.Exists(ctx, tagRef(name))
	return err == nil && ok
}
