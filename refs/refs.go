// Package refs reads and writes named references (branch heads and tags)
// stored as small text files below a repository directory. Each file holds
// one commit hash in hex followed by a newline. HEAD is symbolic and names
// the branch reference it follows.
package refs

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"caf/common"
	"caf/omap"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

const (
	HeadFile   = "HEAD"
	RefsDir    = "refs"
	HeadsDir   = "heads"
	TagsDir    = "tags"
	headPrefix = "ref: "
)

// ErrNotFound is returned when a reference does not exist.
var ErrNotFound = errors.New("reference not found")

type Store struct {
	fs   afs.Service
	root string
}

// New returns a store rooted at the repository directory.
func New(root string) *Store {
	return &Store{fs: afs.New(), root: root}
}

// Path returns the file location of the named reference, e.g. "tags/v1".
func (s *Store) Path(name string) string {
	return path.Join(s.root, RefsDir, name)
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	return s.fs.Exists(ctx, s.Path(name))
}

// Read returns the hash stored in the named reference.
func (s *Store) Read(ctx context.Context, name string) (common.Hash, error) {
	data, err := s.read(ctx, s.Path(name))
	if err != nil {
		return common.Hash{}, fmt.Errorf("ref %q: %w", name, err)
	}
	hash, err := common.HexToHash(string(data))
	if err != nil {
		return common.Hash{}, fmt.Errorf("ref %q: %w", name, err)
	}
	return hash, nil
}

// Write stores hash in the named reference, creating parent directories.
func (s *Store) Write(ctx context.Context, name string, hash common.Hash) error {
	content := hash.String() + "\n"
	if err := s.fs.Upload(ctx, s.Path(name), file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write ref %q: %w", name, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ref %q: %w", name, ErrNotFound)
	}
	if err := s.fs.Delete(ctx, s.Path(name)); err != nil {
		return fmt.Errorf("delete ref %q: %w", name, err)
	}
	return nil
}

// List returns the references directly inside dir keyed by their short
// name. A missing directory yields an empty map.
func (s *Store) List(ctx context.Context, dir string) (*omap.Map[common.Hash], error) {
	location := s.Path(dir)
	ok, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, err
	}
	if !ok {
		return omap.New[common.Hash](nil), nil
	}
	objects, err := s.fs.List(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("list refs %q: %w", dir, err)
	}
	refs := make(map[string]common.Hash, len(objects))
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		name := object.Name()
		hash, err := s.Read(ctx, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		refs[name] = hash
	}
	return omap.New(refs), nil
}

// Head returns the reference HEAD points at, e.g. "heads/main".
func (s *Store) Head(ctx context.Context) (string, error) {
	data, err := s.read(ctx, path.Join(s.root, HeadFile))
	if err != nil {
		return "", fmt.Errorf("HEAD: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, headPrefix) {
		return "", fmt.Errorf("HEAD: malformed content %q", content)
	}
	return strings.TrimPrefix(content, headPrefix), nil
}

// SetHead points HEAD at the named reference.
func (s *Store) SetHead(ctx context.Context, name string) error {
	content := headPrefix + name + "\n"
	if err := s.fs.Upload(ctx, path.Join(s.root, HeadFile), file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write HEAD: %w", err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, location string) ([]byte, error) {
	ok, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.fs.DownloadWithURL(ctx, location)
}
