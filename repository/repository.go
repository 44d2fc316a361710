// Package repository ties the object store, references and configuration
// of a caf repository together. A repository lives in the .caf directory of
// a working directory and records snapshots of that directory as commits.
package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"caf/commit"
	"caf/common"
	"caf/config"
	"caf/objectdb"
	"caf/refs"
	"caf/tree"

	"github.com/rs/zerolog"
)

const (
	DefaultRepoDir = ".caf"
	ObjectsDir     = "objects"
)

type Option func(*Repository)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithConfig overrides the configuration loaded from the repository.
func WithConfig(cfg *config.Config) Option {
	return func(r *Repository) {
		r.config = cfg
	}
}

type Repository struct {
	workingDir string
	repoDir    string
	config     *config.Config
	objects    *objectdb.DB
	refs       *refs.Store
	logger     zerolog.Logger
}

// Init creates a repository in workingDir and opens it. The configuration
// given with WithConfig is saved as the repository's config file. Nothing is
// left behind when initialization fails.
func Init(ctx context.Context, workingDir string, opts ...Option) (_ *Repository, err error) {
	repoDir := filepath.Join(workingDir, DefaultRepoDir)
	if _, err := os.Stat(repoDir); err == nil {
		return nil, fmt.Errorf("%s: %w", repoDir, ErrRepositoryExists)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(repoDir)
		}
	}()

	for _, dir := range []string{
		filepath.Join(repoDir, ObjectsDir),
		filepath.Join(repoDir, refs.RefsDir, refs.HeadsDir),
		filepath.Join(repoDir, refs.RefsDir, refs.TagsDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	staged := &Repository{}
	for _, opt := range opts {
		opt(staged)
	}
	cfg := config.Default()
	if staged.config != nil {
		cfg = staged.config.WithDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Save(filepath.Join(repoDir, config.FileName)); err != nil {
		return nil, err
	}
	if err := refs.New(repoDir).SetHead(ctx, branchRef(cfg.Branch)); err != nil {
		return nil, err
	}
	return Open(workingDir, opts...)
}

// Open opens the repository in workingDir. It returns ErrNoRepository when
// workingDir has no .caf directory.
func Open(workingDir string, opts ...Option) (*Repository, error) {
	repoDir := filepath.Join(workingDir, DefaultRepoDir)
	info, err := os.Stat(repoDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", workingDir, ErrNoRepository)
	}

	r := &Repository{
		workingDir: workingDir,
		repoDir:    repoDir,
		refs:       refs.New(repoDir),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.config == nil {
		if r.config, err = config.Load(filepath.Join(repoDir, config.FileName)); err != nil {
			return nil, err
		}
	} else {
		r.config = r.config.WithDefaults()
	}

	r.objects, err = objectdb.NewDB(filepath.Join(repoDir, ObjectsDir), objectdb.Options{
		BlockCacheMiB:  r.config.Objects.BlockCacheMiB,
		WriteBufferMiB: r.config.Objects.WriteBufferMiB,
		Logger:         &r.logger,
	})
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Str("dir", workingDir).Msg("repository opened")
	return r, nil
}

func (r *Repository) Close() error {
	return r.objects.Close()
}

func (r *Repository) WorkingDir() string {
	return r.workingDir
}

func (r *Repository) RepoDir() string {
	return r.repoDir
}

func (r *Repository) TagsDir() string {
	return filepath.Join(r.repoDir, refs.RefsDir, refs.TagsDir)
}

func (r *Repository) Config() *config.Config {
	return r.config
}

func branchRef(branch string) string {
	return refs.HeadsDir + "/" + branch
}

// HeadCommit returns the commit the current branch points at.
func (r *Repository) HeadCommit(ctx context.Context) (common.Hash, error) {
	head, err := r.refs.Head(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := r.refs.Read(ctx, head)
	if errors.Is(err, refs.ErrNotFound) {
		return common.Hash{}, ErrNoCommits
	}
	return hash, err
}

// LookupCommit loads a commit, failing with ErrCommitNotFound when hash
// names no commit object.
func (r *Repository) LookupCommit(hash common.Hash) (*commit.Commit, error) {
	kind, payload, err := r.objects.GetObject(hash)
	if errors.Is(err, objectdb.ErrNotFound) || (err == nil && kind != common.KindCommit) {
		return nil, fmt.Errorf("commit %s %w", hash, ErrCommitNotFound)
	}
	if err != nil {
		return nil, err
	}
	return commit.Decode(payload)
}

func (r *Repository) LookupTree(hash common.Hash) (*tree.Tree, error) {
	return r.objects.GetTree(hash)
}

func (r *Repository) ReadBlob(hash common.Hash) ([]byte, error) {
	return r.objects.GetBlob(hash)
}

// ResolveCommit turns a user supplied commit reference into a hash. An empty
// spec means HEAD; otherwise spec is a tag name, a hex commit hash or an
// unambiguous hex prefix of one.
func (r *Repository) ResolveCommit(ctx context.Context, spec string) (common.Hash, error) {
	if spec == "" {
		return r.HeadCommit(ctx)
	}
	if validTagName(spec) {
		if hash, err := r.refs.Read(ctx, tagRef(spec)); err == nil {
			return hash, nil
		}
	}
	if hash, err := common.HexToHash(spec); err == nil {
		if _, err := r.LookupCommit(hash); err != nil {
			return common.Hash{}, err
		}
		return hash, nil
	}
	hash, err := r.objects.ResolvePrefix(spec, common.KindCommit)
	if errors.Is(err, objectdb.ErrAmbiguousPrefix) {
		return common.Hash{}, fmt.Errorf("cannot resolve %q: %w", spec, err)
	}
	if err != nil {
		return common.Hash{}, fmt.Errorf("cannot resolve %q: commit %w", spec, ErrCommitNotFound)
	}
	return hash, nil
}
