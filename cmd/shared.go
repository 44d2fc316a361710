package cmd

import (
	"path/filepath"

	"caf/config"
	"caf/logging"
	"caf/repository"

	"github.com/rs/zerolog"
)

// loadConfig reads --config if given, else the repository's config file.
func (o *Options) loadConfig() (*config.Config, error) {
	path := o.Config
	if path == "" {
		path = filepath.Join(o.Dir, repository.DefaultRepoDir, config.FileName)
	}
	return config.Load(path)
}

func (o *Options) logger(cfg *config.Config) (zerolog.Logger, error) {
	level := o.LogLevel
	if level == "" && cfg != nil {
		level = cfg.LogLevel
	}
	return logging.New(stderr, level)
}

// openRepository opens the repository selected by the global options.
func (o *Options) openRepository() (*repository.Repository, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := o.logger(cfg)
	if err != nil {
		return nil, err
	}
	return repository.Open(o.Dir, repository.WithConfig(cfg), repository.WithLogger(logger))
}
