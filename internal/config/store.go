// Package config loads and creates the persisted JSON configuration and
// exposes the per-invocation settings bound from flags and environment.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
	"github.com/ytget/ytfetch/internal/prompt"
)

// Config file constants
const (
	ConfigExt       = ".json"
	ConfigType      = "json"
	ConfigVersion   = "1.0"
	OutputDirSuffix = "-output"
)

var (
	// ErrNotAFile means the config path exists but is a directory.
	ErrNotAFile = errors.New("config path is a directory, not a file")
	// ErrMalformedConfig means the config file is not valid JSON.
	ErrMalformedConfig = errors.New("config file is not valid JSON")
)

// Store owns the config file under root. It is created once at startup and
// passed to whoever needs the config; the first successful Load is cached.
type Store struct {
	root    string
	name    string
	console *prompt.Console
	log     zerolog.Logger
	cfg     *model.Config
}

// NewStore creates a store for <root>/<name>.json.
func NewStore(root, name string, console *prompt.Console, log zerolog.Logger) *Store {
	return &Store{
		root:    root,
		name:    strings.TrimSuffix(name, ConfigExt),
		console: console,
		log:     log,
	}
}

// Path returns the config file location.
func (s *Store) Path() string {
	return filepath.Join(s.root, s.name) + ConfigExt
}

// DefaultOutputDir is offered when the user gives no output directory.
func (s *Store) DefaultOutputDir() string {
	return filepath.Join(s.root, s.name+OutputDirSuffix)
}

// Load returns the cached config, reading the file or running the
// interactive bootstrap on first use.
func (s *Store) Load(ctx context.Context) (*model.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}

	path := s.Path()
	s.log.Debug().Str("path", path).Msg("reading config")

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path)
	case err == nil:
		cfg, err := s.read(path)
		if err != nil {
			return nil, err
		}
		if !platform.IsDirectory(cfg.OutputDirPath) {
			s.log.Warn().Str("output_dir_path", cfg.OutputDirPath).Msg("configured output directory does not exist")
			return s.Bootstrap(ctx)
		}
		s.cfg = cfg
		return cfg, nil
	case errors.Is(err, os.ErrNotExist):
		s.log.Info().Str("path", path).Msg("config does not exist")
		return s.Bootstrap(ctx)
	default:
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}
}

// Bootstrap interactively creates the config file and caches the result.
func (s *Store) Bootstrap(ctx context.Context) (*model.Config, error) {
	s.log.Info().Str("name", s.name).Msg("initializing config")

	cfg := &model.Config{
		App:     s.name,
		Version: ConfigVersion,
	}

	dir, err := s.chooseOutputDir(ctx)
	if err != nil {
		return nil, err
	}
	cfg.OutputDirPath = dir

	if err := s.write(cfg); err != nil {
		return nil, err
	}
	s.log.Info().Str("path", s.Path()).Msg("config created")

	s.cfg = cfg
	return cfg, nil
}

// Reset discards the cached config and runs the bootstrap again.
func (s *Store) Reset(ctx context.Context) (*model.Config, error) {
	if platform.IsDirectory(s.Path()) {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, s.Path())
	}
	s.cfg = nil
	return s.Bootstrap(ctx)
}

func (s *Store) read(path string) (*model.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(ConfigType)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}

	var cfg model.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}
	return &cfg, nil
}

func (s *Store) write(cfg *model.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, platform.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config %s: %w", s.Path(), err)
	}
	return nil
}
