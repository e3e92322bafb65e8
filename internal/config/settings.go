package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ytget/ytfetch/internal/platform"
)

// Settings keys, shared by flags and YTFETCH_* environment variables
const (
	KeyRoot      = "root"
	KeyName      = "name"
	KeyBackend   = "backend"
	KeyTimeout   = "timeout"
	KeyDataSaver = "data-saver"
	KeyAudio     = "audio"
	KeyOutput    = "output"
	KeyReveal    = "reveal"
	KeyDebug     = "debug"
)

// Default values
const (
	EnvPrefix      = "YTFETCH"
	DefaultName    = "ytfetch"
	DefaultBackend = "youtube"
	DefaultTimeout = 60 * time.Second
	MaxTimeout     = 30 * time.Minute
)

// Settings exposes the per-invocation options. Nothing here is persisted.
type Settings struct {
	v *viper.Viper
}

// NewSettings wraps v, registering defaults and environment binding.
func NewSettings(v *viper.Viper) *Settings {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyName, DefaultName)
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	return &Settings{v: v}
}

// GetRoot returns the directory holding the config file. It defaults to
// the directory of the running binary.
func (s *Settings) GetRoot() (string, error) {
	root := strings.TrimSpace(s.v.GetString(KeyRoot))
	if root == "" {
		return platform.ExecutableDir()
	}
	return platform.AbsPath(root)
}

// GetName returns the config name without any .json suffix.
func (s *Settings) GetName() string {
	name := strings.TrimSuffix(strings.TrimSpace(s.v.GetString(KeyName)), ConfigExt)
	if name == "" {
		return DefaultName
	}
	return name
}

// GetBackend returns the catalog backend name.
func (s *Settings) GetBackend() string {
	backend := strings.ToLower(strings.TrimSpace(s.v.GetString(KeyBackend)))
	if backend == "" {
		return DefaultBackend
	}
	return backend
}

// GetTimeout returns the transfer timeout clamped to (0, MaxTimeout].
func (s *Settings) GetTimeout() time.Duration {
	timeout := s.v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		return DefaultTimeout
	}
	if timeout > MaxTimeout {
		return MaxTimeout
	}
	return timeout
}

// IsDataSaver reports whether constrained streams are preferred.
func (s *Settings) IsDataSaver() bool {
	return s.v.GetBool(KeyDataSaver)
}

// IsAudio reports whether the run converts to audio.
func (s *Settings) IsAudio() bool {
	return s.v.GetBool(KeyAudio)
}

// GetOutput returns the explicit audio output path, if any.
func (s *Settings) GetOutput() string {
	return strings.TrimSpace(s.v.GetString(KeyOutput))
}

// GetRevealOnComplete reports whether finished files are revealed.
func (s *Settings) GetRevealOnComplete() bool {
	return s.v.GetBool(KeyReveal)
}

// IsDebug reports whether debug logging is on.
func (s *Settings) IsDebug() bool {
	return s.v.GetBool(KeyDebug)
}
