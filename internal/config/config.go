package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/GreyStinger/riv/internal/logging"
)

type Config struct {
	Path     string `koanf:"path"`     // starting file or directory, empty means cwd
	Upscale  bool   `koanf:"up_scale"` // allow scaling images beyond 1:1
	Protocol string `koanf:"protocol"` // "", "kitty", "sixel", "none"; empty means auto-detect

	Viewport ViewportConfig `koanf:"viewport"`
	Prefetch PrefetchConfig `koanf:"prefetch"`
	Limits   LimitsConfig   `koanf:"limits"`
	Log      logging.Config `koanf:"log"`
}

// ViewportConfig overrides the initial viewport in pixels. Zero values
// mean detect from the terminal.
type ViewportConfig struct {
	Width  int `koanf:"width"`
	Height int `koanf:"height"`
}

// PrefetchConfig sizes the decode-ahead window.
type PrefetchConfig struct {
	Ahead   int `koanf:"ahead"`   // images decoded ahead of the current one (default: 2)
	Behind  int `koanf:"behind"`  // images kept behind the current one (default: 2)
	Workers int `koanf:"workers"` // concurrent decodes (default: 3)
}

// LimitsConfig bounds zoom and decode size.
type LimitsConfig struct {
	MinZoom   float64 `koanf:"min_zoom"`   // lowest zoom factor (default: 0.125)
	MaxZoom   float64 `koanf:"max_zoom"`   // highest zoom factor (default: 8)
	MaxPixels int     `koanf:"max_pixels"` // decode refused above this pixel count (default: 1e8)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Path != "" {
		cfg.Path = expandPath(cfg.Path)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Prefetch.Ahead <= 0 {
		cfg.Prefetch.Ahead = 2
	}
	if cfg.Prefetch.Behind <= 0 {
		cfg.Prefetch.Behind = 2
	}
	if cfg.Prefetch.Workers <= 0 {
		cfg.Prefetch.Workers = 3
	}
	if cfg.Limits.MinZoom <= 0 {
		cfg.Limits.MinZoom = 0.125
	}
	if cfg.Limits.MaxZoom <= cfg.Limits.MinZoom {
		cfg.Limits.MaxZoom = 8
	}
	if cfg.Limits.MaxPixels <= 0 {
		cfg.Limits.MaxPixels = 100_000_000
	}
	if cfg.Log.File == "" {
		cfg.Log.File = logging.DefaultFile()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/riv/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "riv", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
