// Package config reads tagtree.toml, the optional per-project settings
// file. Command-line flags override every value found here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is looked up in the working directory and its parents.
const FileName = "tagtree.toml"

type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`

	// Path is the file the values came from; empty for Default().
	Path string `toml:"-"`
}

type ParseConfig struct {
	MaxErrors      uint   `toml:"max_errors"`
	DecodeEntities bool   `toml:"decode_entities"`
	MaxDepth       uint   `toml:"max_depth"`
	MaxNodes       uint32 `toml:"max_nodes"`
	MaxTokenLength uint32 `toml:"max_token_length"`
}

type OutputConfig struct {
	Format   string `toml:"format"`    // tree|json|html
	Color    string `toml:"color"`     // auto|on|off
	PathMode string `toml:"path_mode"` // auto|absolute|relative|basename
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто - $XDG_CACHE_HOME/tagtree
}

var (
	validFormats   = []string{"tree", "json", "html"}
	validColors    = []string{"auto", "on", "off"}
	validPathModes = []string{"auto", "absolute", "relative", "basename"}
)

// Default returns the values used when no file is found.
func Default() Config {
	return Config{
		Output: OutputConfig{Format: "tree", Color: "auto", PathMode: "auto"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default(). Unknown keys and invalid enum values
// are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.Color = strings.ToLower(strings.TrimSpace(cfg.Output.Color))
	cfg.Output.PathMode = strings.ToLower(strings.TrimSpace(cfg.Output.PathMode))
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		// относительный путь - от каталога с tagtree.toml
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	return cfg, nil
}

// Discover is Find followed by Load; without a file it returns Default().
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) validate() error {
	if !oneOf(c.Output.Format, validFormats) {
		return fmt.Errorf("[output].format must be one of %s, got %q", strings.Join(validFormats, "|"), c.Output.Format)
	}
	if !oneOf(c.Output.Color, validColors) {
		return fmt.Errorf("[output].color must be one of %s, got %q", strings.Join(validColors, "|"), c.Output.Color)
	}
	if !oneOf(c.Output.PathMode, validPathModes) {
		return fmt.Errorf("[output].path_mode must be one of %s, got %q", strings.Join(validPathModes, "|"), c.Output.PathMode)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
