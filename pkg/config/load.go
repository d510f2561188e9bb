package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $PULSEBAR_CONFIG (exact path)
//  2. $XDG_CONFIG_HOME/pulsebar/config.toml
//  3. ~/.config/pulsebar/config.toml
//
// If no file exists, returns Default().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return Default(), nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader. Settings absent
// from the document keep their defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configSearchPaths() []string {
	var paths []string
	if p := os.Getenv("PULSEBAR_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "pulsebar", "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pulsebar", "config.toml"))
	}
	return paths
}
