package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "termpic"

type Config struct {
	Background string `koanf:"background"` // "black", "white", "gray" or "#rrggbb"
	NoAlpha    bool   `koanf:"no_alpha"`
	FullAlpha  bool   `koanf:"full_alpha"`
	Renderer   string `koanf:"renderer"` // "halfblocks" or "mosaic"
}

// Load reads the default config files, then explicit if it is not empty.
// Missing default files are skipped; a missing explicit file is an error.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		paths = append(paths, explicit)
	}
	return LoadFrom(paths...)
}

// LoadFrom reads the given TOML files in order, later files winning.
// Paths that do not exist are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		Background: "black",
		Renderer:   "halfblocks",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/termpic/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./.termpic.toml (pwd, highest priority)
		"." + appName + ".toml",
	}
}
