// Package config provides configuration types, defaults, and
// persistence for appdock.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"appdock/internal/catalog"
	"appdock/internal/log"
	"appdock/internal/paths"
)

// Config holds all configuration options for appdock.
type Config struct {
	// DataDir is where the group store and logs live.
	// Default: <user config dir>/appdock
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// ShortcutDirs are the directories scanned for shortcuts.
	// Default: the common and per-user start-menu Programs dirs.
	ShortcutDirs []string `mapstructure:"shortcut_dirs" yaml:"shortcut_dirs"`

	// AutoRefresh rebuilds catalogs when their sources change.
	AutoRefresh bool `mapstructure:"auto_refresh" yaml:"auto_refresh"`

	// WatchDebounce coalesces bursts of filesystem events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`

	Icon IconConfig `mapstructure:"icon" yaml:"icon"`
}

// IconConfig holds icon rendering options.
type IconConfig struct {
	// Size is the edge length for single app icons.
	Size int `mapstructure:"size" yaml:"size"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:       paths.DataDir(),
		ShortcutDirs:  catalog.DefaultShortcutRoots(),
		AutoRefresh:   true,
		WatchDebounce: 500 * time.Millisecond,
		Icon: IconConfig{
			Size: 64,
		},
	}
}

// WriteDefaultConfig writes the default configuration to configPath,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "could not create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := render(Defaults())
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "could not write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}

func render(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# appdock configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = enc.Close()
	return buf.Bytes(), nil
}
