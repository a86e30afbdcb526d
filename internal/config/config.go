// Package config loads and merges venvr configuration.
//
// Precedence, lowest to highest: built-in defaults, the global config file
// (~/.config/venvr/config.yaml), the VENVR_HOME environment variable, and
// CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/venvr/venvr/internal/pathutil"
)

// EnvHome is the environment variable that overrides the environments
// directory.
const EnvHome = "VENVR_HOME"

// Config is the global configuration loaded from ~/.config/venvr/config.yaml.
type Config struct {
	Version         int                `yaml:"version"`
	DefaultBackend  string             `yaml:"default_backend"`
	EnvironmentsDir string             `yaml:"environments_dir,omitempty"`
	Backends        map[string]Backend `yaml:"backends"`
}

// Backend holds per-backend options from the config file.
type Backend struct {
	Python             string `yaml:"python"`
	SystemSitePackages bool   `yaml:"system_site_packages"`
}

// Default returns a Config with built-in defaults.
func Default() Config {
	return Config{
		Version:        1,
		DefaultBackend: "venv",
		Backends: map[string]Backend{
			"venv":       {Python: "python3"},
			"virtualenv": {Python: "python3"},
		},
	}
}

// Path returns the path to the global configuration file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "venvr", "config.yaml"), nil
}

// Load loads the configuration from path, or from the default location when
// path is empty. A missing file yields the defaults, not an error; a file
// with invalid YAML is an error.
func Load(path string) (Config, error) {
	var err error
	if path == "" {
		path, err = Path()
		if err != nil {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	return applyDefaults(cfg), nil
}

// applyDefaults fills in missing fields with default values.
func applyDefaults(cfg Config) Config {
	defaults := Default()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}
	if cfg.DefaultBackend == "" {
		cfg.DefaultBackend = defaults.DefaultBackend
	}
	if cfg.Backends == nil {
		cfg.Backends = defaults.Backends
		return cfg
	}
	for name, def := range defaults.Backends {
		b, ok := cfg.Backends[name]
		if !ok {
			cfg.Backends[name] = def
			continue
		}
		if b.Python == "" {
			b.Python = def.Python
		}
		cfg.Backends[name] = b
	}

	return cfg
}

// DefaultEnvironmentsDir returns the default base directory for environments
// ($XDG_DATA_HOME/venvr/envs, falling back to ~/.local/share/venvr/envs).
func DefaultEnvironmentsDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "venvr", "envs"), nil
}

// FlagOverrides contains CLI flag values that override configuration.
type FlagOverrides struct {
	Backend            string
	Python             string
	SystemSitePackages bool
}

// Merged is the effective configuration after precedence is applied.
type Merged struct {
	// Backend is the selected backend name.
	Backend string

	// Python is the interpreter for the selected backend.
	Python string

	// SystemSitePackages mirrors the backend option of the same name.
	SystemSitePackages bool

	// EnvironmentsDir is the resolved base directory for environments.
	EnvironmentsDir string
}

// Merge resolves the effective configuration from cfg, the process
// environment, and CLI flag overrides.
func Merge(cfg Config, flags FlagOverrides) (Merged, error) {
	merged := Merged{}

	merged.Backend = cfg.DefaultBackend
	if flags.Backend != "" {
		merged.Backend = flags.Backend
	}

	b := cfg.Backends[merged.Backend]
	merged.Python = b.Python
	merged.SystemSitePackages = b.SystemSitePackages
	if flags.Python != "" {
		merged.Python = flags.Python
	}
	if flags.SystemSitePackages {
		merged.SystemSitePackages = true
	}

	dir, err := resolveEnvironmentsDir(cfg)
	if err != nil {
		return Merged{}, err
	}
	merged.EnvironmentsDir = dir

	return merged, nil
}

// resolveEnvironmentsDir picks the environments directory:
// VENVR_HOME, then the config file, then the per-user data directory.
// The result is cleaned so it compares equal to paths built with
// filepath.Join, trailing slashes and all.
func resolveEnvironmentsDir(cfg Config) (string, error) {
	dir := os.Getenv(EnvHome)
	if dir == "" {
		dir = cfg.EnvironmentsDir
	}
	if dir == "" {
		return DefaultEnvironmentsDir()
	}

	expanded, err := pathutil.ExpandTilde(dir)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}
