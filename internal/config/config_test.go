package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultBackend != "venv" {
		t.Errorf("DefaultBackend = %q, want venv", cfg.DefaultBackend)
	}
	if cfg.Backends["venv"].Python != "python3" {
		t.Errorf("venv python = %q, want python3", cfg.Backends["venv"].Python)
	}
	if cfg.Backends["virtualenv"].Python != "python3" {
		t.Errorf("virtualenv python = %q, want python3", cfg.Backends["virtualenv"].Python)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.DefaultBackend != "venv" {
			t.Errorf("DefaultBackend = %q, want venv", cfg.DefaultBackend)
		}
	})

	t.Run("parses file and fills defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
default_backend: virtualenv
environments_dir: /srv/envs
backends:
  virtualenv:
    python: python3.12
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}

		if cfg.DefaultBackend != "virtualenv" {
			t.Errorf("DefaultBackend = %q, want virtualenv", cfg.DefaultBackend)
		}
		if cfg.EnvironmentsDir != "/srv/envs" {
			t.Errorf("EnvironmentsDir = %q, want /srv/envs", cfg.EnvironmentsDir)
		}
		if cfg.Backends["virtualenv"].Python != "python3.12" {
			t.Errorf("virtualenv python = %q, want python3.12", cfg.Backends["virtualenv"].Python)
		}
		// Defaults fill the backend the file does not mention.
		if cfg.Backends["venv"].Python != "python3" {
			t.Errorf("venv python = %q, want python3", cfg.Backends["venv"].Python)
		}
		if cfg.Version != 1 {
			t.Errorf("Version = %d, want 1", cfg.Version)
		}
	})

	t.Run("invalid YAML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("default_backend: [unclosed"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := Load(path); err == nil {
			t.Error("Load() succeeded on invalid YAML")
		}
	})
}

func TestMerge(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvHome, "")
		t.Setenv("XDG_DATA_HOME", "/xdg/data")

		merged, err := Merge(Default(), FlagOverrides{})
		if err != nil {
			t.Fatalf("Merge() failed: %v", err)
		}

		if merged.Backend != "venv" {
			t.Errorf("Backend = %q, want venv", merged.Backend)
		}
		if merged.Python != "python3" {
			t.Errorf("Python = %q, want python3", merged.Python)
		}
		if merged.EnvironmentsDir != "/xdg/data/venvr/envs" {
			t.Errorf("EnvironmentsDir = %q, want /xdg/data/venvr/envs", merged.EnvironmentsDir)
		}
	})

	t.Run("flags override config", func(t *testing.T) {
		t.Setenv(EnvHome, "")
		t.Setenv("XDG_DATA_HOME", "/xdg/data")

		merged, err := Merge(Default(), FlagOverrides{
			Backend:            "virtualenv",
			Python:             "python3.13",
			SystemSitePackages: true,
		})
		if err != nil {
			t.Fatalf("Merge() failed: %v", err)
		}

		if merged.Backend != "virtualenv" {
			t.Errorf("Backend = %q, want virtualenv", merged.Backend)
		}
		if merged.Python != "python3.13" {
			t.Errorf("Python = %q, want python3.13", merged.Python)
		}
		if !merged.SystemSitePackages {
			t.Error("SystemSitePackages = false, want true")
		}
	})

	t.Run("VENVR_HOME wins over config file", func(t *testing.T) {
		t.Setenv(EnvHome, "/override/envs")

		cfg := Default()
		cfg.EnvironmentsDir = "/from/config"

		merged, err := Merge(cfg, FlagOverrides{})
		if err != nil {
			t.Fatalf("Merge() failed: %v", err)
		}
		if merged.EnvironmentsDir != "/override/envs" {
			t.Errorf("EnvironmentsDir = %q, want /override/envs", merged.EnvironmentsDir)
		}
	})

	t.Run("trailing slash is cleaned", func(t *testing.T) {
		t.Setenv(EnvHome, "/override/envs/")

		merged, err := Merge(Default(), FlagOverrides{})
		if err != nil {
			t.Fatalf("Merge() failed: %v", err)
		}
		// Must match paths built with filepath.Join, or comparisons against
		// stored environment paths silently fail.
		if merged.EnvironmentsDir != "/override/envs" {
			t.Errorf("EnvironmentsDir = %q, want /override/envs", merged.EnvironmentsDir)
		}
	})

	t.Run("config file wins over default dir", func(t *testing.T) {
		t.Setenv(EnvHome, "")

		cfg := Default()
		cfg.EnvironmentsDir = "/from/config"

		merged, err := Merge(cfg, FlagOverrides{})
		if err != nil {
			t.Fatalf("Merge() failed: %v", err)
		}
		if merged.EnvironmentsDir != "/from/config" {
			t.Errorf("EnvironmentsDir = %q, want /from/config", merged.EnvironmentsDir)
		}
	})
}

func TestDefaultEnvironmentsDir(t *testing.T) {
	t.Run("honors XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/xdg/data")

		dir, err := DefaultEnvironmentsDir()
		if err != nil {
			t.Fatalf("DefaultEnvironmentsDir() failed: %v", err)
		}
		if dir != "/xdg/data/venvr/envs" {
			t.Errorf("dir = %q, want /xdg/data/venvr/envs", dir)
		}
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		t.Setenv("HOME", "/home/u")

		dir, err := DefaultEnvironmentsDir()
		if err != nil {
			t.Fatalf("DefaultEnvironmentsDir() failed: %v", err)
		}
		if dir != "/home/u/.local/share/venvr/envs" {
			t.Errorf("dir = %q, want /home/u/.local/share/venvr/envs", dir)
		}
	})
}
