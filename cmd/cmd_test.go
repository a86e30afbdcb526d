package cmd

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/venvr/venvr/internal/backend"
	"github.com/venvr/venvr/internal/procutil"
	"github.com/venvr/venvr/internal/registry"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "child exit code",
			err:  &procutil.ExitError{Code: 7},
			want: 7,
		},
		{
			name: "command not found",
			err:  fmt.Errorf("%w: frobnicate", procutil.ErrCommandNotFound),
			want: 127,
		},
		{
			name: "backend invocation failure",
			err:  &backend.InvocationError{Tool: "python3 -m venv", Err: errors.New("exit status 1")},
			want: 2,
		},
		{
			name: "wrapped backend failure",
			err:  fmt.Errorf("context: %w", &backend.InvocationError{Tool: "virtualenv", Err: errors.New("boom")}),
			want: 2,
		},
		{
			name: "filesystem failure",
			err:  &registry.IOError{Op: "remove", Path: "/envs/e", Err: errors.New("permission denied")},
			want: 2,
		},
		{
			name: "already exists",
			err:  fmt.Errorf("%w: myenv", registry.ErrExists),
			want: 1,
		},
		{
			name: "not found",
			err:  fmt.Errorf("%w: myenv", registry.ErrNotFound),
			want: 1,
		},
		{
			name: "invalid name",
			err:  fmt.Errorf("%w: %q", registry.ErrInvalidName, "a/b"),
			want: 1,
		},
		{
			name: "generic error",
			err:  errors.New("something else"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestCommands verifies all commands are registered with root.
func TestCommands(t *testing.T) {
	commands := []string{"create", "exec", "remove", "list", "config"}

	for _, name := range commands {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if strings.HasPrefix(cmd.Use, name) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not found in root command", name)
		}
	}
}

func TestRemoveAlias(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if strings.HasPrefix(cmd.Use, "remove") {
			for _, alias := range cmd.Aliases {
				if alias == "rm" {
					return
				}
			}
			t.Error("remove command has no rm alias")
			return
		}
	}
	t.Error("remove command not found")
}

func TestArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"create requires a name", []string{"create"}},
		{"create rejects extra args", []string{"create", "a", "b"}},
		{"exec requires a command", []string{"exec", "myenv"}},
		{"remove requires a name", []string{"remove"}},
		{"list takes no args", []string{"list", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			if err := rootCmd.Execute(); err == nil {
				t.Errorf("Execute(%v) succeeded, want argument error", tt.args)
			}
		})
	}
}

// TestLifecycleIntegration walks the full create/exec/remove scenario against
// a real venv in an isolated home.
func TestLifecycleIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not installed")
	}

	// Point every per-user location at the test sandbox.
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home+"/.config")
	t.Setenv("XDG_DATA_HOME", home+"/.local/share")
	t.Setenv("VENVR_HOME", home+"/envs")

	run := func(args ...string) error {
		t.Helper()
		rootCmd.SetArgs(args)
		return rootCmd.Execute()
	}

	if err := run("create", "myenv"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := run("exec", "myenv", "python", "-c", "import sys; sys.exit(0)"); err != nil {
		t.Fatalf("exec failed: %v", err)
	}

	t.Run("child exit code propagates", func(t *testing.T) {
		err := run("exec", "myenv", "sh", "-c", "exit 7")
		var childErr *procutil.ExitError
		if !errors.As(err, &childErr) {
			t.Fatalf("exec error = %v, want ExitError", err)
		}
		if childErr.Code != 7 {
			t.Errorf("child code = %d, want 7", childErr.Code)
		}
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		err := run("create", "myenv")
		if !errors.Is(err, registry.ErrExists) {
			t.Errorf("create error = %v, want ErrExists", err)
		}
	})

	t.Run("exec unknown name never spawns", func(t *testing.T) {
		err := run("exec", "ghost", "sh", "-c", "true")
		if !errors.Is(err, registry.ErrNotFound) {
			t.Errorf("exec error = %v, want ErrNotFound", err)
		}
	})

	if err := run("remove", "myenv"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	t.Run("exec after remove fails", func(t *testing.T) {
		err := run("exec", "myenv", "sh", "-c", "true")
		if !errors.Is(err, registry.ErrNotFound) {
			t.Errorf("exec error = %v, want ErrNotFound", err)
		}
		if got := exitCode(err); got != 1 {
			t.Errorf("exitCode() = %d, want 1", got)
		}
	})

	t.Run("remove after remove fails", func(t *testing.T) {
		err := run("remove", "myenv")
		if !errors.Is(err, registry.ErrNotFound) {
			t.Errorf("remove error = %v, want ErrNotFound", err)
		}
	})
}
