//go:build conformance

package conformance

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/venvr/venvr/internal/backend"
	"github.com/venvr/venvr/internal/registry"
)

// DefaultTimeout is the default timeout for environment creation. Virtualenv
// cold starts can take several seconds while it seeds pip.
const DefaultTimeout = 60 * time.Second

// Suite defines all conformance tests for any Backend implementation.
// It verifies that a backend correctly implements the Backend interface
// contract: a successful Create leaves a usable environment at the target
// path, and a failed Create surfaces an InvocationError.
type Suite struct {
	// Backend under test.
	Backend backend.Backend

	// Tool is the executable the backend shells out to. The suite skips
	// when it is not on PATH.
	Tool string

	// Timeout for Create calls. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Run executes all conformance tests.
func (s *Suite) Run(t *testing.T) {
	if _, err := exec.LookPath(s.Tool); err != nil {
		t.Skipf("%s not installed", s.Tool)
	}

	t.Run("Layout", s.testLayout)
	t.Run("Interpreter", s.testInterpreter)
	t.Run("Options", s.testOptions)
	t.Run("Failures", s.testFailures)
}

// testLayout verifies the on-disk shape of a freshly created environment.
func (s *Suite) testLayout(t *testing.T) {
	env := s.create(t, backend.CreateOptions{})

	env.AssertExecutable("bin/python")
	env.AssertFileExists("pyvenv.cfg")
}

// testInterpreter verifies the environment's interpreter runs and believes it
// lives inside the environment.
func (s *Suite) testInterpreter(t *testing.T) {
	env := s.create(t, backend.CreateOptions{})

	out := env.MustRunPython("import sys; print(sys.prefix)")
	if strings.TrimSpace(out) != env.Path {
		t.Errorf("sys.prefix = %q, want %q", strings.TrimSpace(out), env.Path)
	}
}

// testOptions verifies observable CreateOptions behavior.
func (s *Suite) testOptions(t *testing.T) {
	t.Run("Prompt", func(t *testing.T) {
		env := s.create(t, backend.CreateOptions{Prompt: "conformance-prompt"})

		content := env.ReadFile("pyvenv.cfg")
		if !strings.Contains(content, "conformance-prompt") {
			t.Errorf("pyvenv.cfg does not mention prompt:\n%s", content)
		}
	})

	t.Run("SystemSitePackages", func(t *testing.T) {
		env := s.create(t, backend.CreateOptions{SystemSitePackages: true})

		content := strings.ToLower(env.ReadFile("pyvenv.cfg"))
		if !strings.Contains(content, "include-system-site-packages = true") &&
			!strings.Contains(content, "system-site-packages = true") {
			t.Errorf("pyvenv.cfg does not enable system site packages:\n%s", content)
		}
	})
}

// testFailures verifies failure modes are reported, not panicked.
func (s *Suite) testFailures(t *testing.T) {
	t.Run("BadInterpreter", func(t *testing.T) {
		ctx, cancel := s.ctx(t)
		defer cancel()

		path := filepath.Join(t.TempDir(), "env")
		err := s.Backend.Create(ctx, path, backend.CreateOptions{
			Python: "no-such-python-interpreter",
		})
		if err == nil {
			t.Fatal("Create() with bad interpreter succeeded")
		}

		var invErr *backend.InvocationError
		if !errors.As(err, &invErr) {
			t.Errorf("Create() error = %v, want InvocationError", err)
		}
	})

	t.Run("UnwritableTarget", func(t *testing.T) {
		ctx, cancel := s.ctx(t)
		defer cancel()

		err := s.Backend.Create(ctx, "/proc/conformance-cannot-write-here", backend.CreateOptions{})
		if err == nil {
			t.Error("Create() under /proc succeeded")
		}
	})
}

func (s *Suite) ctx(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	timeout := s.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(t.Context(), timeout)
}

// create provisions an environment in a temp dir and returns a TestEnv with
// assertion helpers. Cleanup rides on t.TempDir.
func (s *Suite) create(t *testing.T, opts backend.CreateOptions) *TestEnv {
	t.Helper()

	ctx, cancel := s.ctx(t)
	t.Cleanup(cancel)

	path := filepath.Join(t.TempDir(), "env")
	if err := s.Backend.Create(ctx, path, opts); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	return &TestEnv{T: t, Path: path, Ctx: ctx}
}

// MustRunPython runs a snippet under the environment's own interpreter with
// the activated process environment and returns its output.
func (e *TestEnv) MustRunPython(snippet string) string {
	e.T.Helper()

	cmd := exec.CommandContext(e.Ctx, filepath.Join(registry.BinDir(e.Path), "python"), "-c", snippet)
	cmd.Env = registry.Environ(e.Path, os.Environ())
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.T.Fatalf("python -c %q failed: %v\n%s", snippet, err, out)
	}
	return string(out)
}
