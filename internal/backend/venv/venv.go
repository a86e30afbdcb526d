// Package venv implements the venv backend, which builds environments with
// the standard library module shipped with Python 3: `<python> -m venv`.
// It requires no extra tooling beyond a Python interpreter.
package venv

import (
	"context"
	"os/exec"

	"github.com/venvr/venvr/internal/backend"
)

// BackendName is the identifier for this backend.
const BackendName = "venv"

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

// Backend implements backend.Backend using `python -m venv`.
type Backend struct{}

// New creates a new venv backend.
func New() backend.Backend {
	return &Backend{}
}

func init() {
	backend.Register(BackendName, New)
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return BackendName
}

// Create builds a virtual environment at path by invoking `<python> -m venv`.
func (b *Backend) Create(ctx context.Context, path string, opts backend.CreateOptions) error {
	python, args := commandArgs(path, opts)

	cmd := exec.CommandContext(ctx, python, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &backend.InvocationError{
			Tool:   python + " -m venv",
			Output: output,
			Err:    err,
		}
	}
	return nil
}

// commandArgs builds the interpreter and argument list for an invocation.
// Split out so the argument construction is testable without running Python.
func commandArgs(path string, opts backend.CreateOptions) (python string, args []string) {
	python = opts.Python
	if python == "" {
		python = DefaultPython
	}

	args = []string{"-m", "venv"}
	if opts.SystemSitePackages {
		args = append(args, "--system-site-packages")
	}
	if opts.Prompt != "" {
		args = append(args, "--prompt", opts.Prompt)
	}
	args = append(args, path)
	return python, args
}
