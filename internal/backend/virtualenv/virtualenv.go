// Package virtualenv implements the virtualenv backend, which builds
// environments with the third-party virtualenv tool. It is faster than venv
// and works with interpreters that lack the venv module, but the `virtualenv`
// executable must be on PATH.
package virtualenv

import (
	"context"
	"os/exec"

	"github.com/venvr/venvr/internal/backend"
)

// BackendName is the identifier for this backend.
const BackendName = "virtualenv"

// Backend implements backend.Backend using the virtualenv tool.
type Backend struct{}

// New creates a new virtualenv backend.
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

// Create builds a virtual environment at path by invoking virtualenv.
func (b *Backend) Create(ctx context.Context, path string, opts backend.CreateOptions) error {
	args := commandArgs(path, opts)

	cmd := exec.CommandContext(ctx, "virtualenv", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &backend.InvocationError{
			Tool:   "virtualenv",
			Output: output,
			Err:    err,
		}
	}
	return nil
}

// commandArgs builds the argument list for a virtualenv invocation.
func commandArgs(path string, opts backend.CreateOptions) []string {
	var args []string
	if opts.Python != "" {
		args = append(args, "--python", opts.Python)
	}
	if opts.SystemSitePackages {
		args = append(args, "--system-site-packages")
	}
	if opts.Prompt != "" {
		args = append(args, "--prompt", opts.Prompt)
	}
	args = append(args, path)
	return args
}
