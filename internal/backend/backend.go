// Package backend defines the isolation backends that materialize Python
// virtual environments on disk. A backend wraps one external tool and knows
// how to invoke it; the rest of venvr only sees the Backend interface.
//
// Supported backends:
//
//	| Backend    | Tool invoked          |
//	|------------|-----------------------|
//	| venv       | <python> -m venv      |
//	| virtualenv | virtualenv            |
package backend

import (
	"bytes"
	"context"
	"fmt"
)

// CreateOptions controls how a backend builds an environment.
// Fields a tool does not support are ignored by that backend.
type CreateOptions struct {
	// Python is the interpreter used to seed the environment
	// (e.g. "python3", "python3.12", or an absolute path).
	Python string

	// SystemSitePackages gives the environment access to the system
	// site-packages directory.
	SystemSitePackages bool

	// Prompt is the shell prompt prefix recorded in the environment.
	// Defaults to the directory name when empty.
	Prompt string
}

// Backend creates isolated Python environments at a given path.
type Backend interface {
	// Name returns the backend identifier (e.g. "venv").
	Name() string

	// Create materializes a new environment at path. The path must not
	// exist yet; the caller owns existence checks and cleanup of partial
	// state on failure.
	Create(ctx context.Context, path string, opts CreateOptions) error
}

// InvocationError reports a failed invocation of a backend tool.
// It carries the tool's combined output so the user can see what went wrong.
type InvocationError struct {
	// Tool is the command that was invoked (e.g. "python3 -m venv").
	Tool string

	// Output is the tool's combined stdout and stderr, may be empty.
	Output []byte

	// Err is the underlying exec error.
	Err error
}

func (e *InvocationError) Error() string {
	out := bytes.TrimSpace(e.Output)
	if len(out) > 0 {
		return fmt.Sprintf("%s failed: %v\n%s", e.Tool, e.Err, out)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
