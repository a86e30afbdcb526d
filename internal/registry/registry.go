// Package registry manages the on-disk set of named virtual environments.
//
// The registry is the base directory itself: one subdirectory per
// environment, named by the user-chosen environment name. There is no index
// file; the filesystem is the source of truth, and name uniqueness comes
// from the directory namespace.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/venvr/venvr/internal/backend"
)

var (
	// ErrExists is returned when creating an environment whose name is taken.
	ErrExists = errors.New("environment already exists")

	// ErrNotFound is returned when no environment exists for a name.
	ErrNotFound = errors.New("environment not found")

	// ErrInvalidName is returned for names that are empty or not
	// filesystem-safe.
	ErrInvalidName = errors.New("invalid environment name")
)

// IOError reports a failed filesystem operation on an environment.
type IOError struct {
	Op   string // operation that failed (e.g. "remove")
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Registry maps environment names to directories under a base directory.
type Registry struct {
	baseDir string
}

// New creates a registry rooted at baseDir. The directory is created lazily
// on the first Create call.
func New(baseDir string) *Registry {
	return &Registry{baseDir: baseDir}
}

// BaseDir returns the registry's base directory.
func (r *Registry) BaseDir() string {
	return r.baseDir
}

// Path returns the directory an environment with the given name would
// occupy, without checking whether it exists. Fails with ErrInvalidName
// for unusable names.
func (r *Registry) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(r.baseDir, name), nil
}

// Create materializes a new environment via the given backend.
// Fails with ErrExists if the name is already taken. On backend failure the
// partially created directory is removed before the error is returned, so a
// failed create leaves no trace.
func (r *Registry) Create(ctx context.Context, name string, be backend.Backend, opts backend.CreateOptions) (string, error) {
	path, err := r.Path(name)
	if err != nil {
		return "", err
	}

	if _, err := os.Lstat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, name)
	}

	if err := os.MkdirAll(r.baseDir, 0755); err != nil {
		return "", &IOError{Op: "create", Path: r.baseDir, Err: err}
	}

	if err := be.Create(ctx, path, opts); err != nil {
		// The backend may have left a half-built tree behind.
		_ = os.RemoveAll(path)
		return "", err
	}

	return path, nil
}

// Resolve returns the directory of an existing environment.
// Fails with ErrNotFound if no environment has the given name.
func (r *Registry) Resolve(name string) (string, error) {
	path, err := r.Path(name)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", &IOError{Op: "stat", Path: path, Err: err}
	}
	if !info.IsDir() {
		return "", &IOError{Op: "resolve", Path: path, Err: errors.New("not a directory")}
	}

	return path, nil
}

// Remove deletes an environment's directory tree.
// Fails with ErrNotFound if no environment has the given name.
func (r *Registry) Remove(name string) error {
	path, err := r.Resolve(name)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(path); err != nil {
		return &IOError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// List returns the names of all environments, sorted.
// A missing base directory is an empty registry, not an error.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &IOError{Op: "list", Path: r.baseDir, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// ValidateName checks that a name is non-empty and filesystem-safe.
// Allowed characters are ASCII letters, digits, '.', '_' and '-'; the first
// character must be a letter or digit. This keeps names usable as plain
// directory names on every supported filesystem.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}

	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
			if i == 0 {
				return fmt.Errorf("%w: %q must start with a letter or digit", ErrInvalidName, name)
			}
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, c)
		}
	}
	return nil
}
