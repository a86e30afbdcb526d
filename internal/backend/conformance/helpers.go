//go:build conformance

package conformance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestEnv wraps a created environment with assertion helpers.
type TestEnv struct {
	T    *testing.T
	Path string
	Ctx  context.Context
}

// AssertFileExists fails if the path does not exist under the environment.
func (e *TestEnv) AssertFileExists(rel string) {
	e.T.Helper()
	if _, err := os.Stat(filepath.Join(e.Path, rel)); err != nil {
		e.T.Errorf("%s does not exist: %v", rel, err)
	}
}

// AssertExecutable fails if the path is missing or not executable.
func (e *TestEnv) AssertExecutable(rel string) {
	e.T.Helper()
	info, err := os.Stat(filepath.Join(e.Path, rel))
	if err != nil {
		e.T.Errorf("%s does not exist: %v", rel, err)
		return
	}
	if info.Mode()&0111 == 0 {
		e.T.Errorf("%s is not executable (mode %v)", rel, info.Mode())
	}
}

// ReadFile returns the contents of a file under the environment.
func (e *TestEnv) ReadFile(rel string) string {
	e.T.Helper()
	data, err := os.ReadFile(filepath.Join(e.Path, rel))
	if err != nil {
		e.T.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}
