// Package procutil runs child processes on behalf of venvr, propagating
// exit status and forwarding termination signals so interactive programs can
// be interrupted cleanly.
package procutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrCommandNotFound is returned when the command cannot be located on the
// child's PATH. No process is spawned in that case.
var ErrCommandNotFound = errors.New("command not found")

// ExitError carries a child's non-zero exit code up to the caller.
// The child has already written its own diagnostics, so this error produces
// no additional message beyond the status itself.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Run spawns argv as a child process with the given environment, wires the
// child to this process's stdin/stdout/stderr, and blocks until it exits.
// The command is resolved against the PATH entry of env, not of the calling
// process, so executables installed in an activated environment win.
//
// SIGINT and SIGTERM received while the child runs are forwarded to it.
// The returned code is the child's exit code; a child killed by a signal
// reports 128+signal, following shell convention.
func Run(ctx context.Context, argv []string, env []string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("no command given")
	}

	path, err := lookPath(argv[0], pathOf(env))
	if err != nil {
		return -1, fmt.Errorf("%w: %s", ErrCommandNotFound, argv[0])
	}

	cmd := exec.CommandContext(ctx, path)
	cmd.Args = argv
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	// Forward termination signals to the child until it exits.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err = cmd.Wait()
	close(done)
	signal.Stop(sigCh)

	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("failed to wait for %s: %w", argv[0], err)
}

// pathOf extracts the PATH entry from an environment list.
func pathOf(env []string) string {
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, "PATH="); ok {
			return v
		}
	}
	return ""
}

// lookPath resolves file against the given PATH list. Names containing a
// path separator are used as-is. exec.LookPath cannot be used here because
// it consults the calling process's PATH, not the child's.
func lookPath(file, pathList string) (string, error) {
	if strings.ContainsRune(file, os.PathSeparator) {
		if err := checkExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := checkExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s not found in PATH", file)
}

// checkExecutable reports whether path is a regular file with an execute bit.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Mode()&0111 == 0 {
		return fmt.Errorf("%s is not executable", path)
	}
	return nil
}
