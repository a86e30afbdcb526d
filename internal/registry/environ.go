package registry

import (
	"os"
	"path/filepath"
	"strings"
)

// BinDir returns the directory holding an environment's executables.
func BinDir(path string) string {
	return filepath.Join(path, "bin")
}

// Environ returns a copy of base with the environment at path activated:
// the environment's bin directory is prepended to PATH so its executables
// take precedence, VIRTUAL_ENV points at the environment, and PYTHONHOME is
// dropped. This mirrors what the environment's bin/activate script does.
func Environ(path string, base []string) []string {
	binDir := BinDir(path)

	env := make([]string, 0, len(base)+2)
	sawPath := false
	for _, kv := range base {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			env = append(env, kv)
			continue
		}
		switch key {
		case "PATH":
			env = append(env, "PATH="+binDir+string(os.PathListSeparator)+value)
			sawPath = true
		case "VIRTUAL_ENV", "PYTHONHOME":
			// Replaced or dropped below.
		default:
			env = append(env, kv)
		}
	}
	if !sawPath {
		env = append(env, "PATH="+binDir)
	}
	env = append(env, "VIRTUAL_ENV="+path)

	return env
}
