package engine

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Locate finds the exporter executable. An explicit path must exist. Otherwise PATH is
// searched, then the directory of this executable and the working directory, each also
// checked for a .venv/bin or venv/bin (Scripts on Windows) sub-directory.
func Locate(explicit string) (string, error) {
	if explicit != "" {
		if fileExists(explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, explicit)
	}
	if p, err := exec.LookPath(DefaultExecutable); err == nil {
		return p, nil
	}

	name := DefaultExecutable
	binDir := "bin"
	if runtime.GOOS == "windows" {
		name += ".exe"
		binDir = "Scripts"
	}

	var roots []string
	if exePath, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(exePath))
	}
	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, cwd)
	}

	var tried []string
	for _, root := range roots {
		for _, dir := range []string{
			root,
			filepath.Join(root, ".venv", binDir),
			filepath.Join(root, "venv", binDir),
		} {
			tried = append(tried, dir)
			if p := filepath.Join(dir, name); fileExists(p) {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q not on PATH, tried:\n  - %s", ErrExecutableNotFound, name, strings.Join(tried, "\n  - "))
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
