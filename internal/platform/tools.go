package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// binaryName appends .exe on Windows
func binaryName(base string) string {
	if runtime.GOOS == OSWindows && filepath.Ext(base) == "" {
		return base + ".exe"
	}
	return base
}

// LookupTool resolves an external executable. A configured path containing a
// separator is used as is; anything else is searched on PATH.
func LookupTool(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("tool name is empty")
	}
	if filepath.Base(name) != name {
		if !FileExists(name) {
			return "", fmt.Errorf("tool not found: %s", name)
		}
		return name, nil
	}
	path, err := exec.LookPath(binaryName(name))
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	return path, nil
}
