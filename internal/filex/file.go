// Package filex holds filesystem helpers for the data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirPerm keeps the vault directory private to its owner.
const DataDirPerm os.FileMode = 0o700

// EnsureParentDir creates the directory that will contain path, including
// any missing parents, and returns it. Existing directories are left as is.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, DataDirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
