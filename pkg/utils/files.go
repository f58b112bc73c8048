package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetPathInfo resolves relPath to an absolute path and the directory that
// holds it. The path must name an existing regular file.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return "", "", err
	}
	if info.IsDir() {
		return "", "", fmt.Errorf("%s is a directory", fullPath)
	}
	return fullPath, filepath.Dir(fullPath), nil
}

// ReplaceExt swaps the extension of path for ext, or appends ext when path
// has none.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
