// Package filex contains small filesystem helpers for the upload store.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathEscapes is returned by SafeJoin when the joined path would leave root.
var ErrPathEscapes = errors.New("path escapes root directory")

// EnsureSubdDir creates dirName under root (relative roots resolve against the
// working directory) and returns the absolute path.
func EnsureSubdDir(root, dirName string) (string, error) {
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = filepath.Join(cwd, root)
	}

	dir, err := SafeJoin(root, dirName)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeJoin joins rel onto root and rejects results outside root, so
// user-supplied names like "../../etc/passwd" cannot be written or removed.
func SafeJoin(root, rel string) (string, error) {
	root = filepath.Clean(root)
	joined := filepath.Join(root, filepath.FromSlash(rel))
	if joined != root && !strings.HasPrefix(joined, root+string(filepath.Separator)) {
		return "", ErrPathEscapes
	}
	return joined, nil
}

// SanitizeFileName strips directories and characters that are awkward in
// URLs, keeping letters, digits, '.', '-' and '_'.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
