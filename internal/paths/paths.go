// Package paths provides canonical helpers for site-relative paths:
// - normalizing separators so the index stores the same key on every OS
// - checking that a file resolves inside the site root (symlinks included)
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathOutsideRoot is returned when a path resolves outside its root.
var ErrPathOutsideRoot = errors.New("path is outside the site root")

// NormalizeRelPath normalizes a site-relative path-like value:
// - converts OS separators to '/'
// - trims leading "./" and leading "/"
// - collapses repeated '/'
func NormalizeRelPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// RelPath returns target relative to root in normalized form.
func RelPath(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", err
	}
	return NormalizeRelPath(rel), nil
}

// ValidateWithinRoot checks that target, after resolving symlinks, lies
// inside root. Paths that do not exist are checked lexically.
func ValidateWithinRoot(root, target string) error {
	resolvedRoot, err := resolve(root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	resolvedTarget, err := resolve(target)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	rel, err := filepath.Rel(resolvedRoot, resolvedTarget)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPathOutsideRoot, target)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return fmt.Errorf("%w: %s", ErrPathOutsideRoot, target)
	}
	return nil
}

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
