package diagfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// formatPath renders path according to mode. Failures to resolve fall back to
// the path as given.
func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if rel, ok := relativeTo(path, baseDir); ok {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if rel, ok := relativeTo(path, ""); ok && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return filepath.ToSlash(path)
}

func relativeTo(path, base string) (string, bool) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		base = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	baseAbs, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(baseAbs, abs)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
