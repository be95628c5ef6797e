package config

import (
	"os"
	"path/filepath"
	"strings"
)

// resolvePath returns path if it exists, otherwise the same path with the
// sibling YAML extension (.yml <-> .yaml) if that one exists.
func resolvePath(path string) (string, bool) {
	if fileExists(path) {
		return path, true
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	var alt string
	switch ext {
	case ".yml":
		alt = base + ".yaml"
	case ".yaml":
		alt = base + ".yml"
	default:
		return path, false
	}

	if fileExists(alt) {
		return alt, true
	}
	return path, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
