package config

import (
	"fmt"
	"os"

	"github.com/lysyi3m/feed-builder/app/feed"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader reads feed documents from YAML files
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new document loader. A nil logger discards output.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads the defaults file (optional) and the source document (required).
func (l *Loader) Load(defaultsPath, sourcePath string) (*Documents, error) {
	defaults, resolved, err := l.LoadDefaults(defaultsPath)
	if err != nil {
		return nil, err
	}

	source, err := l.LoadSource(sourcePath)
	if err != nil {
		return nil, err
	}

	return &Documents{
		DefaultsPath: resolved,
		SourcePath:   sourcePath,
		Defaults:     defaults,
		Source:       source,
	}, nil
}

// LoadDefaults reads the external defaults layer. A missing file is not an
// error and yields an empty layer; the returned path is empty in that case.
func (l *Loader) LoadDefaults(path string) (feed.Overrides, string, error) {
	if path == "" {
		return feed.Overrides{}, "", nil
	}

	resolved, ok := resolvePath(path)
	if !ok {
		l.logger.Debug("No defaults file found", zap.String("path", path))
		return feed.Overrides{}, "", nil
	}

	overrides, err := l.loadFile(resolved)
	if err != nil {
		return feed.Overrides{}, "", fmt.Errorf("error loading defaults %s: %w", resolved, err)
	}

	l.logger.Info("Loaded feed defaults", zap.String("path", resolved))
	return overrides, resolved, nil
}

// LoadSource reads the document describing the feed to build.
func (l *Loader) LoadSource(path string) (feed.Overrides, error) {
	if path == "" {
		return feed.Overrides{}, fmt.Errorf("source document path is required")
	}

	overrides, err := l.loadFile(path)
	if err != nil {
		return feed.Overrides{}, fmt.Errorf("error loading %s: %w", path, err)
	}

	itemCount := 0
	if overrides.Items != nil {
		itemCount = len(*overrides.Items)
	}
	l.logger.Info("Loaded feed document", zap.String("path", path), zap.Int("items", itemCount))

	return overrides, nil
}

func (l *Loader) loadFile(path string) (feed.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return feed.Overrides{}, fmt.Errorf("failed to read file: %w", err)
	}

	var overrides feed.Overrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return feed.Overrides{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return overrides, nil
}
