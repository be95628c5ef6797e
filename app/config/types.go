package config

import "github.com/lysyi3m/feed-builder/app/feed"

// Documents holds the two YAML layers read for one build.
type Documents struct {
	DefaultsPath string
	SourcePath   string

	// Defaults is empty when no defaults file exists.
	Defaults feed.Overrides
	Source   feed.Overrides
}

// Feed assembles the built-in defaults, the defaults file and the source
// document, in that order of precedence.
func (d *Documents) Feed() *feed.Feed {
	return feed.Assemble(nil, d.Defaults, d.Source)
}
