package cfg

import "time"

// Output formats accepted by --format.
const (
	FormatAtom = "atom"
	FormatRSS  = "rss"
	FormatBoth = "both"
)

type Cfg struct {
	// Documents
	Input    string
	Defaults string

	// Output
	Format  string
	AtomOut string
	RSSOut  string
	Lax     bool

	// Rendering
	BaseURL  string
	Timezone string
	Location *time.Location

	// Logging
	LogLevel string
	LogFile  string

	Version string
}

// WantsAtom reports whether an Atom document should be written.
func (c *Cfg) WantsAtom() bool {
	return c.Format == FormatAtom || c.Format == FormatBoth
}

// WantsRSS reports whether an RSS document should be written.
func (c *Cfg) WantsRSS() bool {
	return c.Format == FormatRSS || c.Format == FormatBoth
}
