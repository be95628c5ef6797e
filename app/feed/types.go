package feed

import (
	"time"
)

// Feed descriptor types

type Feed struct {
	Title     string
	SiteURL   string // Base URL item links are resolved against
	UpdatedAt DateInput

	Description  string // Optional in Atom, RSS falls back to Title
	SelfAtomPath string
	SelfRSSPath  string
	AuthorName   string
	AuthorEmail  string
	AuthorURL    string
	Copyright    string
	Language     string // BCP 47 tag
	Generator    string
	Categories   []string

	Items []*Item

	UseCDATA bool // Wrap content in CDATA sections instead of escaping it
}

type Item struct {
	URL       string
	Title     string
	UpdatedAt DateInput

	AuthorName  string
	AuthorEmail string
	AuthorURL   string
	Content     string
	Summary     string
	LinkAlt     string // Alternate permalink
	Categories  []string
}

// AddItem appends item to the feed and returns the feed so calls can be chained.
func (f *Feed) AddItem(item *Item) *Feed {
	f.Items = append(f.Items, item)
	return f
}

// Validation output types

// Validated is a read-only snapshot of a feed whose dates have been resolved
// and whose items are ordered newest first.
type Validated struct {
	Feed      *Feed
	UpdatedAt time.Time
	Language  string // Canonical form of Feed.Language
	Items     []ValidatedItem
}

type ValidatedItem struct {
	*Item
	UpdatedAt time.Time // Shadows Item.UpdatedAt with the resolved instant
}
