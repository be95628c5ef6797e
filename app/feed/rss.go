package feed

import (
	"errors"
	"time"
)

type RSSGenerator struct {
	canonicalizer Canonicalizer
}

func NewRSSGenerator(canonicalizer Canonicalizer) *RSSGenerator {
	if canonicalizer == nil {
		canonicalizer = NewURLCanonicalizer("")
	}
	return &RSSGenerator{canonicalizer: canonicalizer}
}

// Run renders v as an RSS 2.0 document. The Atom namespace is declared for
// the channel self link only.
func (g *RSSGenerator) Run(v *Validated) (string, error) {
	if v == nil || v.Feed == nil {
		return "", errors.New("rss: nothing to render")
	}

	f := v.Feed
	w := newXMLWriter()

	w.open("rss", 0, attr{"version", "2.0"}, attr{"xmlns:atom", atomNS})
	w.open("channel", 2)

	siteURL := g.canonicalizer.Canonicalize(f.SiteURL, "")

	w.writeElement("link", siteURL, 4)
	w.writeElement("title", f.Title, 4)
	description := f.Description
	if description == "" {
		description = f.Title
	}
	w.writeElement("description", description, 4)
	w.writeElement("lastBuildDate", v.UpdatedAt.Format(time.RFC1123Z), 4)

	var selfLink string
	if f.SelfRSSPath != "" {
		selfLink = g.canonicalizer.Canonicalize(f.SelfRSSPath, siteURL)
		w.writeEmpty("atom:link", 4,
			attr{"href", selfLink},
			attr{"rel", "self"},
			attr{"type", "application/rss+xml"})
	}

	w.writeElement("managingEditor", f.AuthorEmail, 4)
	w.writeElement("copyright", f.Copyright, 4)
	w.writeElement("language", v.Language, 4)
	w.writeElement("generator", f.Generator, 4)

	for _, category := range f.Categories {
		w.writeElement("category", category, 4)
	}

	content := contentWriterFor(f.UseCDATA)
	for _, item := range v.Items {
		g.writeItem(w, item, f.Title, siteURL, selfLink, content)
	}

	w.close("channel", 2)
	w.close("rss", 0)

	return w.String(), nil
}

func (g *RSSGenerator) writeItem(w *xmlWriter, item ValidatedItem, feedTitle, siteURL, selfLink string, content contentWriter) {
	w.open("item", 4)

	link := g.canonicalizer.Canonicalize(item.URL, siteURL)

	w.writeElement("link", link, 6)
	w.writeElement("title", item.Title, 6)
	w.writeElement("pubDate", item.UpdatedAt.Format(time.RFC1123Z), 6)
	w.writeElement("guid", link, 6, attr{"isPermaLink", "true"})

	switch {
	case item.Content != "":
		w.writeContent("description", item.Content, 6, content)
	case item.Summary != "":
		w.writeElement("description", item.Summary, 6)
	}

	if selfLink != "" {
		w.writeElement("source", feedTitle, 6, attr{"url", selfLink})
	}

	w.writeElement("author", item.AuthorEmail, 6)

	for _, category := range item.Categories {
		w.writeElement("category", category, 6)
	}

	w.close("item", 4)
}
