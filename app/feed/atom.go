package feed

import (
	"errors"
	"time"
)

type AtomGenerator struct {
	canonicalizer Canonicalizer
}

func NewAtomGenerator(canonicalizer Canonicalizer) *AtomGenerator {
	if canonicalizer == nil {
		canonicalizer = NewURLCanonicalizer("")
	}
	return &AtomGenerator{canonicalizer: canonicalizer}
}

// Run renders v as an Atom 1.0 document.
func (g *AtomGenerator) Run(v *Validated) (string, error) {
	if v == nil || v.Feed == nil {
		return "", errors.New("atom: nothing to render")
	}

	f := v.Feed
	w := newXMLWriter()

	rootAttrs := []attr{{"xmlns", atomNS}}
	if v.Language != "" {
		rootAttrs = append(rootAttrs, attr{"xml:lang", v.Language})
	}
	w.open("feed", 0, rootAttrs...)

	siteURL := g.canonicalizer.Canonicalize(f.SiteURL, "")

	w.writeElement("id", siteURL, 2)
	w.writeElement("title", f.Title, 2)
	w.writeElement("updated", v.UpdatedAt.Format(time.RFC3339), 2)
	w.writeElement("subtitle", f.Description, 2)

	if f.SelfAtomPath != "" {
		w.writeEmpty("link", 2,
			attr{"rel", "self"},
			attr{"href", g.canonicalizer.Canonicalize(f.SelfAtomPath, siteURL)})
	}

	g.writeAuthor(w, f.AuthorName, f.AuthorURL, f.AuthorEmail, 2)

	g.writeCategories(w, f.Categories, 2)

	w.writeElement("rights", f.Copyright, 2)
	w.writeElement("generator", f.Generator, 2)

	content := contentWriterFor(f.UseCDATA)
	for _, item := range v.Items {
		g.writeEntry(w, item, siteURL, content)
	}

	w.close("feed", 0)

	return w.String(), nil
}

func (g *AtomGenerator) writeEntry(w *xmlWriter, item ValidatedItem, siteURL string, content contentWriter) {
	w.open("entry", 2)

	url := g.canonicalizer.Canonicalize(item.URL, siteURL)

	w.writeElement("id", url, 4)
	w.writeElement("title", item.Title, 4)
	w.writeElement("updated", item.UpdatedAt.Format(time.RFC3339), 4)
	w.writeEmpty("link", 4, attr{"href", url})

	g.writeAuthor(w, item.AuthorName, item.AuthorURL, item.AuthorEmail, 4)

	if item.LinkAlt != "" {
		w.writeEmpty("link", 4,
			attr{"rel", "alternate"},
			attr{"href", g.canonicalizer.Canonicalize(item.LinkAlt, siteURL)})
	}

	g.writeCategories(w, item.Categories, 4)

	w.writeElement("summary", item.Summary, 4)

	if item.Content != "" {
		w.writeContent("content", item.Content, 4, content, attr{"type", "html"})
	}

	w.close("entry", 2)
}

// writeAuthor emits an author block only when at least one field is set.
func (g *AtomGenerator) writeAuthor(w *xmlWriter, name, uri, email string, indent int) {
	if name == "" && uri == "" && email == "" {
		return
	}

	w.open("author", indent)
	w.writeElement("name", name, indent+2)
	w.writeElement("uri", uri, indent+2)
	w.writeElement("email", email, indent+2)
	w.close("author", indent)
}

// writeCategories skips empty terms, as RSS does for empty elements.
func (g *AtomGenerator) writeCategories(w *xmlWriter, categories []string, indent int) {
	for _, category := range categories {
		if category == "" {
			continue
		}
		w.writeEmpty("category", indent, attr{"term", category})
	}
}
