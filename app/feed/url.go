package feed

import (
	"net/url"
	"strings"
)

// Canonicalizer turns a path or URL into an absolute URL.
type Canonicalizer interface {
	Canonicalize(ref, base string) string
}

// URLCanonicalizer resolves relative references onto a base URL. The base
// path is treated as a directory, so "post/1" against "http://x/blog"
// becomes "http://x/blog/post/1"; references starting with "/" resolve
// against the host root. BaseURL, when set, is used whenever the caller's
// base is empty or itself relative.
type URLCanonicalizer struct {
	BaseURL string
}

func NewURLCanonicalizer(baseURL string) *URLCanonicalizer {
	return &URLCanonicalizer{BaseURL: baseURL}
}

func (c *URLCanonicalizer) Canonicalize(ref, base string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return refURL.String()
	}

	baseURL := c.absoluteBase(base)
	if baseURL == nil {
		return ref
	}

	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
		if baseURL.RawPath != "" {
			baseURL.RawPath += "/"
		}
	}

	return baseURL.ResolveReference(refURL).String()
}

func (c *URLCanonicalizer) absoluteBase(base string) *url.URL {
	if u, err := url.Parse(strings.TrimSpace(base)); err == nil && u.IsAbs() {
		return u
	}

	if c.BaseURL == "" {
		return nil
	}

	root, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil || !root.IsAbs() {
		return nil
	}
	if base == "" {
		return root
	}

	// A relative base is itself resolved under BaseURL first.
	resolved := c.Canonicalize(base, root.String())
	u, err := url.Parse(resolved)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}
