package post

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Author identifies a contributor to a post's current content. Two
// records with the same name and same (possibly empty) email are the
// same author.
type Author struct {
	Name  string
	Email string
}

// Post is a single tracked document's publishable state, derived from
// the line-level history of its current content.
type Post struct {
	// Path is the document's output path relative to the book root.
	Path string
	// LastModified is the commit time of the newest surviving line.
	LastModified time.Time
	// Created is the commit time of the oldest surviving line.
	Created time.Time
	// Authors is the deduplicated set of contributors, in first-seen
	// order.
	Authors []Author
	// Title is the display name supplied by the book summary.
	Title string
	// ID is the stable identity derived from the output path.
	ID string
	// Content is the rendered HTML preview, empty when previews are
	// disabled.
	Content string
}

// SourceURL resolves the post's output path against the base address and
// rewrites markdown suffixes to their rendered counterparts:
// .../README.md becomes .../index.html, any other md suffix becomes html.
func (p Post) SourceURL(base *url.URL) (string, error) {
	if p.Path == "" {
		return "", errors.New("post has no output path")
	}
	resolved := base.ResolveReference(&url.URL{Path: p.Path})
	return rewriteMdSuffix(rewriteReadmeSuffix(resolved.String())), nil
}

func rewriteReadmeSuffix(s string) string {
	if strings.HasSuffix(s, "README.md") {
		return strings.TrimSuffix(s, "README.md") + "index.html"
	}
	return s
}

func rewriteMdSuffix(s string) string {
	if strings.HasSuffix(s, "md") {
		return strings.TrimSuffix(s, "md") + "html"
	}
	return s
}
