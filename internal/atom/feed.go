// Package atom models the subset of Atom 1.0 (RFC 4287) this feed needs
// and serializes it with encoding/xml.
package atom

import (
	"encoding/xml"
	"fmt"
	"time"
)

const xmlns = "http://www.w3.org/2005/Atom"

// Feed is an Atom feed document.
type Feed struct {
	XMLName xml.Name `xml:"feed"`
	Xmlns   string   `xml:"xmlns,attr"`
	Title   string   `xml:"title"`
	ID      string   `xml:"id"`
	Updated string   `xml:"updated"`
	Entries []Entry  `xml:"entry"`
}

// Entry is a single feed entry.
type Entry struct {
	Title     string   `xml:"title"`
	ID        string   `xml:"id"`
	Updated   string   `xml:"updated"`
	Published string   `xml:"published"`
	Authors   []Person `xml:"author"`
	Links     []Link   `xml:"link"`
	Content   *Content `xml:"content"`
}

// Person is an Atom person construct.
type Person struct {
	Name  string `xml:"name"`
	Email string `xml:"email,omitempty"`
}

// Link is an Atom link element.
type Link struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// Content is an entry's content element.
type Content struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// Marshal serializes the feed as a UTF-8 XML document.
func (f *Feed) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Timestamp formats a feed timestamp: RFC 3339 in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
