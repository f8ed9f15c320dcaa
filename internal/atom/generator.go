package atom

import (
	"html"
	"log/slog"
	"net/url"

	"github.com/younata/mdbook-git-atom/internal/post"
)

// Generate maps an ordered post list into a feed document. The feed's
// updated time comes from the first (most recent) post. Entries whose
// link cannot be resolved are dropped, not fatal.
func Generate(posts []post.Post, title string, base *url.URL, log *slog.Logger) (*Feed, error) {
	if len(posts) == 0 {
		return nil, post.ErrNoPosts
	}
	if log == nil {
		log = slog.Default()
	}

	entries := make([]Entry, 0, len(posts))
	for _, p := range posts {
		href, err := p.SourceURL(base)
		if err != nil {
			log.Warn("dropping entry without a resolvable link", "path", p.Path, "error", err)
			continue
		}
		entries = append(entries, Entry{
			Title:     p.Title,
			ID:        p.ID,
			Updated:   Timestamp(p.LastModified),
			Published: Timestamp(p.Created),
			Authors:   persons(p.Authors),
			Links:     []Link{{Href: href, Rel: "self"}},
			Content: &Content{
				Type:  "html",
				Value: html.EscapeString(p.Content),
			},
		})
	}
	log.Info("created feed entries", "count", len(entries))

	return &Feed{
		Xmlns:   xmlns,
		Title:   title,
		ID:      "",
		Updated: Timestamp(posts[0].LastModified),
		Entries: entries,
	}, nil
}

func persons(authors []post.Author) []Person {
	people := make([]Person, 0, len(authors))
	for _, a := range authors {
		people = append(people, Person{Name: a.Name, Email: a.Email})
	}
	return people
}
