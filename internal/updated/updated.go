// Package updated substitutes "recently updated" listings into chapter
// content.
package updated

import (
	"fmt"
	"strings"

	"github.com/younata/mdbook-git-atom/internal/post"
)

// Marker is the literal token replaced by the listing. Every occurrence
// is replaced independently; all surrounding text is preserved verbatim.
const Marker = "{{#recently_updated}}"

// Process replaces each occurrence of Marker in content with a markdown
// bullet list of the given posts. The list is regenerated per occurrence
// rather than shared.
func Process(content string, posts []post.Post) string {
	var out strings.Builder
	rest := content
	for {
		idx := strings.Index(rest, Marker)
		if idx < 0 {
			break
		}
		out.WriteString(rest[:idx])
		out.WriteString(listing(posts))
		rest = rest[idx+len(Marker):]
	}
	out.WriteString(rest)
	return out.String()
}

// listing renders one bullet line per post: title, root-relative link to
// the raw output path (mdbook's renderer rewrites intra-book md links),
// and the modification date.
func listing(posts []post.Post) string {
	var b strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&b, "- [%s](/%s) (%s)\n", p.Title, p.Path, p.LastModified.UTC().Format("2006-01-02"))
	}
	return b.String()
}
