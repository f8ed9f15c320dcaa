package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// engine is stateless and safe to reuse across calls. Strikethrough is
// the one extension article sources rely on beyond CommonMark.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
)

// Render converts markdown source to HTML. Empty input yields empty
// output.
func Render(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := engine.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
