package mdbook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// SupportedVersion is the mdbook release line this preprocessor was built
// against. A book built by a different line still gets processed, with a
// warning, since the subset of the protocol we rely on is stable.
const SupportedVersion = "0.4"

// Context is the preprocessor context mdbook sends alongside the book.
type Context struct {
	Root          string `json:"root"`
	Config        Config `json:"config"`
	Renderer      string `json:"renderer"`
	MdbookVersion string `json:"mdbook_version"`
}

// Config mirrors the subset of book.toml we care about.
type Config struct {
	Book         BookConfig                `json:"book"`
	Preprocessor map[string]map[string]any `json:"preprocessor"`
}

// BookConfig holds the [book] table.
type BookConfig struct {
	Title string `json:"title"`
	Src   string `json:"src"`
}

// PreprocessorConfig returns the [preprocessor.<name>] table, or nil when
// the section is absent from book.toml.
func (c *Context) PreprocessorConfig(name string) map[string]any {
	return c.Config.Preprocessor[name]
}

// VersionSupported reports whether the sending mdbook belongs to the
// release line this binary was built against.
func (c *Context) VersionSupported() bool {
	return strings.HasPrefix(c.MdbookVersion, SupportedVersion+".")
}

// ParseInput decodes the `[context, book]` JSON array mdbook writes to a
// preprocessor's stdin.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("decode preprocessor input: %w", err)
	}
	if len(raw) != 2 {
		return nil, nil, fmt.Errorf("decode preprocessor input: expected [context, book], got %d elements", len(raw))
	}

	var ctx Context
	if err := json.Unmarshal(raw[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("decode preprocessor context: %w", err)
	}
	if ctx.Config.Book.Src == "" {
		ctx.Config.Book.Src = "src"
	}

	var book Book
	if err := json.Unmarshal(raw[1], &book); err != nil {
		return nil, nil, fmt.Errorf("decode book: %w", err)
	}
	return &ctx, &book, nil
}

// WriteBook serializes the processed book back to mdbook on stdout.
func WriteBook(w io.Writer, book *Book) error {
	if err := json.NewEncoder(w).Encode(book); err != nil {
		return fmt.Errorf("encode book: %w", err)
	}
	return nil
}
