package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"

	"github.com/younata/mdbook-git-atom/internal/mdbook"
)

// Atom is the validated configuration for the git-atom preprocessor,
// assembled from [preprocessor.git-atom] plus the [book] table.
type Atom struct {
	// Title becomes the feed-level title. Required.
	Title string
	// BaseURL is the absolute address entry links are resolved against.
	BaseURL *url.URL
	// SrcDir is the book source directory relative to Root.
	SrcDir string
	// Root is the book (and repository) root directory.
	Root string
	// PreviewLines caps article preview size: 0 means no preview, -1 the
	// whole article, N>0 the first N source lines.
	PreviewLines int
	// TargetEntries is the target number of feed entries. 0 restores the
	// legacy behavior where MinCommits bounds the selection instead.
	TargetEntries int
	// MinCommits is the legacy commit-count horizon, consulted only when
	// TargetEntries is 0.
	MinCommits int
}

// Updated is the validated configuration for the git-updated preprocessor.
type Updated struct {
	SrcDir        string
	Root          string
	TargetEntries int
}

// LoadAtom reads and validates the git-atom section from the preprocessor
// context. Any invalid value is fatal before core logic runs.
func LoadAtom(ctx *mdbook.Context, name string) (*Atom, error) {
	v, err := newSection(ctx, name)
	if err != nil {
		return nil, err
	}

	base := v.GetString("base_url")
	if base == "" {
		return nil, fmt.Errorf("config %s: base_url is required", name)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("config %s: parse base_url: %w", name, err)
	}
	if !baseURL.IsAbs() {
		return nil, fmt.Errorf("config %s: base_url %q is not an absolute address", name, base)
	}

	previewLines := v.GetInt("article_preview_lines")
	if previewLines < -1 {
		return nil, fmt.Errorf("config %s: invalid article_preview_lines %d: expected -1, 0 or a positive number", name, previewLines)
	}
	targetEntries := v.GetInt("target_number_of_entries")
	if targetEntries < -1 {
		return nil, fmt.Errorf("config %s: invalid target_number_of_entries %d: expected -1, 0 or a positive number", name, targetEntries)
	}

	if ctx.Config.Book.Title == "" {
		return nil, fmt.Errorf("config %s: book.title is required for the feed title", name)
	}

	return &Atom{
		Title:         ctx.Config.Book.Title,
		BaseURL:       baseURL,
		SrcDir:        ctx.Config.Book.Src,
		Root:          ctx.Root,
		PreviewLines:  previewLines,
		TargetEntries: targetEntries,
		MinCommits:    v.GetInt("minimum_number_of_commits"),
	}, nil
}

// LoadUpdated reads and validates the git-updated section.
func LoadUpdated(ctx *mdbook.Context, name string) (*Updated, error) {
	v, err := newSection(ctx, name)
	if err != nil {
		return nil, err
	}

	targetEntries := v.GetInt("target_number_of_entries")
	if targetEntries < -1 {
		return nil, fmt.Errorf("config %s: invalid target_number_of_entries %d: expected -1, 0 or a positive number", name, targetEntries)
	}

	return &Updated{
		SrcDir:        ctx.Config.Book.Src,
		Root:          ctx.Root,
		TargetEntries: targetEntries,
	}, nil
}

// newSection builds a viper instance carrying the defaults with the
// book.toml section merged over them.
func newSection(ctx *mdbook.Context, name string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("base_url", "")
	v.SetDefault("article_preview_lines", 0)
	v.SetDefault("target_number_of_entries", 10)
	v.SetDefault("minimum_number_of_commits", -1)

	if section := ctx.PreprocessorConfig(name); section != nil {
		if err := v.MergeConfigMap(section); err != nil {
			return nil, fmt.Errorf("config %s: merge section: %w", name, err)
		}
	}
	return v, nil
}
