package mdbook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Book is the chapter tree mdbook hands to a preprocessor.
type Book struct {
	Sections []BookItem `json:"sections"`
	// mdbook serializes this marker field as null; it has to survive the
	// round trip for the deserializer on the other side.
	NonExhaustive *struct{} `json:"__non_exhaustive"`
}

// BookItem is one entry in the chapter tree. Exactly one of the variant
// fields is set: Chapter for real content, PartTitle for part headers,
// Separator for horizontal rules in the summary.
type BookItem struct {
	Chapter   *Chapter
	PartTitle string
	Separator bool
}

// Chapter is a single renderable page. Path and SourcePath are nil for
// draft chapters that have no backing file.
type Chapter struct {
	Name        string     `json:"name"`
	Content     string     `json:"content"`
	Number      []int      `json:"number"`
	SubItems    []BookItem `json:"sub_items"`
	Path        *string    `json:"path"`
	SourcePath  *string    `json:"source_path"`
	ParentNames []string   `json:"parent_names"`
}

func (i *BookItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte(`"Separator"`)) {
		i.Separator = true
		return nil
	}
	var variants struct {
		Chapter   *Chapter         `json:"Chapter"`
		PartTitle *json.RawMessage `json:"PartTitle"`
	}
	if err := json.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("decode book item: %w", err)
	}
	if variants.Chapter != nil {
		i.Chapter = variants.Chapter
		return nil
	}
	if variants.PartTitle != nil {
		if err := json.Unmarshal(*variants.PartTitle, &i.PartTitle); err != nil {
			return fmt.Errorf("decode part title: %w", err)
		}
		return nil
	}
	return fmt.Errorf("decode book item: unknown variant %s", trimmed)
}

func (i BookItem) MarshalJSON() ([]byte, error) {
	switch {
	case i.Chapter != nil:
		return json.Marshal(map[string]*Chapter{"Chapter": i.Chapter})
	case i.Separator:
		return json.Marshal("Separator")
	default:
		return json.Marshal(map[string]string{"PartTitle": i.PartTitle})
	}
}

// EachChapter walks every chapter in summary order, depth first, and
// calls fn with a pointer so callers can mutate chapter content in place.
func (b *Book) EachChapter(fn func(*Chapter)) {
	eachChapter(b.Sections, fn)
}

func eachChapter(items []BookItem, fn func(*Chapter)) {
	for idx := range items {
		ch := items[idx].Chapter
		if ch == nil {
			continue
		}
		fn(ch)
		eachChapter(ch.SubItems, fn)
	}
}
