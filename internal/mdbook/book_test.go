package mdbook

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const sampleInput = `[
  {
    "root": "/tmp/book",
    "config": {
      "book": {"title": "My Book", "src": "src"},
      "preprocessor": {"git-atom": {"base_url": "https://example.com/"}}
    },
    "renderer": "html",
    "mdbook_version": "0.4.40"
  },
  {
    "sections": [
      {"Chapter": {
        "name": "Intro",
        "content": "# Intro\n",
        "number": null,
        "sub_items": [
          {"Chapter": {
            "name": "Nested",
            "content": "",
            "number": [1, 1],
            "sub_items": [],
            "path": "nested.md",
            "source_path": "nested.md",
            "parent_names": ["Intro"]
          }}
        ],
        "path": "intro.md",
        "source_path": "intro.md",
        "parent_names": []
      }},
      "Separator",
      {"PartTitle": "Appendix"},
      {"Chapter": {
        "name": "Draft",
        "content": "",
        "number": null,
        "sub_items": [],
        "path": null,
        "source_path": null,
        "parent_names": []
      }}
    ],
    "__non_exhaustive": null
  }
]`

func TestParseInput(t *testing.T) {
	ctx, book, err := ParseInput(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ctx.Root != "/tmp/book" || ctx.Renderer != "html" || ctx.MdbookVersion != "0.4.40" {
		t.Fatalf("unexpected context: %+v", ctx)
	}
	if ctx.Config.Book.Title != "My Book" || ctx.Config.Book.Src != "src" {
		t.Fatalf("unexpected book config: %+v", ctx.Config.Book)
	}
	section := ctx.PreprocessorConfig("git-atom")
	if section["base_url"] != "https://example.com/" {
		t.Fatalf("unexpected preprocessor section: %+v", section)
	}
	if ctx.PreprocessorConfig("git-updated") != nil {
		t.Fatal("missing section should be nil")
	}
	if !ctx.VersionSupported() {
		t.Fatal("0.4.x should be supported")
	}

	if len(book.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(book.Sections))
	}
	if !book.Sections[1].Separator || book.Sections[2].PartTitle != "Appendix" {
		t.Fatalf("variant decoding broke: %+v", book.Sections[1:3])
	}
	nested := book.Sections[0].Chapter.SubItems[0].Chapter
	if nested.Name != "Nested" || *nested.Path != "nested.md" || !reflect.DeepEqual(nested.Number, []int{1, 1}) {
		t.Fatalf("unexpected nested chapter: %+v", nested)
	}
	if draft := book.Sections[3].Chapter; draft.Path != nil || draft.SourcePath != nil {
		t.Fatalf("draft chapter paths should be nil: %+v", draft)
	}
}

func TestParseInputDefaultsSrc(t *testing.T) {
	input := `[{"root": "/b", "config": {"book": {"title": "T"}}, "renderer": "html", "mdbook_version": "0.4.40"}, {"sections": [], "__non_exhaustive": null}]`
	ctx, _, err := ParseInput(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ctx.Config.Book.Src != "src" {
		t.Fatalf("missing src should default to \"src\", got %q", ctx.Config.Book.Src)
	}
}

func TestParseInputRejectsMalformedPayloads(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"not json", "nope"},
		{"wrong arity", `[{"root": "/b"}]`},
		{"unknown item variant", `[{"root": "/b", "config": {"book": {}}}, {"sections": [{"Mystery": 1}], "__non_exhaustive": null}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ParseInput(strings.NewReader(tc.input)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestBookRoundTrip(t *testing.T) {
	_, book, err := ParseInput(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteBook(&buf, book); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"Separator"`) || !strings.Contains(out, `"PartTitle":"Appendix"`) {
		t.Fatalf("variant encoding broke: %s", out)
	}
	if !strings.Contains(out, `"__non_exhaustive":null`) {
		t.Fatalf("marker field must survive the round trip: %s", out)
	}

	var again Book
	if err := json.Unmarshal(buf.Bytes(), &again); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(book, &again) {
		t.Fatal("book changed across a marshal/unmarshal round trip")
	}
}

func TestEachChapterVisitsDepthFirst(t *testing.T) {
	_, book, err := ParseInput(strings.NewReader(sampleInput))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var names []string
	book.EachChapter(func(ch *Chapter) {
		names = append(names, ch.Name)
		ch.Content += "!"
	})
	if !reflect.DeepEqual(names, []string{"Intro", "Nested", "Draft"}) {
		t.Fatalf("unexpected visit order: %v", names)
	}
	if book.Sections[0].Chapter.Content != "# Intro\n!" {
		t.Fatal("mutation through the callback should stick")
	}
}
