package markdown

import (
	"strings"
	"testing"
)

func TestRenderEmptyInput(t *testing.T) {
	out, err := Render("")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("empty input should render empty output, got %q", out)
	}
}

func TestRenderBasicMarkup(t *testing.T) {
	out, err := Render("# Title\n\nsome *body* text\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<em>body</em>") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderStrikethrough(t *testing.T) {
	out, err := Render("this is ~~struck~~ out\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<del>struck</del>") {
		t.Fatalf("strikethrough extension should be enabled: %q", out)
	}
}
