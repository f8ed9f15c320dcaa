package updated

import (
	"strings"
	"testing"
	"time"

	"github.com/younata/mdbook-git-atom/internal/post"
)

var posts = []post.Post{
	{Title: "First", Path: "first.md", LastModified: time.Date(2023, 5, 1, 15, 0, 0, 0, time.UTC)},
	{Title: "Second", Path: "guide/second.md", LastModified: time.Date(2023, 4, 30, 9, 30, 0, 0, time.UTC)},
}

const wantList = "- [First](/first.md) (2023-05-01)\n- [Second](/guide/second.md) (2023-04-30)\n"

func TestProcessReplacesMarker(t *testing.T) {
	out := Process("intro\n"+Marker+"\noutro\n", posts)
	want := "intro\n" + wantList + "\noutro\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestProcessReplacesEveryOccurrence(t *testing.T) {
	src := "before " + Marker + " between " + Marker + " after"
	out := Process(src, posts)

	if strings.Contains(out, Marker) {
		t.Fatalf("marker left in output: %q", out)
	}
	if strings.Count(out, wantList) != 2 {
		t.Fatalf("each occurrence should get its own full list: %q", out)
	}
	want := "before " + wantList + " between " + wantList + " after"
	if out != want {
		t.Fatalf("surrounding text not preserved: %q", out)
	}
}

func TestProcessWithoutMarker(t *testing.T) {
	src := "# Chapter\n\nnothing to see here\n"
	if out := Process(src, posts); out != src {
		t.Fatalf("content without the marker must pass through untouched: %q", out)
	}
}

func TestProcessEmptyContent(t *testing.T) {
	if out := Process("", posts); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
