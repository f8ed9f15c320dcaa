package post

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/younata/mdbook-git-atom/internal/gitrepo"
	"github.com/younata/mdbook-git-atom/internal/markdown"
	"github.com/younata/mdbook-git-atom/internal/mdbook"
)

// ErrNoAttribution marks a document whose history cannot be resolved
// (untracked file, empty history, resolver failure). Callers exclude the
// document and continue; mixed tracked/untracked trees must not fail a
// whole build.
var ErrNoAttribution = errors.New("no attribution available")

// ErrNoPosts means selection was asked to rank an empty post set. There
// is no valid feed or listing to build from zero documents.
var ErrNoPosts = errors.New("no posts to select from")

// Finder extracts posts from the repository's line-level history and
// selects the subset to publish. It exclusively owns the repository
// handle for the duration of a run.
type Finder struct {
	repo *gitrepo.Repository
	root string
	log  *slog.Logger
}

// NewFinder opens the repository rooted at the book root.
func NewFinder(root string, log *slog.Logger) (*Finder, error) {
	repo, err := gitrepo.Open(root)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Finder{repo: repo, root: root, log: log}, nil
}

// Extract turns the per-line attribution of one document into a Post.
// srcPath is the document's path relative to the repository root (slash
// separated); outPath is its output path. previewLines controls the
// rendered preview: nil disables content entirely, -1 renders the whole
// file, 0 renders nothing, N>0 renders the first N source lines.
//
// A document without resolvable history returns an error satisfying
// errors.Is(err, ErrNoAttribution); any other error is fatal to the run.
func (f *Finder) Extract(srcPath, title, outPath string, previewLines *int) (Post, error) {
	lines, err := f.repo.Blame(srcPath)
	if err != nil {
		return Post{}, fmt.Errorf("attribute %s: %w: %w", srcPath, ErrNoAttribution, err)
	}
	if len(lines) == 0 {
		return Post{}, fmt.Errorf("attribute %s: attribution yielded no records for current content", srcPath)
	}

	// Line 0 anchors last-modified, the final line anchors created. This
	// mirrors how the resolver orders blame output; it is intentionally
	// not a position-independent newest-change computation.
	lastModified := lines[0].When
	created := lines[len(lines)-1].When

	seen := make(map[Author]struct{}, len(lines))
	var authors []Author
	for _, l := range lines {
		if l.AuthorName == "" {
			continue
		}
		a := Author{Name: l.AuthorName, Email: l.AuthorEmail}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		authors = append(authors, a)
	}

	var content string
	if previewLines != nil {
		src, err := readPreview(filepath.Join(f.root, filepath.FromSlash(srcPath)), *previewLines)
		if err != nil {
			return Post{}, fmt.Errorf("read %s: %w", srcPath, err)
		}
		content, err = markdown.Render(src)
		if err != nil {
			return Post{}, fmt.Errorf("render %s: %w", srcPath, err)
		}
	}

	return Post{
		Path:         outPath,
		LastModified: lastModified,
		Created:      created,
		Authors:      authors,
		Title:        title,
		ID:           outPath,
		Content:      content,
	}, nil
}

// Select sorts posts by last-modified descending (stable, ties keep
// their input order) and bounds them to a selection horizon. When
// targetCount is 0 the horizon is the timestamp of the minCommits-th
// most recent commit (legacy behavior); otherwise it is the oldest
// commit in history, combined with truncation to targetCount entries.
// The cutoff filter is inclusive. The output preserves the sorted order.
func (f *Finder) Select(posts []Post, targetCount, minCommits int) ([]Post, error) {
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}

	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastModified.After(sorted[j].LastModified)
	})

	limit := 0
	if targetCount == 0 {
		// Taking zero commits from the traversal leaves no cutoff to
		// anchor the horizon on. A negative count means unbounded.
		if minCommits == 0 {
			return nil, fmt.Errorf("commit horizon of 0 commits yields no cutoff: %w", gitrepo.ErrNoCommits)
		}
		limit = minCommits
	}
	cutoff, err := f.repo.CutoffTime(limit)
	if err != nil {
		return nil, err
	}

	var selected []Post
	for _, p := range sorted {
		if p.LastModified.Before(cutoff) {
			continue
		}
		selected = append(selected, p)
		if targetCount > 0 && len(selected) == targetCount {
			break
		}
	}
	return selected, nil
}

// Search runs the full pipeline for a book: extract a post per chapter,
// skipping chapters without history, then select the publishable subset.
func (f *Finder) Search(book *mdbook.Book, srcDir string, previewLines *int, targetCount, minCommits int) ([]Post, error) {
	var (
		posts []Post
		fatal error
	)
	book.EachChapter(func(ch *mdbook.Chapter) {
		if fatal != nil {
			return
		}
		if ch.SourcePath == nil || ch.Path == nil {
			return
		}
		srcPath := path.Join(filepath.ToSlash(srcDir), filepath.ToSlash(*ch.SourcePath))
		p, err := f.Extract(srcPath, ch.Name, filepath.ToSlash(*ch.Path), previewLines)
		if err != nil {
			if errors.Is(err, ErrNoAttribution) {
				f.log.Debug("skipping chapter without history", "path", srcPath, "error", err)
				return
			}
			fatal = err
			return
		}
		posts = append(posts, p)
	})
	if fatal != nil {
		return nil, fatal
	}
	return f.Select(posts, targetCount, minCommits)
}

// readPreview reads up to limit source lines from path. limit -1 reads
// the whole file, 0 reads nothing.
func readPreview(path string, limit int) (string, error) {
	if limit == 0 {
		return "", nil
	}
	if limit == -1 {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	// bufio.Reader instead of a Scanner: article lines can exceed a
	// Scanner's token limit, and a long line is valid input, not an error.
	reader := bufio.NewReader(file)
	var lines []string
	for len(lines) < limit {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}
