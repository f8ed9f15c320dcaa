package gitrepo

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// ErrNoCommits means the repository history is empty, which leaves no
// recency semantics to build a selection from.
var ErrNoCommits = errors.New("repository has no commits")

// Repository is the exclusively-owned version-control handle for one run.
// It is opened once, threaded through extraction and selection, and never
// shared across goroutines.
type Repository struct {
	repo *git.Repository
}

// Line is one per-line attribution record for a file's current content,
// ordered by current line position.
type Line struct {
	AuthorName  string
	AuthorEmail string
	When        time.Time
}

// Open opens the repository working tree rooted at path.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return &Repository{repo: repo}, nil
}

// Blame returns per-line attribution for the current content of the file
// at the given slash-separated path relative to the repository root. Any
// failure here means the file has no usable history.
func (r *Repository) Blame(path string) ([]Line, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD commit: %w", err)
	}
	result, err := git.Blame(commit, path)
	if err != nil {
		return nil, fmt.Errorf("blame %s: %w", path, err)
	}

	lines := make([]Line, 0, len(result.Lines))
	for _, l := range result.Lines {
		lines = append(lines, Line{
			AuthorName:  l.AuthorName,
			AuthorEmail: l.Author,
			When:        l.Date,
		})
	}
	return lines, nil
}

// CutoffTime walks commits newest-first by committer time, following all
// parents, and returns the timestamp of the oldest commit reached. When
// limit is positive the walk stops after limit commits; otherwise it runs
// to the end of history. An empty walk returns ErrNoCommits.
func (r *Repository) CutoffTime(limit int) (time.Time, error) {
	iter, err := r.repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return time.Time{}, ErrNoCommits
		}
		return time.Time{}, fmt.Errorf("walk commits: %w", err)
	}
	defer iter.Close()

	var (
		seen   int
		cutoff time.Time
	)
	err = iter.ForEach(func(c *object.Commit) error {
		cutoff = c.Committer.When
		seen++
		if limit > 0 && seen >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("walk commits: %w", err)
	}
	if seen == 0 {
		return time.Time{}, ErrNoCommits
	}
	return cutoff, nil
}
