// Package cli wires the two mdbook preprocessor binaries: each reads a
// [context, book] JSON pair from stdin, runs its processor, and writes
// the book back to stdout. Diagnostics go to stderr only.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/younata/mdbook-git-atom/internal/atom"
	"github.com/younata/mdbook-git-atom/internal/config"
	"github.com/younata/mdbook-git-atom/internal/mdbook"
	"github.com/younata/mdbook-git-atom/internal/post"
	"github.com/younata/mdbook-git-atom/internal/updated"
	"github.com/younata/mdbook-git-atom/internal/utils"
)

var debug bool

// NewAtomCommand builds the mdbook-git-atom root command.
func NewAtomCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdbook-git-atom",
		Short: "A preprocessor that generates an atom feed for the html renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAtom(cmd.InOrStdin(), cmd.OutOrStdout(), newLogger())
		},
	}
	addCommon(cmd)
	return cmd
}

// NewUpdatedCommand builds the mdbook-git-updated root command.
func NewUpdatedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdbook-git-updated",
		Short: "A preprocessor that replaces " + updated.Marker + " with the most recently updated pages in the repo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdated(cmd.InOrStdin(), cmd.OutOrStdout(), newLogger())
		},
	}
	addCommon(cmd)
	return cmd
}

// Execute is the entry point called by each binary's main.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func addCommon(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	cmd.SilenceUsage = true
	cmd.AddCommand(supportsCommand())
}

func supportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "supports <renderer>",
		Short: "Check whether a renderer is supported by this preprocessor",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if args[0] != "html" {
				os.Exit(1)
			}
		},
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runAtom(r io.Reader, w io.Writer, log *slog.Logger) error {
	ctx, book, err := mdbook.ParseInput(r)
	if err != nil {
		return err
	}
	warnVersion(ctx, log)

	cfg, err := config.LoadAtom(ctx, "git-atom")
	if err != nil {
		return err
	}
	finder, err := post.NewFinder(cfg.Root, log)
	if err != nil {
		return err
	}

	preview := cfg.PreviewLines
	posts, err := finder.Search(book, cfg.SrcDir, &preview, cfg.TargetEntries, cfg.MinCommits)
	if err != nil {
		return err
	}

	feed, err := atom.Generate(posts, cfg.Title, cfg.BaseURL, log)
	if err != nil {
		return err
	}
	data, err := feed.Marshal()
	if err != nil {
		return err
	}
	feedPath := filepath.Join(cfg.Root, cfg.SrcDir, "atom.xml")
	if err := utils.SafeWriteFile(feedPath, data); err != nil {
		return fmt.Errorf("write %s: %w", feedPath, err)
	}

	return mdbook.WriteBook(w, book)
}

func runUpdated(r io.Reader, w io.Writer, log *slog.Logger) error {
	ctx, book, err := mdbook.ParseInput(r)
	if err != nil {
		return err
	}
	warnVersion(ctx, log)

	cfg, err := config.LoadUpdated(ctx, "git-updated")
	if err != nil {
		return err
	}
	finder, err := post.NewFinder(cfg.Root, log)
	if err != nil {
		return err
	}

	// Listings carry no article content, so previews stay disabled here.
	posts, err := finder.Search(book, cfg.SrcDir, nil, cfg.TargetEntries, -1)
	if err != nil {
		return err
	}

	book.EachChapter(func(ch *mdbook.Chapter) {
		ch.Content = updated.Process(ch.Content, posts)
	})

	return mdbook.WriteBook(w, book)
}

func warnVersion(ctx *mdbook.Context, log *slog.Logger) {
	if !ctx.VersionSupported() {
		log.Warn("mdbook version differs from the one this preprocessor was built against",
			"mdbook_version", ctx.MdbookVersion,
			"supported", mdbook.SupportedVersion)
	}
}
