package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/docsearch"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/tui"
	"github.com/mattn/go-isatty"
)

// Run executes the browse command. Without a terminal it reads one query
// per line from stdin and prints the results.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	_, idx, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if !isTerminal(deps.Stdout) {
		return browsePlain(deps, idx)
	}

	settings := docsearch.NewSettings(deps.Preferences)
	theme, err := settings.Theme(deps.Ctx)
	if err != nil {
		return err
	}
	last, err := settings.LastVisitedSection(deps.Ctx)
	if err != nil {
		// An unreadable vault value only loses the start position.
		deps.Logger.Warn("last visited section", "err", err)
	}

	styles := tui.ThemeStyles(theme)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		styles = tui.NoColorStyles()
	}

	section, err := tui.Run(deps.Ctx, idx, tui.Options{
		Session:      deps.Config.SessionConfig(),
		Styles:       styles,
		StartSection: last,
		Input:        deps.Stdin,
		Output:       deps.Stdout,
		Logger:       deps.Logger,
	})
	if err != nil {
		return err
	}
	if section != "" {
		return settings.SetLastVisitedSection(deps.Ctx, section)
	}
	return nil
}

func browsePlain(deps *Dependencies, idx *docsearch.Index) error {
	searcher := dsslog.NewLoggingSearcher(docsearch.NewEngine(idx), deps.Logger)
	scanner := bufio.NewScanner(deps.Stdin)
	for scanner.Scan() {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}
		q := scanner.Text()
		if !docsearch.ParseQuery(q).Valid() {
			continue
		}
		fmt.Fprintf(deps.Stdout, "> %s\n", q)
		printResults(deps, searcher.Search(q))
	}
	return scanner.Err()
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
