package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/docsearch"
	dsslog "github.com/fwojciec/docsearch/slog"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	_, idx, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	entries := idx.Entries()
	if c.JSON {
		if entries == nil {
			entries = []docsearch.IndexEntry{}
		}
		return writeJSON(deps, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No headings found.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\th%d\t%s%s\t%s\n", e.ID, e.Level, strings.Repeat("  ", e.Level-1), e.Title, e.Section)
	}
	return tw.Flush()
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")
	if !docsearch.ParseQuery(query).Valid() {
		err := docsearch.Errorf(docsearch.EINVALID, "query must be at least %d characters", docsearch.MinQueryLength)
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	_, idx, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	results := dsslog.NewLoggingSearcher(docsearch.NewEngine(idx), deps.Logger).Search(query)
	if c.JSON {
		if results == nil {
			results = []docsearch.ScoredResult{}
		}
		return writeJSON(deps, results)
	}

	printResults(deps, results)
	return nil
}

func printResults(deps *Dependencies, results []docsearch.ScoredResult) {
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found")
		return
	}
	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t#%s\n", r.Score, r.Title, r.Section, r.ID)
	}
	_ = tw.Flush()
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
