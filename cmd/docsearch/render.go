package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/docsearch"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	page, idx, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	settings := docsearch.NewSettings(deps.Preferences)
	theme, err := settings.Theme(deps.Ctx)
	if err != nil {
		return err
	}
	page.SetTheme(theme)

	if c.Platform != "" {
		page.ActivatePlatformTab(docsearch.Platform(c.Platform))
	}

	if c.Fragment != "" {
		id, err := page.ActivateFragment(c.Fragment)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
			return err
		}
		if err := settings.SetLastVisitedSection(deps.Ctx, id); err != nil {
			return err
		}
	}

	if c.Query != "" {
		if !docsearch.ParseQuery(c.Query).Valid() {
			page.Hide()
		} else if results := docsearch.Search(c.Query, idx); len(results) > 0 {
			page.Show(results)
		} else {
			page.ShowEmpty()
		}
	}

	html, err := page.HTML()
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if c.Output == "" {
		_, err := fmt.Fprintln(deps.Stdout, html)
		return err
	}
	if err := os.WriteFile(c.Output, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Output)
	return nil
}
