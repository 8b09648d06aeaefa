package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the theme command.
func (c *ThemeCmd) Run(deps *Dependencies) error {
	settings := docsearch.NewSettings(deps.Preferences)

	var theme docsearch.Theme
	var err error
	switch c.Action {
	case "toggle":
		theme, err = settings.ToggleTheme(deps.Ctx)
	case "dark", "light":
		theme = docsearch.Theme(c.Action)
		err = settings.SetTheme(deps.Ctx, theme)
	default:
		theme, err = settings.Theme(deps.Ctx)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, theme)
	return nil
}

// Run executes the settings command.
func (c *SettingsCmd) Run(deps *Dependencies) error {
	settings := docsearch.NewSettings(deps.Preferences)

	if c.Animations != "" {
		if err := settings.SetAnimationsEnabled(deps.Ctx, c.Animations == "on"); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
			return err
		}
	}
	if c.ResetRating {
		if err := settings.ResetRating(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
			return err
		}
	}

	theme, err := settings.Theme(deps.Ctx)
	if err != nil {
		return err
	}
	animations, err := settings.AnimationsEnabled(deps.Ctx)
	if err != nil {
		return err
	}
	prompt, err := settings.ShouldShowRatingPrompt(deps.Ctx)
	if err != nil {
		return err
	}
	last, err := settings.LastVisitedSection(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "theme: %s\n", theme)
	fmt.Fprintf(deps.Stdout, "animations: %s\n", onOff(animations))
	fmt.Fprintf(deps.Stdout, "rating prompt: %s\n", onOff(prompt))
	if last != "" {
		fmt.Fprintf(deps.Stdout, "last visited: #%s\n", last)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run executes the rate command.
func (c *RateCmd) Run(deps *Dependencies) error {
	settings := docsearch.NewSettings(deps.Preferences)

	if c.Disable {
		if err := settings.SetRatingPromptEnabled(deps.Ctx, false); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, "Rating prompt disabled.")
		return nil
	}

	if c.Stars == 0 {
		show, err := settings.ShouldShowRatingPrompt(deps.Ctx)
		if err != nil {
			return err
		}
		if show {
			fmt.Fprintln(deps.Stdout, "How would you rate this documentation? Run 'docsearch rate <1-5>'.")
		} else {
			fmt.Fprintln(deps.Stdout, "Thanks, your rating has been recorded.")
		}
		return nil
	}

	rating := docsearch.Rating(c.Stars)
	if err := rating.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	if err := settings.CompleteRating(deps.Ctx); err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, rating.Feedback())
	fmt.Fprintf(deps.Stdout, "Send feedback: %s\n", rating.MailtoURL(c.Email, c.Product))
	return nil
}
