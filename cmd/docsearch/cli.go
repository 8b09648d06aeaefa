package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Config      *config.Config
	ConfigPath  string
	Loader      PageLoader
	Preferences docsearch.PreferenceStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigFile string `name:"config" default:"docsearch.yml" help:"Config file path"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`

	Index    IndexCmd    `cmd:"" help:"Print the search index of a page"`
	Search   SearchCmd   `cmd:"" help:"Search a page"`
	Serve    ServeCmd    `cmd:"" help:"Serve a page with its search API"`
	Browse   BrowseCmd   `cmd:"" help:"Search a page interactively"`
	Render   RenderCmd   `cmd:"" help:"Render a page with navigation state applied"`
	Theme    ThemeCmd    `cmd:"" help:"Show or change the theme"`
	Settings SettingsCmd `cmd:"" help:"Show or change settings"`
	Rate     RateCmd     `cmd:"" help:"Rate the documentation"`
	Vault    VaultCmd    `cmd:"" help:"Manage values stored in the vault"`
	Conf     ConfigCmd   `cmd:"" name:"config" help:"Show or write the effective configuration"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Source string `arg:"" help:"HTML or Markdown file, URL, or - for stdin"`
	JSON   bool   `help:"Print entries as JSON"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Source string   `arg:"" help:"HTML or Markdown file, URL, or - for stdin"`
	Query  []string `arg:"" help:"Search terms"`
	JSON   bool     `help:"Print results as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Source  string   `arg:"" help:"HTML or Markdown file or URL"`
	Addr    string   `help:"Listen address (default from config)"`
	Origins []string `name:"origin" help:"Allowed CORS origin (repeatable, default from config)"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Source string `arg:"" help:"HTML or Markdown file or URL"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Source   string `arg:"" help:"HTML or Markdown file, URL, or - for stdin"`
	Fragment string `short:"f" help:"URL fragment to navigate to, e.g. #install"`
	Query    string `short:"q" help:"Show results for this query"`
	Platform string `enum:",windows,macos,linux" default:"" help:"Installation tab to show"`
	Output   string `short:"o" help:"Write HTML to file instead of stdout"`
}

// ThemeCmd is the "theme" subcommand.
type ThemeCmd struct {
	Action string `arg:"" optional:"" enum:"show,toggle,dark,light" default:"show" help:"show, toggle, dark or light"`
}

// SettingsCmd is the "settings" subcommand.
type SettingsCmd struct {
	Animations  string `enum:",on,off" default:"" help:"Turn animations on or off"`
	ResetRating bool   `help:"Show the rating prompt again"`
}

// RateCmd is the "rate" subcommand.
type RateCmd struct {
	Stars   int    `arg:"" optional:"" help:"Rating from 1 to 5"`
	Disable bool   `help:"Never show the rating prompt"`
	Email   string `default:"docs@example.com" help:"Feedback recipient"`
	Product string `default:"the documentation" help:"Name used in the feedback e-mail"`
}

// VaultCmd groups the vault subcommands.
type VaultCmd struct {
	List   VaultListCmd   `cmd:"" help:"List the names of stored values"`
	Get    VaultGetCmd    `cmd:"" help:"Print a stored value"`
	Put    VaultPutCmd    `cmd:"" help:"Store a value (JSON or plain text)"`
	Delete VaultDeleteCmd `cmd:"" help:"Remove a stored value"`
}

// VaultListCmd is the "vault list" subcommand.
type VaultListCmd struct{}

// VaultGetCmd is the "vault get" subcommand.
type VaultGetCmd struct {
	Name string `arg:"" help:"Value name"`
}

// VaultPutCmd is the "vault put" subcommand.
type VaultPutCmd struct {
	Name  string `arg:"" help:"Value name"`
	Value string `arg:"" help:"Value to store"`
}

// VaultDeleteCmd is the "vault delete" subcommand.
type VaultDeleteCmd struct {
	Name string `arg:"" help:"Value name"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct {
	Write bool `help:"Write the effective configuration to the config file"`
}
