package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/config"
	"github.com/fwojciec/docsearch/goldmark"
	dshttp "github.com/fwojciec/docsearch/http"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Input for commands that read queries or pages from stdin.
	Stdin io.Reader

	// SQLite database used by the preference store.
	DB *sqlite.DB

	// Services for end-to-end testing. When nil, Run wires the defaults.
	Preferences docsearch.PreferenceStore
	Fetcher     docsearch.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// commandsWithPreferences need the preference store.
var commandsWithPreferences = map[string]bool{
	"browse":   true,
	"render":   true,
	"theme":    true,
	"settings": true,
	"rate":     true,
	"vault":    true,
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Description("Search documentation pages by heading"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %s", docsearch.ErrorMessage(err))
	}
	deps.Config = cfg
	deps.ConfigPath = cli.ConfigFile

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = dshttp.NewFetcher(
			dshttp.WithTimeout(cfg.FetchTimeout),
			dshttp.WithRetryDelays(dshttp.DefaultRetryDelays()...),
			dshttp.WithRetryLogger(deps.Logger),
		)
	}
	defer fetcher.Close()
	deps.Loader = &Loader{
		Fetcher:  dsslog.NewLoggingFetcher(fetcher, deps.Logger),
		Markdown: goldmark.NewRenderer(),
		Stdin:    m.Stdin,
		Logger:   deps.Logger,
	}

	cmd := strings.Fields(kongCtx.Command())[0]
	if commandsWithPreferences[cmd] {
		if m.Preferences == nil {
			if err := m.openDB(cfg.DBPath); err != nil {
				fmt.Fprintf(stderr, "Hint: Set %sDB_PATH to use a different database path\n", config.EnvPrefix)
				return err
			}
			defer m.Close()
			m.Preferences = sqlite.NewPreferenceStore(m.DB)
		}
		deps.Preferences = dsslog.NewLoggingPreferenceStore(m.Preferences, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}
