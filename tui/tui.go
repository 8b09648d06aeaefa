package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/docsearch"
)

// Options configures Run.
type Options struct {
	Session docsearch.SessionConfig
	Styles  Styles

	// StartSection is shown first when it names an indexed section.
	StartSection string

	Input  io.Reader
	Output io.Writer
	Logger *slog.Logger
}

// Run starts an interactive search over idx and blocks until the user quits
// or ctx is done. It returns the section shown last.
func Run(ctx context.Context, idx *docsearch.Index, opts Options) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	binding := NewBinding(idx)
	session := docsearch.NewSession(idx, binding, binding, docsearch.SystemScheduler{}, opts.Session)
	defer session.Close()
	logger.Debug("session started", "session", session.ID, "entries", idx.Len())

	model := NewModel(session, opts.Styles, logger)
	if opts.StartSection != "" {
		if err := binding.ActivateSection(opts.StartSection); err == nil {
			model.section = opts.StartSection
		}
		binding.drain()
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(model, programOpts...)

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	binding.Start(pumpCtx, program)

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	return binding.ActiveSection(), err
}
