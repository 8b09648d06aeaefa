package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/docsearch"
	dshttp "github.com/fwojciec/docsearch/http"
	dsslog "github.com/fwojciec/docsearch/slog"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may take after an
// interrupt.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	page, idx, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	html, err := page.HTML()
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	addr := c.Addr
	if addr == "" {
		addr = deps.Config.Addr
	}
	opts := []dshttp.ServerOption{
		dshttp.WithAddr(addr),
		dshttp.WithRateLimit(deps.Config.RateLimit, deps.Config.RateBurst),
		dshttp.WithTrustProxy(deps.Config.TrustProxy),
		dshttp.WithLogger(deps.Logger),
	}
	origins := c.Origins
	if len(origins) == 0 {
		origins = deps.Config.CORSOrigins
	}
	if len(origins) > 0 {
		opts = append(opts, dshttp.WithAllowedOrigins(origins...))
	}
	srv, err := dshttp.NewServer(html, idx, dsslog.NewLoggingSearcher(docsearch.NewEngine(idx), deps.Logger), opts...)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		fmt.Fprintf(deps.Stdout, "Serving %d headings on %s\n", idx.Len(), addr)
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
