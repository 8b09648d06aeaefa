package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server defaults.
const (
	DefaultAddr      = ":8080"
	DefaultRateLimit = 20
	DefaultRateBurst = 40
)

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string                   `json:"query"`
	Results []docsearch.ScoredResult `json:"results"`
	Empty   bool                     `json:"empty"`
}

// Server serves one indexed page: the page itself, its index, and search
// over it.
type Server struct {
	Addr string

	// Page HTML with the ids assigned during indexing.
	html     string
	searcher docsearch.Searcher

	indexJSON []byte
	etag      string

	limiter    *ClientLimiter
	origins    []string
	trustProxy bool
	logger     *slog.Logger

	router     chi.Router
	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) ServerOption {
	return func(s *Server) { s.Addr = addr }
}

// WithRateLimit limits API requests to limit per second with the given
// burst, per client.
func WithRateLimit(limit float64, burst int) ServerOption {
	return func(s *Server) { s.limiter = NewClientLimiter(limit, burst) }
}

// WithTrustProxy takes the client address from X-Forwarded-For, X-Real-IP
// or True-Client-IP. Enable it only behind a reverse proxy that sets those
// headers; otherwise clients choose their own rate limit bucket.
func WithTrustProxy(trust bool) ServerOption {
	return func(s *Server) { s.trustProxy = trust }
}

// WithAllowedOrigins sets the CORS origins allowed on the API.
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) { s.origins = origins }
}

// WithLogger sets the logger used for failed page renders.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a Server for the indexed page html.
func NewServer(html string, idx *docsearch.Index, searcher docsearch.Searcher, opts ...ServerOption) (*Server, error) {
	s := &Server{
		Addr:     DefaultAddr,
		html:     html,
		searcher: searcher,
		limiter:  NewClientLimiter(DefaultRateLimit, DefaultRateBurst),
		origins:  []string{"*"},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	entries := idx.Entries()
	if entries == nil {
		entries = []docsearch.IndexEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	s.indexJSON = b
	s.etag = fmt.Sprintf(`"%016x"`, xxhash.Sum64(b))

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "If-None-Match"},
			ExposedHeaders: []string{"ETag"},
			MaxAge:         300,
		}))
		r.Use(s.rateLimit)
		r.Get("/index", s.handleIndex)
		r.Get("/search", s.handleSearch)
	})

	r.Get("/", s.handlePage)

	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on Addr and serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", s.etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == s.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.indexJSON)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	query := docsearch.ParseQuery(q)
	if !query.Valid() {
		writeError(w, docsearch.Errorf(docsearch.EINVALID, "query must be at least %d characters", docsearch.MinQueryLength))
		return
	}

	results := s.searcher.Search(q)
	if results == nil {
		results = []docsearch.ScoredResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query.Raw,
		Results: results,
		Empty:   len(results) == 0,
	})
}

// handlePage renders the page in the state a browser would reach: the
// visitor's platform tab, the section named by ?section= and, when ?q= is
// set, the results panel.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := goquery.ParsePage(s.html)
	if err != nil {
		s.renderError(w, err)
		return
	}

	page.ActivatePlatformTab(docsearch.DetectPlatform(r.UserAgent()))

	if section := r.URL.Query().Get("section"); section != "" {
		if err := page.ActivateSection(section); err != nil {
			s.renderError(w, err)
			return
		}
	}

	if q := r.URL.Query().Get("q"); q != "" && docsearch.ParseQuery(q).Valid() {
		if results := s.searcher.Search(q); len(results) > 0 {
			page.Show(results)
		} else {
			page.ShowEmpty()
		}
	}

	out, err := page.HTML()
	if err != nil {
		s.renderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	if docsearch.ErrorCode(err) == docsearch.EINTERNAL {
		s.logger.Error("render page", "err", err)
	}
	http.Error(w, docsearch.ErrorMessage(err), statusCode(err))
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusCode(err), map[string]string{"error": docsearch.ErrorMessage(err)})
}

func statusCode(err error) int {
	switch docsearch.ErrorCode(err) {
	case docsearch.EINVALID:
		return http.StatusBadRequest
	case docsearch.ENOTFOUND:
		return http.StatusNotFound
	case docsearch.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
