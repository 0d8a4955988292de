// Package server serves the scene graph outline of one glTF document over
// HTTP.
//
// Routes:
//
//	GET  /                      text outline
//	GET  /api/rows              flattened rows as JSON
//	GET  /api/stats             document statistics as JSON
//	GET  /api/export/{format}   outline in any render format
//	POST /api/reload            re-import the document from disk
//	GET  /healthz               liveness
//	GET  /metrics               Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/scenetree/pkg/cache"
	"github.com/matzehuels/scenetree/pkg/errors"
	"github.com/matzehuels/scenetree/pkg/observability"
	"github.com/matzehuels/scenetree/pkg/pipeline"
	"github.com/matzehuels/scenetree/pkg/render"
	"github.com/matzehuels/scenetree/pkg/scene"
	"github.com/matzehuels/scenetree/pkg/tree"
)

const shutdownTimeout = 5 * time.Second

// Options configures a [Server].
type Options struct {
	Style          string
	RootConnectors bool

	// Gatherer backs /metrics. Nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Cache holds rendered SVG, PDF and PNG artifacts. Nil means an
	// in-memory cache of defaultCacheEntries entries.
	Cache cache.Cache
}

const defaultCacheEntries = 64

// Server holds one imported document and its outline.
type Server struct {
	logger *log.Logger
	runner *pipeline.Runner
	path   string
	opts   Options

	mu   sync.RWMutex
	doc  *scene.Document
	rows []tree.Row[scene.NodeInfo]
}

// New imports the document at path and returns a server for it.
func New(ctx context.Context, logger *log.Logger, path string, opts Options) (*Server, error) {
	if opts.Style == "" {
		opts.Style = pipeline.DefaultStyle
	}
	if err := pipeline.ValidateStyle(opts.Style); err != nil {
		return nil, err
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemoryCache(defaultCacheEntries)
	}
	s := &Server{
		logger: logger,
		runner: pipeline.NewRunner(opts.Cache, logger),
		path:   path,
		opts:   opts,
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload imports the document again. On failure the previous outline is
// kept.
func (s *Server) Reload(ctx context.Context) error {
	doc, err := s.runner.Import(ctx, s.path)
	if err != nil {
		return err
	}
	rows := s.runner.Outline(ctx, doc)

	s.mu.Lock()
	s.doc, s.rows = doc, rows
	s.mu.Unlock()
	return nil
}

func (s *Server) snapshot() (*scene.Document, []tree.Row[scene.NodeInfo]) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, s.rows
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/", s.handleText)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/rows", s.handleRows)
		r.Get("/stats", s.handleStats)
		r.Get("/export/{format}", s.handleExport)
		r.Post("/reload", s.handleReload)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	doc, _ := s.snapshot()
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr, "file", doc.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) options(format string) pipeline.Options {
	return pipeline.Options{
		Path:           s.path,
		Format:         format,
		Style:          s.opts.Style,
		RootConnectors: s.opts.RootConnectors,
	}
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, render.FormatText)
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	_, rows := s.snapshot()
	writeJSON(w, http.StatusOK, render.NewJSONDocument(rows, scene.NodeInfo.Label))
}

// statsResponse is the body of GET /api/stats.
type statsResponse struct {
	File     string           `json:"file"`
	Stats    scene.Statistics `json:"stats"`
	Rows     int              `json:"rows"`
	MaxDepth int              `json:"max_depth"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	doc, rows := s.snapshot()
	writeJSON(w, http.StatusOK, statsResponse{
		File:     doc.Name(),
		Stats:    scene.Stats(doc.GLTF),
		Rows:     len(rows),
		MaxDepth: tree.MaxDepth(rows),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, chi.URLParam(r, "format"))
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	_, rows := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]int{"rows": len(rows)})
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, format string) {
	_, rows := s.snapshot()
	out, err := s.runner.Render(r.Context(), rows, s.options(format))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(out)
}

var contentTypes = map[string]string{
	render.FormatText: "text/plain; charset=utf-8",
	render.FormatJSON: "application/json",
	render.FormatDOT:  "text/vnd.graphviz",
	render.FormatSVG:  "image/svg+xml",
	render.FormatPDF:  "application/pdf",
	render.FormatPNG:  "image/png",
}

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidDocument, errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// instrument reports every request to the HTTP hooks, labelled with the
// matched route pattern rather than the raw path.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}
