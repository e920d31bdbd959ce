// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /v1/render   render a document, JSON in and out
//	GET  /healthz     liveness check
//	GET  /version     build information
//
// Every render is tagged with a random render id, returned in the response
// body and in the X-Render-ID header, and attached to the request's log
// lines.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/prettymarkup/pkg/buildinfo"
	"github.com/matzehuels/prettymarkup/pkg/errors"
	"github.com/matzehuels/prettymarkup/pkg/jsonld"
	"github.com/matzehuels/prettymarkup/pkg/pipeline"
	"github.com/matzehuels/prettymarkup/pkg/tree"
)

const (
	// RenderIDHeader carries the render id on responses.
	RenderIDHeader = "X-Render-ID"

	// DefaultRequestTimeout bounds one render request.
	DefaultRequestTimeout = 30 * time.Second

	// maxBodyBytes leaves room for JSON escaping around the largest input.
	maxBodyBytes = 2*errors.MaxInputBytes + 4096
)

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults func(*pipeline.Options)
	timeout  time.Duration
	contexts jsonld.ContextPolicy
	router   chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDefaults registers a function that fills unset render options, such
// as values from the config file.
func WithDefaults(fn func(*pipeline.Options)) Option {
	return func(s *Server) { s.defaults = fn }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithContextHosts lets documents load remote JSON-LD contexts from the
// given hosts. Without it only the embedded schema.org context resolves.
func WithContextHosts(hosts ...string) Option {
	return func(s *Server) { s.contexts = jsonld.AllowContextHosts(hosts...) }
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:   runner,
		logger:   runner.Logger,
		timeout:  DefaultRequestTimeout,
		contexts: jsonld.AllowContextHosts(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Input      string       `json:"input"`
	BaseURL    string       `json:"base_url,omitempty"`
	Target     *tree.Target `json:"target,omitempty"`
	Formats    []string     `json:"formats,omitempty"`
	Seed       uint64       `json:"seed,omitempty"`
	Palette    bool         `json:"palette,omitempty"`
	IDRows     bool         `json:"id_rows,omitempty"`
	FullIRIs   bool         `json:"full_iris,omitempty"`
	Standalone bool         `json:"standalone,omitempty"`
	Refresh    bool         `json:"refresh,omitempty"`
}

// RenderResponse is the body of a successful render.
type RenderResponse struct {
	ID        string            `json:"id"`
	Base      string            `json:"base,omitempty"`
	Shapes    []string          `json:"shapes,omitempty"`
	Rows      []tree.Row        `json:"rows,omitempty"`
	Artifacts map[string]string `json:"artifacts"`
	CacheHit  bool              `json:"cache_hit"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	ID    string      `json:"id,omitempty"`
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set(RenderIDHeader, id)
	logger := s.logger.With("render_id", id)

	var req RenderRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, id, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	opts := req.options()
	opts.Logger = logger
	opts.ContextPolicy = s.contexts
	if s.defaults != nil {
		s.defaults(&opts)
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		logger.Warn("render failed", "err", err)
		s.writeError(w, id, err)
		return
	}

	resp := RenderResponse{
		ID:        id,
		Artifacts: make(map[string]string, len(result.Artifacts)),
		Base:      result.Base,
		Rows:      result.Rows,
		CacheHit:  result.CacheHit,
	}
	for format, data := range result.Artifacts {
		resp.Artifacts[format] = string(data)
	}
	for _, shape := range result.Shapes {
		resp.Shapes = append(resp.Shapes, shape.Value)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (req RenderRequest) options() pipeline.Options {
	opts := pipeline.Options{
		Input:      req.Input,
		BaseURL:    req.BaseURL,
		Formats:    req.Formats,
		Seed:       req.Seed,
		Palette:    req.Palette,
		IDRows:     req.IDRows,
		FullIRIs:   req.FullIRIs,
		Standalone: req.Standalone,
		Refresh:    req.Refresh,
	}
	if req.Target != nil {
		opts.Target = *req.Target
	}
	return opts
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) writeError(w http.ResponseWriter, id string, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), ErrorResponse{
		ID: id,
		Error: ErrorDetail{
			Code:    string(code),
			Message: errors.UserMessage(err),
		},
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"render_id", ww.Header().Get(RenderIDHeader))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
