// Package api exposes the parser over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sqlparse/sqlparse/compiler/parser"
	"github.com/sqlparse/sqlparse/internal/format"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// ParseFunc parses one statement. The error, if any, is a *errors.ParseError.
type ParseFunc func(source string) (*parser.Statement, error)

// Handler serves the parse API
type Handler struct {
	mux          chi.Router
	parse        ParseFunc
	formatConfig *format.Config
	logger       *zap.Logger
}

// Option configures a Handler
type Option func(*Handler)

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithParser replaces the statement parser, e.g. with a cached one
func WithParser(parse ParseFunc) Option {
	return func(h *Handler) { h.parse = parse }
}

// WithFormatConfig sets the default style of the format endpoint
func WithFormatConfig(config *format.Config) Option {
	return func(h *Handler) { h.formatConfig = config }
}

// NewHandler creates the API handler with its routes:
//
//	GET  /healthz
//	POST /v1/parse
//	POST /v1/check
//	POST /v1/tokens
//	POST /v1/format
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		parse: func(source string) (*parser.Statement, error) {
			return parser.Parse(source)
		},
		formatConfig: format.DefaultConfig(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.AllowContentType("application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, http.StatusNotFound, "not_found", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path)
	})

	r.Get("/healthz", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", h.handleParse)
		r.Post("/check", h.handleCheck)
		r.Post("/tokens", h.handleTokens)
		r.Post("/format", h.handleFormat)
	})

	h.mux = r
	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// requestLogger logs one line per request
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}
