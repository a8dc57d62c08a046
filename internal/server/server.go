// Package server exposes the intake form and the classifier over HTTP.
package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/form"
	"github.com/goliatone/go-cardioform/pkg/orchestrator"
)

// ClassifyRequestSchema names the component schema API bodies are checked
// against.
const ClassifyRequestSchema = "ClassifyRequest"

// VersionFieldName is the hidden input carrying the form definition version.
const VersionFieldName = "form_version"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics replaces the metrics collectors.
func WithMetrics(metrics *Metrics) Option {
	return func(s *Server) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithAssets serves files under prefix, e.g. "/assets/".
func WithAssets(prefix string, files fs.FS) Option {
	return func(s *Server) {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" || files == nil {
			return
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		s.assetPrefix = prefix
		s.assets = files
	}
}

// WithOpenAPIDocument sets the document served at /openapi.yaml.
func WithOpenAPIDocument(doc []byte) Option {
	return func(s *Server) {
		s.openapi = doc
	}
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	pages   *orchestrator.Orchestrator
	catalog *form.Catalog
	rules   *classify.Table

	logger      *zap.Logger
	metrics     *Metrics
	assets      fs.FS
	assetPrefix string
	openapi     []byte

	classifySchema *openapi3.Schema
}

// New builds a Server around pages, which supplies the catalog, the rule
// table and the renderers.
func New(pages *orchestrator.Orchestrator, opts ...Option) (*Server, error) {
	if pages == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if err := pages.Err(); err != nil {
		return nil, fmt.Errorf("server: orchestrator: %w", err)
	}

	s := &Server{
		pages:   pages,
		catalog: pages.Catalog(),
		rules:   pages.Rules(),
		logger:  zap.NewNop(),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if schema, ok := s.catalog.Schema(ClassifyRequestSchema); ok {
		s.classifySchema = schema
	}
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Post("/review", s.handleReview)

	r.Route("/api", func(r chi.Router) {
		r.Post("/classify", s.handleClassify)
		r.Post("/evaluate", s.handleEvaluate)
		r.Get("/rules", s.handleRules)
	})

	if len(s.openapi) > 0 {
		r.Get("/openapi.yaml", s.handleOpenAPI)
	}
	if s.assets != nil {
		r.Handle(s.assetPrefix+"*", http.StripPrefix(s.assetPrefix, http.FileServer(http.FS(s.assets))))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", s.metrics.Handler())

	return r
}

// observeClassification records a classification under the field name when the
// catalog or the rule table knows it, and under "other" otherwise.
func (s *Server) observeClassification(field string, status classify.Status) {
	label := otherFieldLabel
	if _, err := s.catalog.Field(field); err == nil {
		label = field
	} else if _, ok := s.rules.Rule(field); ok {
		label = field
	}
	s.metrics.observeClassification(label, status)
}

// observe logs each request and records its duration by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		elapsed := time.Since(start)
		s.metrics.observeRequest(route, elapsed.Seconds())

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", elapsed),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
