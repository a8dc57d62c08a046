package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/pkg/orchestrator"
	"github.com/goliatone/go-cardioform/pkg/render"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, orchestrator.Request{})
}

// handleReview re-renders the form with field statuses. A submission with
// problems is re-rendered with form-level errors and a 422.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.Warn("review: parse form", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	s.renderPage(w, r, orchestrator.Request{Values: r.PostForm, Review: true})
}

func (s *Server) renderOptions() render.RenderOptions {
	var options render.RenderOptions
	if version := s.catalog.Version(); version != "" {
		options.HiddenFields = render.MergeHiddenFields(nil, render.VersionField(VersionFieldName, version))
	}
	return options
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, req orchestrator.Request) {
	req.Renderer = r.URL.Query().Get("renderer")
	if req.Renderer != "" && !s.pages.Registry().Has(req.Renderer) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown renderer %q", req.Renderer))
		return
	}
	req.RenderOptions = s.renderOptions()

	out, err := s.pages.GeneratePage(r.Context(), req)
	if err != nil {
		s.logger.Error("render page", zap.String("renderer", req.Renderer), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	for _, result := range out.Results {
		s.observeClassification(result.Field, result.Status)
	}

	status := http.StatusOK
	if out.Rejected() {
		s.logger.Debug("review: submission has problems", zap.Int("problems", len(out.Submission.Problems)))
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.WriteHeader(status)
	if _, err := w.Write(out.Body); err != nil {
		s.logger.Warn("write page", zap.Error(err))
	}
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(s.openapi); err != nil {
		s.logger.Warn("write openapi document", zap.Error(err))
	}
}
