package server

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/leapstack-labs/propcheck/internal/loader"
	"github.com/leapstack-labs/propcheck/pkg/dictionary"
	"github.com/leapstack-labs/propcheck/pkg/lint"
)

// CheckResponse is the body returned by POST /v1/check.
type CheckResponse struct {
	File        string            `json:"file,omitempty"`
	Elements    int               `json:"elements"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// HealthResponse is the body returned by GET /healthz.
type HealthResponse struct {
	Status     string    `json:"status"`
	Dictionary string    `json:"dictionary"`
	Rules      int       `json:"rules"`
	LoadedAt   time.Time `json:"loaded_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	loadedAt := s.loadedAt
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Dictionary: dictionary.Default().Version(),
		Rules:      lint.Count(),
		LoadedAt:   loadedAt,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	format := loader.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = loader.FormatYAML
	}
	doc, err := loader.Decode(body, format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	analyzer, _ := s.current()
	diags, err := analyzer.AnalyzeMultiple(doc.Elements)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if diags == nil {
		diags = []lint.Diagnostic{}
	}

	s.writeJSON(w, http.StatusOK, CheckResponse{
		File:        doc.File,
		Elements:    len(doc.Elements),
		Diagnostics: diags,
	})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, lint.AllRules())
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		tag = "div"
	}
	_, typeMarker := r.URL.Query()["is"]

	x, err := s.engine().Explain(tag, name, typeMarker)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, x)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
