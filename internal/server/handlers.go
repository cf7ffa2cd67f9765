package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/catalogrank/internal/catalog"
	"github.com/hyperjump/catalogrank/internal/keyword"
	"github.com/hyperjump/catalogrank/internal/metrics"
	"github.com/hyperjump/catalogrank/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", req.Query), zap.Int("limit", req.Limit))
	response, err := s.engine.Search(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidPriceRange) || errors.Is(err, models.ErrInvalidOffset) ||
			errors.Is(err, models.ErrInvalidMinScore) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.ObserveSearch(response.Total, response.Prefiltered)
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	result, err := s.engine.SpellCheck(q)
	if err != nil {
		s.logger.Error("spell check failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, suggestResponse{
		Query:           result.OriginalQuery,
		Suggestion:      result.CorrectedQuery,
		HasCorrections:  result.HasCorrections,
		MisspelledTerms: result.MisspelledTerms,
	})
}

type suggestResponse struct {
	Query           string   `json:"query"`
	Suggestion      string   `json:"suggestion,omitempty"`
	HasCorrections  bool     `json:"has_corrections"`
	MisspelledTerms []string `json:"misspelled_terms"`
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	completions := s.engine.Complete(prefix, limit)
	if completions == nil {
		completions = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"prefix":      prefix,
		"completions": completions,
	})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":    q,
		"keywords": keyword.ExtractKeywords(q),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	n, err := s.engine.Reload(r.Context())
	metrics.ObserveReload(n, err)
	if err != nil {
		if errors.Is(err, catalog.ErrUnsupportedSource) {
			s.respondError(w, http.StatusNotImplemented, "catalog source not reloadable")
			return
		}
		s.logger.Error("catalog reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": n, "status": "reloaded"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
