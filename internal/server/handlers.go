package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mashriq/daleel/internal/models"
	"github.com/mashriq/daleel/internal/pipeline"
	"github.com/mashriq/daleel/internal/store"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", req.Query), zap.Int("limit", req.Limit))
	response, err := s.pipeline.Search(r.Context(), &req)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, searchErrorStatus(err), err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

// searchErrorStatus maps pipeline infrastructure failures to HTTP status
// codes. Dependency outages (embedder, index, scorer) are 502; everything
// else, including hydration bugs, is 500. A NotFound decision never reaches
// here: it is a 200 with found=false.
func searchErrorStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrEmbeddingUnavailable),
		errors.Is(err, pipeline.ErrRetrievalUnavailable),
		errors.Is(err, pipeline.ErrScoringUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleGetFatwa(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fatwa, err := s.store.GetFatwa(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "fatwa not found")
			return
		}
		s.logger.Error("get fatwa failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, fatwa)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountFatwas(r.Context())
	if err != nil {
		s.logger.Error("status: count fatwas failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"fatwas":            count,
		"vector_index_size": s.index.Size(),
		"config": map[string]interface{}{
			"embedding_dimensions": s.config.Embedding.Dimensions,
			"retrieve_limit":       s.config.Search.RetrieveLimit,
			"high_threshold":       s.config.Search.HighThreshold,
			"low_threshold":        s.config.Search.LowThreshold,
			"database_path":        s.config.Storage.DatabasePath,
			"vector_index_path":    s.config.Storage.VectorIndexPath,
		},
	}
	s.respondJSON(w, http.StatusOK, resp)
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
