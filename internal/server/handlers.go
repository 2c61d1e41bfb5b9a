package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/akramhany/repomind/internal/engine"
)

// askRequest is the JSON body for the ask endpoint.
type askRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// askResponse is the JSON response for the ask endpoint.
type askResponse struct {
	ID              string          `json:"id"`
	Answer          string          `json:"answer"`
	Sources         []engine.Source `json:"sources"`
	ChunksUsed      int             `json:"chunks_used"`
	ChunksRetrieved int             `json:"chunks_retrieved"`
}

// searchHit is one entry in the search endpoint response.
type searchHit struct {
	FilePath string  `json:"file_path"`
	ChunkID  int     `json:"chunk_id"`
	Distance float32 `json:"distance"`
	Preview  string  `json:"preview"`
}

// searchResponse is the JSON response for the search endpoint.
type searchResponse struct {
	ID      string      `json:"id"`
	Query   string      `json:"query"`
	Results []searchHit `json:"results"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	k := req.TopK
	if k <= 0 {
		k = s.cfg.TopK
	}

	ctx := r.Context()
	retrieved, err := s.retriever.Search(ctx, req.Question, k)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	answer, err := s.engine.Answer(ctx, req.Question, retrieved)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	sources := answer.Sources
	if sources == nil {
		sources = []engine.Source{}
	}

	writeJSON(w, http.StatusOK, askResponse{
		ID:              uuid.New().String(),
		Answer:          answer.Text,
		Sources:         sources,
		ChunksUsed:      answer.ChunksUsed,
		ChunksRetrieved: answer.ChunksRetrieved,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'q' is required"})
		return
	}

	k := s.cfg.TopK
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "parameter 'k' must be a positive integer"})
			return
		}
		k = parsed
	}

	results, err := s.retriever.Search(r.Context(), query, k)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	hits := make([]searchHit, len(results))
	for i, res := range results {
		hits[i] = searchHit{
			FilePath: res.Chunk.FilePath,
			ChunkID:  res.Chunk.ChunkID,
			Distance: res.Distance,
			Preview:  previewOf(res.Chunk.Content, 200),
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		ID:      uuid.New().String(),
		Query:   query,
		Results: hits,
	})
}

// previewOf returns the first length characters of content, with a marker
// when the content was cut.
func previewOf(content string, length int) string {
	if len(content) <= length {
		return content
	}
	return content[:length] + "..."
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
