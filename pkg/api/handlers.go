package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/querent-dev/querent/pkg/providers/google"
	"github.com/querent-dev/querent/pkg/providers/youtube"
	"github.com/querent-dev/querent/pkg/version"
)

func (s *Server) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query", "Field 'query' is required")
		return
	}

	result, err := s.pipeline.Submit(r.Context(), req.Query)
	if err != nil {
		s.logger.Errorf("submit failed for %q: %v", req.Query, err)
		s.writeError(w, http.StatusInternalServerError, "Submit failed", err.Error())
		return
	}

	response := AskResponse{
		Query:              result.Query,
		AlternativeQueries: result.Alternates,
		GoogleResults:      result.WebHits,
		YouTubeResults:     result.VideoHits,
	}
	// Empty lists marshal as [], not null.
	if response.AlternativeQueries == nil {
		response.AlternativeQueries = []string{}
	}
	if response.GoogleResults == nil {
		response.GoogleResults = []google.Hit{}
	}
	if response.YouTubeResults == nil {
		response.YouTubeResults = []youtube.Video{}
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query parameter", "Query parameter 'query' is required")
		return
	}

	results, err := s.pipeline.Fetch(r.Context(), query)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to retrieve results", err.Error())
		return
	}

	stored := make([]StoredResult, len(results))
	for i, result := range results {
		stored[i] = StoredResult{
			ID:        result.ID,
			Query:     result.Query,
			Source:    string(result.Source),
			Title:     result.Title,
			Link:      result.Link,
			Snippet:   result.Snippet(),
			RankScore: result.RankScore,
		}
	}

	s.writeJSON(w, http.StatusOK, stored)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
