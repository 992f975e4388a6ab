package api

import (
	"time"

	"github.com/querent-dev/querent/pkg/providers/google"
	"github.com/querent-dev/querent/pkg/providers/youtube"
)

type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse carries the alternates and the raw provider hit lists for one
// submitted query. The ranked, persisted records are served separately by
// the get_results endpoint.
type AskResponse struct {
	Query              string          `json:"query"`
	AlternativeQueries []string        `json:"alternative_queries"`
	GoogleResults      []google.Hit    `json:"google_results"`
	YouTubeResults     []youtube.Video `json:"youtube_results"`
}

// StoredResult is the wire shape of a persisted record. Snippet holds the
// web excerpt or the video channel title depending on source.
type StoredResult struct {
	ID        int64   `json:"id"`
	Query     string  `json:"query"`
	Source    string  `json:"source"`
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Snippet   string  `json:"snippet"`
	RankScore float64 `json:"rank_score"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
