package api

import (
	"encoding/json"
	"net/http"

	"github.com/querent-dev/querent/pkg/log"
	"github.com/querent-dev/querent/pkg/pipeline"
	"github.com/querent-dev/querent/pkg/realtime"
)

type Server struct {
	pipeline *pipeline.Pipeline
	hub      *realtime.Hub
	logger   *log.Logger
}

func NewServer(p *pipeline.Pipeline, hub *realtime.Hub) *Server {
	return &Server{
		pipeline: p,
		hub:      hub,
		logger:   log.ForService("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

// CorsMiddleware allows browser clients from any origin, matching the
// permissive policy the frontend expects.
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
