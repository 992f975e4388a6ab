package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/querent-dev/querent/pkg/realtime"
)

const pingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same permissive policy as the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type firehoseMessage struct {
	Type   string                `json:"type"`
	Result *realtime.ResultEvent `json:"result,omitempty"`
}

// HandleFirehoseWS streams newly persisted results to the client as they
// are stored. Events missed while the client is slow are dropped, not
// buffered; the stream has no replay.
func (s *Server) HandleFirehoseWS(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Firehose unavailable", "Realtime hub is not configured")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debugf("websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debugf("closing websocket: %v", err)
		}
	}()

	id, events := s.hub.Register()
	defer s.hub.Unregister(id)

	if err := conn.WriteJSON(firehoseMessage{Type: "init"}); err != nil {
		return
	}

	// Reader goroutine only watches for the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(firehoseMessage{Type: "result", Result: &ev}); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
