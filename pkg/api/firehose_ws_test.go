package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/querent-dev/querent/pkg/pipeline"
	"github.com/querent-dev/querent/pkg/realtime"
	"github.com/querent-dev/querent/pkg/storage"
)

func newFirehoseTestServer(t *testing.T) (*realtime.Hub, *httptest.Server) {
	t.Helper()

	store, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hub := realtime.NewHub(16)
	p := pipeline.New(&fakeGenerator{}, &fakeWebSearcher{}, &fakeVideoSearcher{}, store)
	p.AttachHub(hub)

	srv := NewServer(p, hub)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return hub, ts
}

func dialFirehose(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/firehose/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing firehose: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestFirehoseInitMessage(t *testing.T) {
	_, ts := newFirehoseTestServer(t)
	conn := dialFirehose(t, ts)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg firehoseMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading init message: %v", err)
	}
	if msg.Type != "init" {
		t.Errorf("expected init message, got %q", msg.Type)
	}
}

func TestFirehoseDeliversEvents(t *testing.T) {
	hub, ts := newFirehoseTestServer(t)
	conn := dialFirehose(t, ts)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg firehoseMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading init message: %v", err)
	}

	// Let the handler register before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for hub.Size() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Size() == 0 {
		t.Fatal("listener never registered")
	}

	hub.Broadcast(realtime.ResultEvent{
		ID:        1,
		Query:     "go",
		Source:    "Google",
		Title:     "Go by Example",
		Link:      "https://gobyexample.com",
		Snippet:   "Hands-on introduction",
		RankScore: 2,
	})

	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading result event: %v", err)
	}
	if msg.Type != "result" {
		t.Fatalf("expected result message, got %q", msg.Type)
	}
	if msg.Result == nil || msg.Result.Title != "Go by Example" {
		t.Errorf("unexpected event payload: %+v", msg.Result)
	}
}

func TestFirehoseUnregistersOnClose(t *testing.T) {
	hub, ts := newFirehoseTestServer(t)
	conn := dialFirehose(t, ts)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg firehoseMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading init message: %v", err)
	}

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Size() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Size() != 0 {
		t.Errorf("expected listener to unregister after close, have %d", hub.Size())
	}
}

func TestFirehoseUnavailableWithoutHub(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	p := pipeline.New(&fakeGenerator{}, &fakeWebSearcher{}, &fakeVideoSearcher{}, store)
	srv := NewServer(p, nil)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	req := httptest.NewRequest("GET", "/api/firehose/ws", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
