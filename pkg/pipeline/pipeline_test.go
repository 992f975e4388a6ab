package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/querent-dev/querent/pkg/core"
	"github.com/querent-dev/querent/pkg/providers/google"
	"github.com/querent-dev/querent/pkg/providers/youtube"
	"github.com/querent-dev/querent/pkg/realtime"
	"github.com/querent-dev/querent/pkg/storage"
)

type fakeGenerator struct {
	alternates []string
	err        error
}

func (g *fakeGenerator) Generate(ctx context.Context, query string) ([]string, error) {
	return g.alternates, g.err
}

type fakeWebSearcher struct {
	hits       []google.Hit
	err        error
	lastPhrase string
}

func (s *fakeWebSearcher) Search(ctx context.Context, phrase string) ([]google.Hit, error) {
	s.lastPhrase = phrase
	return s.hits, s.err
}

type fakeVideoSearcher struct {
	videos     []youtube.Video
	err        error
	lastPhrase string
}

func (s *fakeVideoSearcher) Search(ctx context.Context, phrase string) ([]youtube.Video, error) {
	s.lastPhrase = phrase
	return s.videos, s.err
}

func webHits(n int) []google.Hit {
	hits := make([]google.Hit, 0, n)
	for i := 1; i <= n; i++ {
		hits = append(hits, google.Hit{
			Title:   fmt.Sprintf("Web %d", i),
			Link:    fmt.Sprintf("https://example.com/%d", i),
			Snippet: fmt.Sprintf("web snippet %d", i),
		})
	}
	return hits
}

func videoHits(n int) []youtube.Video {
	videos := make([]youtube.Video, 0, n)
	for i := 1; i <= n; i++ {
		videos = append(videos, youtube.Video{
			Title:   fmt.Sprintf("Video %d", i),
			VideoID: fmt.Sprintf("vid%d", i),
			Channel: fmt.Sprintf("Channel %d", i),
			Link:    fmt.Sprintf("https://www.youtube.com/watch?v=vid%d", i),
		})
	}
	return videos
}

func newTestStore(t *testing.T) *storage.Storage {
	t.Helper()
	s, err := storage.New(filepath.Join(t.TempDir(), "querent.db"))
	if err != nil {
		t.Fatalf("creating storage: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing storage: %v", err)
		}
	})
	return s
}

func TestSubmitFullFanout(t *testing.T) {
	store := newTestStore(t)
	gen := &fakeGenerator{alternates: []string{"q1", "q2", "q3"}}
	web := &fakeWebSearcher{hits: webHits(5)}
	video := &fakeVideoSearcher{videos: videoHits(6)}

	p := New(gen, web, video, store)

	result, err := p.Submit(context.Background(), "original query")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// First alternate goes to the web provider, second to the video provider.
	if web.lastPhrase != "q1" {
		t.Errorf("expected web search with %q, got %q", "q1", web.lastPhrase)
	}
	if video.lastPhrase != "q2" {
		t.Errorf("expected video search with %q, got %q", "q2", video.lastPhrase)
	}

	if len(result.WebHits) != 5 || len(result.VideoHits) != 6 {
		t.Fatalf("expected raw hit lists 5/6, got %d/%d", len(result.WebHits), len(result.VideoHits))
	}

	stored, err := store.ResultsByQuery("original query")
	if err != nil {
		t.Fatalf("fetching stored results: %v", err)
	}
	if len(stored) != 11 {
		t.Fatalf("expected 11 persisted records, got %d", len(stored))
	}
	// Records are indexed by the original query, not the alternate phrase.
	for _, r := range stored {
		if r.Query != "original query" {
			t.Errorf("record %q indexed by %q instead of the original query", r.Title, r.Query)
		}
	}
}

func TestSubmitSkipsProvidersWithFewAlternates(t *testing.T) {
	tests := []struct {
		name       string
		alternates []string
	}{
		{name: "no alternates", alternates: nil},
		{name: "one alternate", alternates: []string{"only one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			web := &fakeWebSearcher{hits: webHits(5)}
			video := &fakeVideoSearcher{videos: videoHits(6)}
			p := New(&fakeGenerator{alternates: tt.alternates}, web, video, store)

			result, err := p.Submit(context.Background(), "foo")
			if err != nil {
				t.Fatalf("submit: %v", err)
			}

			if len(result.WebHits) != 0 || len(result.VideoHits) != 0 {
				t.Errorf("expected empty hit lists, got %d/%d", len(result.WebHits), len(result.VideoHits))
			}
			if web.lastPhrase != "" || video.lastPhrase != "" {
				t.Error("providers should not be contacted without two alternates")
			}

			stored, err := store.ResultsByQuery("foo")
			if err != nil {
				t.Fatalf("fetching stored results: %v", err)
			}
			if len(stored) != 0 {
				t.Errorf("expected nothing persisted, got %d records", len(stored))
			}
		})
	}
}

func TestSubmitGeneratorErrorFailsRequest(t *testing.T) {
	store := newTestStore(t)
	p := New(&fakeGenerator{err: errors.New("ollama unreachable")},
		&fakeWebSearcher{}, &fakeVideoSearcher{}, store)

	_, err := p.Submit(context.Background(), "foo")
	if err == nil {
		t.Fatal("expected error when generator fails")
	}
	if !strings.Contains(err.Error(), "ollama unreachable") {
		t.Fatalf("expected upstream message in error, got %v", err)
	}
}

func TestSubmitProviderErrorPersistsNothing(t *testing.T) {
	store := newTestStore(t)
	gen := &fakeGenerator{alternates: []string{"q1", "q2"}}
	web := &fakeWebSearcher{err: errors.New("google 403")}
	video := &fakeVideoSearcher{videos: videoHits(6)}

	p := New(gen, web, video, store)

	if _, err := p.Submit(context.Background(), "foo"); err == nil {
		t.Fatal("expected error when a provider fails")
	}

	stored, err := store.ResultsByQuery("foo")
	if err != nil {
		t.Fatalf("fetching stored results: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected nothing persisted after provider failure, got %d", len(stored))
	}
}

func TestSubmitRanksBeforePersisting(t *testing.T) {
	store := newTestStore(t)
	gen := &fakeGenerator{alternates: []string{"q1", "q2"}}
	web := &fakeWebSearcher{hits: []google.Hit{
		{Title: "no match", Link: "l1", Snippet: "nothing relevant"},
		{Title: "match", Link: "l2", Snippet: "cats cats dogs"},
	}}
	video := &fakeVideoSearcher{}

	p := New(gen, web, video, store)

	if _, err := p.Submit(context.Background(), "cats"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	stored, err := store.ResultsByQuery("cats")
	if err != nil {
		t.Fatalf("fetching stored results: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 records, got %d", len(stored))
	}
	if stored[0].Title != "match" || stored[0].RankScore != 4 {
		t.Errorf("expected scored record first, got %+v", stored[0])
	}
	if stored[1].RankScore != 0 {
		t.Errorf("expected unmatched record score 0, got %f", stored[1].RankScore)
	}
}

func TestSubmitBroadcastsStoredResults(t *testing.T) {
	store := newTestStore(t)
	gen := &fakeGenerator{alternates: []string{"q1", "q2"}}
	p := New(gen, &fakeWebSearcher{hits: webHits(2)}, &fakeVideoSearcher{videos: videoHits(1)}, store)

	hub := realtime.NewHub(8)
	p.AttachHub(hub)

	id, ch := hub.Register()
	defer hub.Unregister(id)

	if _, err := p.Submit(context.Background(), "cats"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	received := 0
	for received < 3 {
		select {
		case ev := <-ch:
			if ev.Query != "cats" || ev.ID == 0 {
				t.Errorf("unexpected event: %+v", ev)
			}
			received++
		default:
			t.Fatalf("expected 3 events, got %d", received)
		}
	}
}

func TestFetchReturnsStoredOrder(t *testing.T) {
	store := newTestStore(t)
	batch := []*core.Result{
		core.NewWebResult("cats", "low", "l1", ""),
		core.NewWebResult("cats", "high", "l2", ""),
	}
	batch[1].RankScore = 9
	if err := store.StoreResults(batch); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	p := New(&fakeGenerator{}, &fakeWebSearcher{}, &fakeVideoSearcher{}, store)

	results, err := p.Fetch(context.Background(), "cats")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(results) != 2 || results[0].Title != "high" {
		t.Fatalf("unexpected fetch results: %+v", results)
	}
}

func TestReconfigureSwapsClients(t *testing.T) {
	store := newTestStore(t)
	oldWeb := &fakeWebSearcher{hits: webHits(1)}
	p := New(&fakeGenerator{alternates: []string{"a", "b"}}, oldWeb, &fakeVideoSearcher{}, store)

	newWeb := &fakeWebSearcher{hits: webHits(1)}
	p.Reconfigure(&fakeGenerator{alternates: []string{"x", "y"}}, newWeb, &fakeVideoSearcher{})

	if _, err := p.Submit(context.Background(), "anything"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if oldWeb.lastPhrase != "" {
		t.Error("old web client used after reconfigure")
	}
	if newWeb.lastPhrase != "x" {
		t.Errorf("expected new web client searched with %q, got %q", "x", newWeb.lastPhrase)
	}
}
