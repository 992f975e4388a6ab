// Package pipeline orchestrates the query fanout: alternate-query
// generation, provider search, ranking and persistence.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/querent-dev/querent/pkg/altquery"
	"github.com/querent-dev/querent/pkg/core"
	"github.com/querent-dev/querent/pkg/log"
	"github.com/querent-dev/querent/pkg/providers/google"
	"github.com/querent-dev/querent/pkg/providers/youtube"
	"github.com/querent-dev/querent/pkg/rank"
	"github.com/querent-dev/querent/pkg/realtime"
	"golang.org/x/sync/errgroup"
)

// WebSearcher searches a web provider with one phrase.
type WebSearcher interface {
	Search(ctx context.Context, phrase string) ([]google.Hit, error)
}

// VideoSearcher searches a video provider with one phrase.
type VideoSearcher interface {
	Search(ctx context.Context, phrase string) ([]youtube.Video, error)
}

// Store persists ranked batches and serves the read path.
type Store interface {
	StoreResults(results []*core.Result) error
	ResultsByQuery(query string) ([]*core.Result, error)
}

// SubmitResult is the payload returned for one submitted query. The hit
// lists are the raw provider responses, not the ranked records that were
// persisted; persistence and response are deliberately decoupled.
type SubmitResult struct {
	Query      string
	Alternates []string
	WebHits    []google.Hit
	VideoHits  []youtube.Video
}

// Pipeline wires the generator, the two provider clients and the store.
// The clients can be swapped at runtime (config reload); the store is fixed
// for the pipeline's lifetime.
type Pipeline struct {
	mu        sync.RWMutex
	generator altquery.Generator
	web       WebSearcher
	video     VideoSearcher

	store  Store
	hub    *realtime.Hub
	logger *log.Logger
}

func New(generator altquery.Generator, web WebSearcher, video VideoSearcher, store Store) *Pipeline {
	return &Pipeline{
		generator: generator,
		web:       web,
		video:     video,
		store:     store,
		logger:    log.ForService("pipeline"),
	}
}

// AttachHub enables broadcasting stored results to realtime listeners.
func (p *Pipeline) AttachHub(hub *realtime.Hub) {
	p.hub = hub
}

// Reconfigure swaps the generator and provider clients. In-flight submits
// finish with the clients they started with.
func (p *Pipeline) Reconfigure(generator altquery.Generator, web WebSearcher, video VideoSearcher) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generator = generator
	p.web = web
	p.video = video
}

func (p *Pipeline) clients() (altquery.Generator, WebSearcher, VideoSearcher) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.generator, p.web, p.video
}

// Submit runs the full fanout for one user query: generate alternates,
// search the web provider with the first and the video provider with the
// second, rank the combined batch against the original query and persist it
// atomically. With fewer than two alternates no provider is contacted and
// nothing is persisted.
//
// Any upstream or persistence failure fails the whole submit; there are no
// retries and no partial writes.
func (p *Pipeline) Submit(ctx context.Context, query string) (*SubmitResult, error) {
	generator, web, video := p.clients()

	alternates, err := generator.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating alternate queries: %w", err)
	}

	result := &SubmitResult{
		Query:      query,
		Alternates: alternates,
	}

	if len(alternates) < 2 {
		p.logger.Infof("no usable alternates for %q, skipping provider search", query)
		return result, nil
	}

	// The two provider calls are independent; run them concurrently and
	// wait for both before ranking.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := web.Search(gctx, alternates[0])
		if err != nil {
			return err
		}
		result.WebHits = hits
		return nil
	})
	g.Go(func() error {
		videos, err := video.Search(gctx, alternates[1])
		if err != nil {
			return err
		}
		result.VideoHits = videos
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := make([]*core.Result, 0, len(result.WebHits)+len(result.VideoHits))
	for _, hit := range result.WebHits {
		batch = append(batch, core.NewWebResult(query, hit.Title, hit.Link, hit.Snippet))
	}
	for _, v := range result.VideoHits {
		batch = append(batch, core.NewVideoResult(query, v.Title, v.Link, v.Channel))
	}

	ranked := rank.Rank(batch, query)

	if err := p.store.StoreResults(ranked); err != nil {
		return nil, fmt.Errorf("storing results: %w", err)
	}
	p.logger.Infof("stored %d ranked results for %q", len(ranked), query)

	if p.hub != nil {
		for _, r := range ranked {
			p.hub.Broadcast(realtime.ResultEvent{
				ID:        r.ID,
				Query:     r.Query,
				Source:    string(r.Source),
				Title:     r.Title,
				Link:      r.Link,
				Snippet:   r.Snippet(),
				RankScore: r.RankScore,
				StoredAt:  r.CreatedAt,
			})
		}
	}

	return result, nil
}

// Fetch returns previously persisted records for the exact query, ordered
// by stored rank score.
func (p *Pipeline) Fetch(ctx context.Context, query string) ([]*core.Result, error) {
	return p.store.ResultsByQuery(query)
}
