package core

import (
	"fmt"
	"time"
)

// Source identifies which search provider produced a result.
type Source string

const (
	SourceGoogle  Source = "Google"
	SourceYouTube Source = "YouTube"
)

// Valid reports whether s is a known provider tag.
func (s Source) Valid() bool {
	return s == SourceGoogle || s == SourceYouTube
}

// Result is a persisted search result. A batch of results is built per
// submitted query, scored once by the ranker and then written as a single
// immutable batch; records are never updated after insertion.
//
// Web and video results carry different secondary text: web results have a
// keyword excerpt, video results a channel title. The two are kept in
// separate fields keyed by Source instead of one overloaded column.
type Result struct {
	ID        int64
	Query     string // the original user phrase, not the alternate sent upstream
	Source    Source
	Title     string
	Link      string
	Excerpt   string // web results only
	Channel   string // video results only
	RankScore float64
	CreatedAt time.Time
}

// NewWebResult builds an unscored web result for the given original query.
func NewWebResult(query, title, link, excerpt string) *Result {
	return &Result{
		Query:   query,
		Source:  SourceGoogle,
		Title:   title,
		Link:    link,
		Excerpt: excerpt,
	}
}

// NewVideoResult builds an unscored video result for the given original query.
func NewVideoResult(query, title, link, channel string) *Result {
	return &Result{
		Query:   query,
		Source:  SourceYouTube,
		Title:   title,
		Link:    link,
		Channel: channel,
	}
}

// Snippet returns the secondary text for the result's source: the keyword
// excerpt for web results, the channel title for video results. This is the
// text the ranker scores and the value exposed as "snippet" on the wire.
func (r *Result) Snippet() string {
	if r.Source == SourceYouTube {
		return r.Channel
	}
	return r.Excerpt
}

// Validate checks the invariants required before persisting a result.
func (r *Result) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("result missing query")
	}
	if !r.Source.Valid() {
		return fmt.Errorf("result has unknown source %q", r.Source)
	}
	if r.Title == "" {
		return fmt.Errorf("result missing title")
	}
	if r.Link == "" {
		return fmt.Errorf("result missing link")
	}
	return nil
}
