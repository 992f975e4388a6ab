// Package google wraps the Google Custom Search JSON API for web search.
package google

import (
	"context"
	"fmt"

	"github.com/querent-dev/querent/pkg/log"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// MaxHits is how many web results a search returns at most.
const MaxHits = 5

// Hit is a single web search result in provider order.
type Hit struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Client searches the web through a programmable search engine.
type Client struct {
	svc      *customsearch.Service
	engineID string
	logger   *log.Logger
}

// NewClient builds a web search client. Extra options are appended after
// the API key, so tests can override the endpoint.
func NewClient(ctx context.Context, apiKey, engineID string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google api key must be specified")
	}
	if engineID == "" {
		return nil, fmt.Errorf("google search engine id must be specified")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating custom search service: %w", err)
	}

	return &Client{
		svc:      svc,
		engineID: engineID,
		logger:   log.ForService("google"),
	}, nil
}

// Search runs a web search for the phrase and returns up to MaxHits results
// in the order the provider ranked them. Upstream failures are returned
// as-is with the provider's message; there are no retries.
func (c *Client) Search(ctx context.Context, phrase string) ([]Hit, error) {
	c.logger.Debugf("searching web for %q", phrase)

	resp, err := c.svc.Cse.List().Q(phrase).Cx(c.engineID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("google search for %q: %w", phrase, err)
	}

	hits := make([]Hit, 0, MaxHits)
	for _, item := range resp.Items {
		if len(hits) == MaxHits {
			break
		}
		hits = append(hits, Hit{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}

	c.logger.Debugf("web search for %q returned %d hits", phrase, len(hits))
	return hits, nil
}
