// Package youtube wraps the YouTube Data API v3 for video search.
package youtube

import (
	"context"
	"fmt"

	"github.com/querent-dev/querent/pkg/log"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// MaxVideos is how many videos a search requests and returns at most.
const MaxVideos = 6

const watchURL = "https://www.youtube.com/watch?v="

// Video is a single video search result. Link is the canonical watch page
// URL synthesized from the provider's video id.
type Video struct {
	Title     string `json:"title"`
	VideoID   string `json:"videoId"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
	Link      string `json:"link"`
}

// Client searches YouTube for videos.
type Client struct {
	svc    *youtube.Service
	logger *log.Logger
}

// NewClient builds a video search client. Extra options are appended after
// the API key, so tests can override the endpoint.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key must be specified")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	return &Client{
		svc:    svc,
		logger: log.ForService("youtube"),
	}, nil
}

// Search runs a video search for the phrase and returns up to MaxVideos
// results with the high-resolution thumbnail and channel title. Upstream
// failures are returned as-is with the provider's message; no retries.
func (c *Client) Search(ctx context.Context, phrase string) ([]Video, error) {
	c.logger.Debugf("searching videos for %q", phrase)

	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(phrase).
		Type("video").
		MaxResults(MaxVideos).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search for %q: %w", phrase, err)
	}

	videos := make([]Video, 0, MaxVideos)
	for _, item := range resp.Items {
		if len(videos) == MaxVideos {
			break
		}
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		thumbnail := ""
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			thumbnail = item.Snippet.Thumbnails.High.Url
		}

		videos = append(videos, Video{
			Title:     item.Snippet.Title,
			VideoID:   item.Id.VideoId,
			Thumbnail: thumbnail,
			Channel:   item.Snippet.ChannelTitle,
			Link:      watchURL + item.Id.VideoId,
		})
	}

	c.logger.Debugf("video search for %q returned %d videos", phrase, len(videos))
	return videos, nil
}
