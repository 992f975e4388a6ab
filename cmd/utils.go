package cmd

import (
	"context"
	"fmt"

	"github.com/querent-dev/querent/pkg/altquery"
	"github.com/querent-dev/querent/pkg/config"
	"github.com/querent-dev/querent/pkg/pipeline"
	"github.com/querent-dev/querent/pkg/providers/google"
	"github.com/querent-dev/querent/pkg/providers/youtube"
	"github.com/querent-dev/querent/pkg/storage"
)

// createClientsFromConfig builds the generator and the two provider clients
// from the configured credentials. Callers that only read stored results
// don't need this and should open storage directly.
func createClientsFromConfig(ctx context.Context, cfg *config.Config) (altquery.Generator, pipeline.WebSearcher, pipeline.VideoSearcher, error) {
	if err := cfg.ValidateProviders(); err != nil {
		return nil, nil, nil, err
	}

	generator, err := altquery.NewOllamaGenerator(cfg.Ollama.ServerURL, cfg.Ollama.Model, cfg.Ollama.Timeout.Duration)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating ollama generator: %w", err)
	}

	webClient, err := google.NewClient(ctx, cfg.Google.APIKey, cfg.Google.EngineID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating google client: %w", err)
	}

	videoClient, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating youtube client: %w", err)
	}

	return generator, webClient, videoClient, nil
}

// createPipelineFromConfig wires clients and storage into a ready pipeline.
// The returned storage must be closed by the caller.
func createPipelineFromConfig(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, *storage.Storage, error) {
	generator, webClient, videoClient, err := createClientsFromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	return pipeline.New(generator, webClient, videoClient, store), store, nil
}
