package altquery

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/querent-dev/querent/pkg/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const promptTemplate = "Generate 5 alternate feasible relevant queries similar to: '%s' which are helpful to search in Google and YouTube."

// OllamaGenerator generates alternate queries with a model served by
// Ollama. Responses are requested non-streaming; the model is asked for 5
// phrasings and the first MaxAlternates usable lines are kept.
type OllamaGenerator struct {
	llm    llms.Model
	logger *log.Logger
}

func NewOllamaGenerator(serverURL, model string, timeout time.Duration) (*OllamaGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL must be specified")
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model must be specified")
	}

	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	return &OllamaGenerator{
		llm:    llm,
		logger: log.ForService("altquery"),
	}, nil
}

func (g *OllamaGenerator) Generate(ctx context.Context, query string) ([]string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(fmt.Sprintf(promptTemplate, query)),
			},
		},
	}

	resp, err := g.llm.GenerateContent(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("generating alternate queries: %w", err)
	}

	if len(resp.Choices) == 0 {
		g.logger.Debugf("model returned no choices for %q", query)
		return nil, nil
	}

	alternates := ParseAlternates(resp.Choices[0].Content)
	g.logger.Debugf("generated %d alternates for %q", len(alternates), query)
	return alternates, nil
}
