package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/querent-dev/querent/pkg/config"
	"github.com/urfave/cli/v3"
)

// AskCommand creates the ask command
func AskCommand() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Submit a query: generate alternates, search providers, rank and store",
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("query argument required")
			}
			return askQuery(ctx, c.String("config"), query)
		},
	}
}

func askQuery(ctx context.Context, configPath, query string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, store, err := createPipelineFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close storage: %v\n", err)
		}
	}()

	result, err := p.Submit(ctx, query)
	if err != nil {
		return fmt.Errorf("submitting query: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Query: %s", result.Query)))

	fmt.Println(headerStyle.Render("Alternate queries"))
	if len(result.Alternates) == 0 {
		fmt.Println(noDataStyle.Render("The model produced no usable alternates."))
	}
	for i, alt := range result.Alternates {
		fmt.Printf("  %d. %s\n", i+1, alt)
	}

	if len(result.Alternates) < 2 {
		fmt.Println(noDataStyle.Render("Fewer than two alternates; providers were not searched."))
		return nil
	}

	fmt.Println(headerStyle.Render("Web results"))
	for _, hit := range result.WebHits {
		fmt.Printf("  🌐 %s\n     %s\n", hit.Title, urlStyle.Render(hit.Link))
	}

	fmt.Println(headerStyle.Render("Video results"))
	for _, v := range result.VideoHits {
		fmt.Printf("  🎬 %s (%s)\n     %s\n", v.Title, v.Channel, urlStyle.Render(v.Link))
	}

	stored := len(result.WebHits) + len(result.VideoHits)
	fmt.Println(metaStyle.Render(fmt.Sprintf("Stored %d ranked results. Retrieve them with 'querent results %q'.", stored, query)))
	return nil
}
