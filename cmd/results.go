package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/querent-dev/querent/pkg/config"
	"github.com/querent-dev/querent/pkg/storage"
	"github.com/urfave/cli/v3"
)

// ResultsCommand creates the results command
func ResultsCommand() *cli.Command {
	return &cli.Command{
		Name:      "results",
		Usage:     "Show stored results for a previously submitted query",
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("query argument required")
			}
			return showResults(c.String("config"), query)
		},
	}
}

func showResults(configPath, query string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Printf("Warning: failed to close storage: %v\n", err)
		}
	}()

	results, err := store.ResultsByQuery(query)
	if err != nil {
		return fmt.Errorf("fetching results: %w", err)
	}

	fmt.Print(formatResultList(query, results))
	return nil
}
