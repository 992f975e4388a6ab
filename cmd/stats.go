package cmd

import (
	"context"
	"fmt"

	"github.com/querent-dev/querent/pkg/config"
	"github.com/querent-dev/querent/pkg/storage"
	"github.com/urfave/cli/v3"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show storage statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			return showStats(c.String("config"))
		},
	}
}

func showStats(configPath string) error {
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

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}

	fmt.Println(titleStyle.Render("📊 Storage Statistics"))

	totalResults, _ := stats["total_results"].(int)
	totalQueries, _ := stats["total_queries"].(int)

	fmt.Printf("Stored results:  %d\n", totalResults)
	fmt.Printf("Distinct queries: %d\n", totalQueries)

	if totalResults == 0 {
		fmt.Println(noDataStyle.Render("Nothing stored yet. Submit a query with 'querent ask'."))
	}
	return nil
}
