package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

var collectCmd = &cobra.Command{
	Use:   "collect <subject>",
	Short: "Collect and rank web sources for a subject",
	Long: `Searches the web in tiers (regional academic first), filters and
ranks the candidates, extracts clean text, and saves the results as a
research collection for later article generation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	if collector == nil {
		return errors.New("collector not configured")
	}

	subject := strings.Join(args, " ")
	ctx := context.Background()

	records, err := collector.CollectSources(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrSearchUnavailable) {
			return errors.New("no search key configured: set serpapi_key in the config file or SERPAPI_KEY in the environment")
		}
		return fmt.Errorf("collect failed: %w", err)
	}

	if len(records) == 0 {
		cmd.Println(warnStyle.Render("No usable sources found for " + subject))
		return nil
	}

	if err := collector.SaveCollection(ctx, subject, records); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	markSubjectComplete(ctx, subject)

	printCollectionSummary(cmd, subject, records)
	return nil
}

func printCollectionSummary(cmd *cobra.Command, subject string, records []domain.SourceRecord) {
	cmd.Println(titleStyle.Render("Collection complete"))
	cmd.Println(kv("Subject", subject))
	cmd.Println(kv("Sources", fmt.Sprintf("%d", len(records))))
	cmd.Println()

	for i, r := range records {
		meta := r.Metadata
		cmd.Printf("%2d. %s\n", i+1, valueStyle.Render(meta.SourceName))
		cmd.Printf("    %s\n", labelStyle.Render(meta.URL))
		cmd.Printf("    %s\n", labelStyle.Render(fmt.Sprintf(
			"reliability=%s type=%s kind=%s", meta.Reliability, meta.ContentType, meta.Kind)))
	}
}
