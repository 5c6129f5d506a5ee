package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

var flagGenerateCollect bool

var generateCmd = &cobra.Command{
	Use:   "generate <subject>",
	Short: "Generate an article from collected sources",
	Long: `Generates a structured article for a subject from its saved
research collection. Sections the sources cannot support fall back to
deterministic templates, so the output is never empty.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&flagGenerateCollect, "collect", false,
		"collect sources first instead of loading a saved collection")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if assembler == nil {
		return errors.New("generator not configured")
	}

	subject := strings.Join(args, " ")
	ctx := context.Background()

	records, err := loadOrCollect(ctx, subject)
	if err != nil {
		return err
	}

	article, err := assembler.GenerateArticle(ctx, subject, records)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	path, err := writeArticle(subject, article)
	if err != nil {
		return err
	}

	cmd.Println(titleStyle.Render("Article generated"))
	cmd.Println(kv("Subject", subject))
	cmd.Println(kv("Sources", fmt.Sprintf("%d", len(records))))
	cmd.Println(kv("Output", path))
	if len(records) == 0 {
		cmd.Println(warnStyle.Render("No sources available: all sections used template fallbacks"))
	}
	return nil
}

// loadOrCollect prefers the saved collection; --collect forces a fresh
// run. A missing collection with no searcher is not fatal — the
// assembler falls back to templates.
func loadOrCollect(ctx context.Context, subject string) ([]domain.SourceRecord, error) {
	if flagGenerateCollect {
		records, err := collector.CollectSources(ctx, subject)
		if err != nil {
			return nil, fmt.Errorf("collect failed: %w", err)
		}
		if len(records) > 0 {
			if err := collector.SaveCollection(ctx, subject, records); err != nil {
				return nil, fmt.Errorf("save collection: %w", err)
			}
			markSubjectComplete(ctx, subject)
		}
		return records, nil
	}

	col, err := archive.Load(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return col.Sources, nil
}

func writeArticle(subject, article string) (string, error) {
	dir := appConfig.Paths.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(subject), " ", "-"))
	name := fmt.Sprintf("%s-%s.html", time.Now().Format("2006-01-02"), slug)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(article), 0o644); err != nil {
		return "", fmt.Errorf("write article: %w", err)
	}
	return path, nil
}
