package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask <subject> <question>",
	Short: "Ask a question against a subject's collected sources",
	Long: `Builds an index over the subject's saved research collection and
answers one question from it. When the sources do not support a
confident answer, the command says so instead of guessing.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if ragSvc == nil {
		return errors.New("query service not configured")
	}

	subject := args[0]
	question := strings.Join(args[1:], " ")
	ctx := context.Background()

	col, err := archive.Load(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no collection for %q: run `florascribe collect %s` first", subject, subject)
		}
		return fmt.Errorf("load collection: %w", err)
	}
	if len(col.Sources) == 0 {
		return fmt.Errorf("collection for %q is empty", subject)
	}
	if !ragSvc.CanGenerate() {
		return fmt.Errorf("set llm.provider in the config file to ask questions: %w", domain.ErrLLMUnavailable)
	}

	if err := ragSvc.BuildIndex(ctx, col.Sources); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	result, err := ragSvc.Query(ctx, question)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	printQueryResult(cmd, result)
	return nil
}

func printQueryResult(cmd *cobra.Command, result *domain.QueryResult) {
	cmd.Println(result.Answer)
	cmd.Println()

	if result.ValidationPassed {
		cmd.Println(okStyle.Render("confidence: " + result.Confidence))
	} else {
		cmd.Println(warnStyle.Render("confidence: " + result.Confidence))
	}

	if len(result.Sources) > 0 {
		cmd.Println(labelStyle.Render("sources:"))
		for _, src := range result.Sources {
			cmd.Printf("  - %s (%s)\n", src.SourceName, src.Reliability)
		}
	}
}
