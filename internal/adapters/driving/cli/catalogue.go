package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldlabs/florascribe-cli/internal/adapters/driven/storage/sqlite"
	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/logger"
)

// openCatalogue is swappable in tests.
var openCatalogue = func() (driven.CatalogueStore, error) {
	return sqlite.NewCatalogueStore(appConfig.Paths.DataDir)
}

var catalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Manage the research subject catalogue",
	Long: `The catalogue tracks subjects queued for research. A successful
collection marks its subject complete; done flips the flag by hand.`,
}

// markSubjectComplete flips a catalogued subject's completion flag after
// a successful collection. Subjects collected ad hoc are not in the
// catalogue; that is not an error, and neither is a missing catalogue —
// the collection artifacts are already saved.
func markSubjectComplete(ctx context.Context, subject string) {
	store, err := openCatalogue()
	if err != nil {
		logger.Warn("Catalogue unavailable: %v", err)
		return
	}
	defer store.Close()

	err = store.MarkComplete(ctx, subject, true)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Mark %q complete: %v", subject, err)
	}
}

var catalogueAddCmd = &cobra.Command{
	Use:   "add <scientific-name>",
	Short: "Queue a subject for research",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogueAdd,
}

var cataloguePendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List subjects not yet researched",
	RunE:  runCataloguePending,
}

var catalogueDoneCmd = &cobra.Command{
	Use:   "done <scientific-name>",
	Short: "Mark a subject's article as complete",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogueDone,
}

var catalogueStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalogue progress",
	RunE:  runCatalogueStats,
}

var (
	flagCatalogueTitle  string
	flagCatalogueFamily string
	flagCatalogueGenus  string
	flagCatalogueLimit  int
)

func init() {
	catalogueAddCmd.Flags().StringVar(&flagCatalogueTitle, "title", "", "display name (defaults to the scientific name)")
	catalogueAddCmd.Flags().StringVar(&flagCatalogueFamily, "family", "", "taxonomic family")
	catalogueAddCmd.Flags().StringVar(&flagCatalogueGenus, "genus", "", "taxonomic genus")
	cataloguePendingCmd.Flags().IntVar(&flagCatalogueLimit, "limit", 10, "maximum entries to list")

	catalogueCmd.AddCommand(catalogueAddCmd, cataloguePendingCmd, catalogueDoneCmd, catalogueStatsCmd)
	rootCmd.AddCommand(catalogueCmd)
}

func runCatalogueAdd(cmd *cobra.Command, args []string) error {
	store, err := openCatalogue()
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer store.Close()

	name := strings.Join(args, " ")
	entry := driven.CatalogueEntry{
		Title:          flagCatalogueTitle,
		ScientificName: name,
		Family:         flagCatalogueFamily,
		Genus:          flagCatalogueGenus,
	}
	if err := store.Add(context.Background(), entry); err != nil {
		return fmt.Errorf("add entry: %w", err)
	}

	cmd.Println(okStyle.Render("Queued " + name))
	return nil
}

func runCataloguePending(cmd *cobra.Command, _ []string) error {
	store, err := openCatalogue()
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer store.Close()

	entries, err := store.Pending(context.Background(), flagCatalogueLimit)
	if err != nil {
		return fmt.Errorf("list pending: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("Nothing pending.")
		return nil
	}

	for _, e := range entries {
		line := e.ScientificName
		if e.Title != "" && e.Title != e.ScientificName {
			line += " (" + e.Title + ")"
		}
		cmd.Println("  " + line)
	}
	return nil
}

func runCatalogueDone(cmd *cobra.Command, args []string) error {
	store, err := openCatalogue()
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer store.Close()

	name := strings.Join(args, " ")
	if err := store.MarkComplete(context.Background(), name, true); err != nil {
		return fmt.Errorf("mark complete: %w", err)
	}

	cmd.Println(okStyle.Render("Completed " + name))
	return nil
}

func runCatalogueStats(cmd *cobra.Command, _ []string) error {
	store, err := openCatalogue()
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer store.Close()

	total, complete, err := store.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	cmd.Println(kv("Total", fmt.Sprintf("%d", total)))
	cmd.Println(kv("Complete", fmt.Sprintf("%d", complete)))
	cmd.Println(kv("Pending", fmt.Sprintf("%d", total-complete)))
	return nil
}
