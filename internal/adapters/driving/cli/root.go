// Package cli provides the command-line interface.
package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	configfile "github.com/veldlabs/florascribe-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/veldlabs/florascribe-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/veldlabs/florascribe-cli/internal/adapters/driven/embedding/openai"
	"github.com/veldlabs/florascribe-cli/internal/adapters/driven/images/wikimedia"
	ollamallm "github.com/veldlabs/florascribe-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/veldlabs/florascribe-cli/internal/adapters/driven/llm/openai"
	storagefile "github.com/veldlabs/florascribe-cli/internal/adapters/driven/storage/file"
	"github.com/veldlabs/florascribe-cli/internal/adapters/driven/vector/flat"
	"github.com/veldlabs/florascribe-cli/internal/adapters/driven/websearch/serpapi"
	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/core/services"
	"github.com/veldlabs/florascribe-cli/internal/extractors"
	htmlextractor "github.com/veldlabs/florascribe-cli/internal/extractors/html"
	pdfextractor "github.com/veldlabs/florascribe-cli/internal/extractors/pdf"
	plaintextextractor "github.com/veldlabs/florascribe-cli/internal/extractors/plaintext"
	"github.com/veldlabs/florascribe-cli/internal/logger"
)

// version is set by Execute.
var version = "dev"

// Services wired at startup. Package-level so tests can substitute
// mocks, matching how the commands reach them.
var (
	appConfig   *configfile.AppConfig
	appSettings domain.Settings

	collector *services.CollectorService
	ragSvc    *services.RAGService
	assembler *services.AssemblerService
	archive   driven.ArchiveStore
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "florascribe",
	Short: "Research and write botanical articles from web sources",
	Long: `florascribe collects trustworthy web sources about a plant,
indexes them, and writes a structured article grounded in what it
found. Answers are confidence-gated: when the collected sources do not
support a section, a template takes its place instead of invented text.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.florascribe/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
}

// Execute runs the CLI.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// initServices builds the adapter stack from configuration. Runs before
// every command; failures here mean the command cannot work at all.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	path := flagConfig
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := configfile.Load(path)
	if err != nil {
		return err
	}
	appConfig = cfg

	appSettings = domain.DefaultSettings()
	cfg.Apply(&appSettings)

	archive, err = storagefile.NewArchiveStore(cfg.Paths.ResearchDir)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	collector, err = buildCollector(cfg)
	if err != nil {
		return err
	}

	ragSvc, err = buildRAG(cfg)
	if err != nil {
		return err
	}

	var images driven.ImageProvider
	if appSettings.Article.FetchImages {
		images = wikimedia.New(wikimedia.Config{
			UserAgent: appSettings.Search.UserAgent,
		})
	}
	assembler = services.NewAssemblerService(ragSvc, images, appSettings.Article)

	return nil
}

func buildCollector(cfg *configfile.AppConfig) (*services.CollectorService, error) {
	httpClient := &http.Client{Timeout: appSettings.Search.RequestTimeout}

	registry := extractors.NewRegistry()
	registry.Register(htmlextractor.New(httpClient, appSettings.Search.UserAgent))
	registry.Register(pdfextractor.New(httpClient, appSettings.Search.UserAgent))
	registry.Register(plaintextextractor.New(httpClient, appSettings.Search.UserAgent))

	// Without a key the collector still constructs; collect reports
	// search as unavailable when actually run.
	var searcher driven.WebSearcher
	if cfg.Search.SerpAPIKey != "" {
		var err error
		searcher, err = serpapi.New(serpapi.Config{
			APIKey:                cfg.Search.SerpAPIKey,
			Timeout:               appSettings.Search.RequestTimeout,
			UnsupportedExtensions: appSettings.Search.UnsupportedExtensions,
		})
		if err != nil {
			return nil, fmt.Errorf("configure search: %w", err)
		}
	}

	reliability := services.NewReliabilityModel(appSettings.Reliability)
	return services.NewCollectorService(searcher, registry, reliability, archive, appSettings.Search), nil
}

func buildRAG(cfg *configfile.AppConfig) (*services.RAGService, error) {
	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		return nil, err
	}
	return services.NewRAGService(embedder, flat.New(), llm, appSettings.Retrieval), nil
}

func buildEmbedder(cfg configfile.ProviderConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "", "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

func buildLLM(cfg configfile.ProviderConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "":
		// No LLM configured: sections fall back to templates.
		return nil, nil
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "openai":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
