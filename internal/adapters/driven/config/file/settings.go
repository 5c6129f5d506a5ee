// Package file loads the application configuration from a TOML file.
// Everything has a working default; the file only overrides.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

// AppConfig is the on-disk configuration shape. Zero values mean "keep
// the default".
type AppConfig struct {
	Search    SearchConfig    `toml:"search"`
	Embedding ProviderConfig  `toml:"embedding"`
	LLM       ProviderConfig  `toml:"llm"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Article   ArticleConfig   `toml:"article"`
	Paths     PathsConfig     `toml:"paths"`
}

// SearchConfig overrides source discovery knobs.
type SearchConfig struct {
	// SerpAPIKey authorises web search. Can also come from the
	// SERPAPI_KEY environment variable.
	SerpAPIKey string `toml:"serpapi_key"`

	// DelayMS is the inter-request delay in milliseconds.
	DelayMS int `toml:"delay_ms"`

	// MaxSources caps accepted records per run.
	MaxSources int `toml:"max_sources"`

	// TimeoutSeconds bounds each outbound HTTP call.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// ProviderConfig selects and configures a model provider.
type ProviderConfig struct {
	// Provider is "ollama" or "openai". Empty disables the capability
	// for LLM; embedding defaults to ollama.
	Provider string `toml:"provider"`

	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

// RetrievalConfig overrides the confidence gate.
type RetrievalConfig struct {
	TopK                    int     `toml:"top_k"`
	ConfidenceThreshold     float64 `toml:"confidence_threshold"`
	MinConfidentDocs        int     `toml:"min_confident_docs"`
	MeanSimilarityThreshold float64 `toml:"mean_similarity_threshold"`
	Strict                  *bool   `toml:"strict"`
}

// ArticleConfig overrides article assembly.
type ArticleConfig struct {
	FetchImages   *bool  `toml:"fetch_images"`
	FallbackImage string `toml:"fallback_image"`
}

// PathsConfig overrides storage locations.
type PathsConfig struct {
	// DataDir holds the catalogue database.
	DataDir string `toml:"data_dir"`

	// ResearchDir holds collection artifacts.
	ResearchDir string `toml:"research_dir"`

	// OutputDir receives rendered articles.
	OutputDir string `toml:"output_dir"`
}

// DefaultPath returns the default config file location,
// ~/.florascribe/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".florascribe", "config.toml"), nil
}

// Load reads the config file at path. A missing file is not an error;
// it yields an empty config so the defaults stand. The SERPAPI_KEY
// environment variable overrides the file.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if key := os.Getenv("SERPAPI_KEY"); key != "" {
		cfg.Search.SerpAPIKey = key
	}

	return &cfg, nil
}

// Apply overlays the file config onto the default pipeline settings.
func (c *AppConfig) Apply(settings *domain.Settings) {
	if c.Search.DelayMS > 0 {
		settings.Search.Delay = time.Duration(c.Search.DelayMS) * time.Millisecond
	}
	if c.Search.MaxSources > 0 {
		settings.Search.MaxSources = c.Search.MaxSources
	}
	if c.Search.TimeoutSeconds > 0 {
		settings.Search.RequestTimeout = time.Duration(c.Search.TimeoutSeconds) * time.Second
	}

	if c.Retrieval.TopK > 0 {
		settings.Retrieval.TopK = c.Retrieval.TopK
	}
	if c.Retrieval.ConfidenceThreshold > 0 {
		settings.Retrieval.ConfidenceThreshold = c.Retrieval.ConfidenceThreshold
	}
	if c.Retrieval.MinConfidentDocs > 0 {
		settings.Retrieval.MinConfidentDocs = c.Retrieval.MinConfidentDocs
	}
	if c.Retrieval.MeanSimilarityThreshold > 0 {
		settings.Retrieval.MeanSimilarityThreshold = c.Retrieval.MeanSimilarityThreshold
	}
	if c.Retrieval.Strict != nil {
		settings.Retrieval.Strict = *c.Retrieval.Strict
	}

	if c.Article.FetchImages != nil {
		settings.Article.FetchImages = *c.Article.FetchImages
	}
	if c.Article.FallbackImage != "" {
		settings.Article.FallbackImage = c.Article.FallbackImage
	}
}
