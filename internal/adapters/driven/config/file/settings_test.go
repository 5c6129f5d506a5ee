package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Empty(t, cfg.Search.SerpAPIKey)
	assert.Zero(t, cfg.Retrieval.TopK)
}

func TestLoadParsesTOML(t *testing.T) {
	path := writeConfig(t, `
[search]
serpapi_key = "file-key"
delay_ms = 500
max_sources = 8

[llm]
provider = "ollama"
model = "llama3.2"

[retrieval]
top_k = 3
strict = false

[article]
fetch_images = false
fallback_image = "/img/custom.jpg"

[paths]
output_dir = "/tmp/articles"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Search.SerpAPIKey)
	assert.Equal(t, 500, cfg.Search.DelayMS)
	assert.Equal(t, 8, cfg.Search.MaxSources)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	require.NotNil(t, cfg.Retrieval.Strict)
	assert.False(t, *cfg.Retrieval.Strict)
	require.NotNil(t, cfg.Article.FetchImages)
	assert.False(t, *cfg.Article.FetchImages)
	assert.Equal(t, "/tmp/articles", cfg.Paths.OutputDir)
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[search\nbroken")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestEnvironmentOverridesFileKey(t *testing.T) {
	path := writeConfig(t, `
[search]
serpapi_key = "file-key"
`)
	t.Setenv("SERPAPI_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Search.SerpAPIKey)
}

func TestApplyOverlaysOntoDefaults(t *testing.T) {
	settings := domain.DefaultSettings()
	strict := false
	fetch := false
	cfg := &AppConfig{
		Search: SearchConfig{DelayMS: 250, MaxSources: 7, TimeoutSeconds: 5},
		Retrieval: RetrievalConfig{
			TopK:                3,
			ConfidenceThreshold: 0.7,
			Strict:              &strict,
		},
		Article: ArticleConfig{FetchImages: &fetch, FallbackImage: "/img/custom.jpg"},
	}

	cfg.Apply(&settings)

	assert.Equal(t, 250*time.Millisecond, settings.Search.Delay)
	assert.Equal(t, 7, settings.Search.MaxSources)
	assert.Equal(t, 5*time.Second, settings.Search.RequestTimeout)
	assert.Equal(t, 3, settings.Retrieval.TopK)
	assert.InDelta(t, 0.7, settings.Retrieval.ConfidenceThreshold, 1e-9)
	assert.False(t, settings.Retrieval.Strict)
	assert.False(t, settings.Article.FetchImages)
	assert.Equal(t, "/img/custom.jpg", settings.Article.FallbackImage)
}

func TestApplyKeepsDefaultsForZeroValues(t *testing.T) {
	settings := domain.DefaultSettings()
	before := settings.Retrieval

	(&AppConfig{}).Apply(&settings)

	assert.Equal(t, before, settings.Retrieval)
	assert.True(t, settings.Article.FetchImages, "nil fetch_images keeps the default")
}
