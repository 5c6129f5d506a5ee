// Package serpapi provides a web search adapter using the SerpAPI
// Google engine.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
)

// Ensure Searcher implements the interface.
var _ driven.WebSearcher = (*Searcher)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://serpapi.com/search"
	DefaultEngine  = "google"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the SerpAPI searcher.
type Config struct {
	// APIKey is the SerpAPI key (required).
	APIKey string

	// BaseURL is the search endpoint (default: https://serpapi.com/search).
	// Changeable for compatible self-hosted metasearch APIs and tests.
	BaseURL string

	// Engine is the SerpAPI engine parameter (default: google).
	Engine string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// UnsupportedExtensions mark result URLs that cannot be extracted.
	UnsupportedExtensions []string
}

// Searcher issues search queries through SerpAPI.
type Searcher struct {
	client          *http.Client
	baseURL         string
	apiKey          string
	engine          string
	unsupportedExts []string
}

// searchResponse is the subset of the SerpAPI response we consume.
type searchResponse struct {
	OrganicResults []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
	Error string `json:"error,omitempty"`
}

// New creates a SerpAPI searcher.
func New(cfg Config) (*Searcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serpapi: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Engine == "" {
		cfg.Engine = DefaultEngine
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Searcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		engine:          cfg.Engine,
		unsupportedExts: cfg.UnsupportedExtensions,
	}, nil
}

// Search runs a single query and returns up to limit candidates. Each
// candidate's kind is classified from its URL; tier priority is left
// for the caller to set.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("engine", s.engine)
	params.Set("num", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error (status %d): %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if searchResp.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", searchResp.Error)
	}

	candidates := make([]domain.Candidate, 0, len(searchResp.OrganicResults))
	for _, r := range searchResp.OrganicResults {
		if r.Link == "" {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			URL:     r.Link,
			Title:   r.Title,
			Snippet: r.Snippet,
			Kind:    domain.KindForURL(r.Link, s.unsupportedExts),
		})
		if len(candidates) >= limit {
			break
		}
	}

	return candidates, nil
}

// Ping validates the provider is reachable and the key accepted by
// checking the account endpoint.
func (s *Searcher) Ping(ctx context.Context) error {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return fmt.Errorf("serpapi: invalid base URL: %w", err)
	}
	base.Path = "/account"
	base.RawQuery = url.Values{"api_key": {s.apiKey}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("serpapi: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("serpapi: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("serpapi: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("serpapi: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
