// Package wikimedia provides section images from the Wikimedia Commons
// API.
package wikimedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.ImageProvider = (*Provider)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://commons.wikimedia.org/w/api.php"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "florascribe/1.0 (article illustration lookup)"

	// thumbWidth is the rendered width requested from the API.
	thumbWidth = 800

	// maxArtistLength keeps attribution captions readable.
	maxArtistLength = 100
)

// htmlTags strips markup from extmetadata fields, which Commons returns
// as HTML fragments.
var htmlTags = regexp.MustCompile(`<[^>]+>`)

// Config holds configuration for the Commons image provider.
type Config struct {
	// BaseURL is the MediaWiki API endpoint (default: Commons).
	BaseURL string

	// UserAgent identifies the client, per Wikimedia API policy.
	UserAgent string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Provider searches Wikimedia Commons for illustrative images.
type Provider struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// queryResponse is the subset of the MediaWiki response we consume.
type queryResponse struct {
	Query struct {
		Pages map[string]page `json:"pages"`
	} `json:"query"`
}

type page struct {
	Title     string      `json:"title"`
	Index     int         `json:"index"`
	ImageInfo []imageInfo `json:"imageinfo"`
}

type imageInfo struct {
	URL            string              `json:"url"`
	ThumbURL       string              `json:"thumburl"`
	DescriptionURL string              `json:"descriptionurl"`
	ExtMetadata    map[string]extValue `json:"extmetadata"`
}

type extValue struct {
	Value string `json:"value"`
}

// New creates a Commons image provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Provider{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
	}
}

// Search returns up to limit images for the term, searched in the File
// namespace with rendered URLs and attribution metadata.
func (p *Provider) Search(ctx context.Context, term string, limit int) ([]domain.SectionImage, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("generator", "search")
	params.Set("gsrnamespace", "6") // File namespace
	params.Set("gsrsearch", term)
	params.Set("gsrlimit", strconv.Itoa(limit))
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url|extmetadata")
	params.Set("iiurlwidth", strconv.Itoa(thumbWidth))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("commons error (status %d): %s", resp.StatusCode, string(body))
	}

	var queryResp queryResponse
	if err := json.Unmarshal(body, &queryResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Pages arrive keyed by page ID; order by search rank so the same
	// query always maps the same image to the same section.
	pages := make([]page, 0, len(queryResp.Query.Pages))
	for _, p := range queryResp.Query.Pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Index != pages[j].Index {
			return pages[i].Index < pages[j].Index
		}
		return pages[i].Title < pages[j].Title
	})

	images := make([]domain.SectionImage, 0, limit)
	for _, page := range pages {
		if len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]

		imageURL := info.ThumbURL
		if imageURL == "" {
			imageURL = info.URL
		}
		if imageURL == "" {
			continue
		}

		images = append(images, domain.SectionImage{
			URL:            imageURL,
			DescriptionURL: info.DescriptionURL,
			Artist:         cleanArtist(metaValue(info.ExtMetadata, "Artist")),
			Licence:        metaValue(info.ExtMetadata, "LicenseShortName"),
		})
		if len(images) >= limit {
			break
		}
	}

	return images, nil
}

func metaValue(meta map[string]extValue, key string) string {
	if v, ok := meta[key]; ok {
		return strings.TrimSpace(v.Value)
	}
	return ""
}

func cleanArtist(artist string) string {
	artist = strings.TrimSpace(htmlTags.ReplaceAllString(artist, ""))
	if len(artist) > maxArtistLength {
		artist = artist[:maxArtistLength]
	}
	return artist
}
