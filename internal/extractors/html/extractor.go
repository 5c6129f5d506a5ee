// Package html extracts readable article text from fetched web pages.
// Well-known site families get tailored selectors; everything else goes
// through a generic paragraph scan with a boilerplate filter.
package html

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/extractors"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// titleSelectors is the ordered list of places a page title may live.
var titleSelectors = []string{
	"h1.plant-name",
	"h1.entry-title",
	"h1.title",
	".plant-header__title",
	"h1",
	"title",
}

// boilerplatePhrases mark paragraphs that are site chrome, not content.
var boilerplatePhrases = []string{
	"cookie", "privacy", "subscribe", "newsletter", "advertisement",
	"menu", "navigation", "share this", "follow us", "contact us",
}

// strategy describes how one family of sites lays out its main content.
// Selectors are tried in order; a selector's harvest is accepted once it
// yields at least `need` paragraphs.
type strategy struct {
	name      string
	hosts     []string
	selectors []string
	limit     int
	minLen    int
	need      int

	// cap bounds accepted paragraphs; zero means limit is the only bound.
	cap int
}

// strategies is checked in order; the first host match wins.
var strategies = []strategy{
	{
		name:      "encyclopedia",
		hosts:     []string{"wikipedia.org"},
		selectors: []string{"#mw-content-text p"},
		limit:     10, minLen: 50, need: 1,
	},
	{
		name:      "blog",
		hosts:     []string{"thespruce.com", "treehugger.com"},
		selectors: []string{".comp.mntl-sc-block-html", "article p", ".entry-content p"},
		limit:     8, minLen: 30, need: 3,
	},
	{
		name:      "extension",
		hosts:     []string{"extension"},
		selectors: []string{".entry-content p", ".article-content p", "main p"},
		limit:     10, minLen: 40, need: 1,
	},
	{
		name:      "reference",
		hosts:     []string{"britannica.com"},
		selectors: []string{"article p", ".article-content p"},
		limit:     8, minLen: 50, need: 1,
	},
	{
		name:      "horticultural",
		hosts:     []string{"rhs.org.uk"},
		selectors: []string{".plant-description p", ".plant-summary p", "article p"},
		limit:     6, minLen: 50, need: 1,
	},
}

// generic is the fallback strategy for unrecognised hosts.
var generic = strategy{
	name:      "generic",
	selectors: []string{"article p", ".entry-content p", ".content p", "main p"},
	limit:     10, minLen: 40, need: 3,
	cap: genericParagraphCap,
}

// genericParagraphCap bounds the generic fallback's output.
const genericParagraphCap = 8

// Extractor handles HTML documents.
type Extractor struct {
	client    *http.Client
	userAgent string
}

// New creates an HTML extractor.
func New(client *http.Client, userAgent string) *Extractor {
	return &Extractor{client: client, userAgent: userAgent}
}

// SupportedKinds returns the document kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.DocumentKind {
	return []domain.DocumentKind{domain.KindHTML}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract fetches the page and pulls out title and main content.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*driven.Extraction, error) {
	body, _, err := extractors.Fetch(ctx, e.client, rawURL, e.userAgent)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	// Chrome elements never carry article text.
	doc.Find("script, style, nav, header, footer, aside").Remove()

	title := extractTitle(doc, rawURL)
	content := extractContent(doc, rawURL)
	if content == "" {
		return nil, fmt.Errorf("no readable content in %s: %w", rawURL, domain.ErrInsufficientContent)
	}

	return &driven.Extraction{Title: title, Content: content}, nil
}

func extractTitle(doc *goquery.Document, rawURL string) string {
	for _, sel := range titleSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if len(text) > 3 {
			return text
		}
	}
	return extractors.TitleFromURL(rawURL)
}

func extractContent(doc *goquery.Document, rawURL string) string {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	for _, strat := range strategies {
		if strat.matches(host) {
			return strat.harvest(doc)
		}
	}

	if content := generic.harvest(doc); content != "" {
		return content
	}
	return scanAllParagraphs(doc)
}

func (s strategy) matches(host string) bool {
	for _, h := range s.hosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// harvest tries the strategy's selectors in order, accepting the first
// round that yields enough qualifying paragraphs.
func (s strategy) harvest(doc *goquery.Document) string {
	for _, sel := range s.selectors {
		var parts []string
		doc.Find(sel).EachWithBreak(func(i int, el *goquery.Selection) bool {
			if i >= s.limit {
				return false
			}
			text := strings.TrimSpace(el.Text())
			if len(text) > s.minLen && isContentText(text) {
				parts = append(parts, text)
			}
			return true
		})
		if len(parts) >= s.need {
			if s.cap > 0 && len(parts) > s.cap {
				parts = parts[:s.cap]
			}
			return strings.Join(parts, "\n\n")
		}
	}
	return ""
}

// scanAllParagraphs is the last resort: walk every paragraph on the
// page, keep the first few that look like content.
func scanAllParagraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if i >= 20 || len(parts) >= 5 {
			return false
		}
		text := strings.TrimSpace(el.Text())
		if len(text) > 50 && isContentText(text) {
			parts = append(parts, text)
		}
		return true
	})
	return strings.Join(parts, "\n\n")
}

func isContentText(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}
