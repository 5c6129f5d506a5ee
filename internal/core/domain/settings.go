package domain

import (
	"strings"
	"time"
)

// Settings is the tuning configuration for the whole pipeline. It is
// constructed once at process start (defaults, optionally overlaid from
// a config file) and passed by reference into each component — there is
// no ambient global state.
type Settings struct {
	Search      SearchSettings
	Reliability ReliabilitySettings
	Retrieval   RetrievalSettings
	Article     ArticleSettings
}

// SearchTier is one ordered search query. Format receives the subject
// name; later tiers only run while the candidate count is below target.
type SearchTier struct {
	// Format is the query template, e.g. "%s plant site:.ac.za".
	Format string

	// Priority is attached to every candidate the tier produces.
	Priority TierPriority
}

// SearchSettings tunes candidate discovery and extraction.
type SearchSettings struct {
	// Delay is the fixed pause between outbound network calls.
	Delay time.Duration

	// MaxSources is the global cap on accepted source records per run.
	MaxSources int

	// RequestTimeout bounds every outbound HTTP call.
	RequestTimeout time.Duration

	// UserAgent is sent on every outbound request.
	UserAgent string

	// Tiers are the ordered search queries.
	Tiers []SearchTier

	// SkipDomains are never extracted (URL substring match).
	SkipDomains []string

	// UnsupportedExtensions mark URLs that cannot be extracted.
	UnsupportedExtensions []string

	// TopicKeywords earn a small relevance bonus in titles/snippets.
	TopicKeywords []string

	// PathKeywords earn a small relevance bonus in URL paths.
	PathKeywords []string

	// RegionalDomainCap is the per-domain extraction cap for trusted
	// regional domains; DomainCap applies to everything else.
	RegionalDomainCap int
	DomainCap         int

	// MinContentLength is the minimum extracted text length for a
	// record to be kept.
	MinContentLength int
}

// ReliabilitySettings is the configurable domain-trust table,
// partitioned by category.
type ReliabilitySettings struct {
	// Domains maps category name to domain → trust score in [0,1].
	Domains map[string]map[string]float64

	// SourceNames maps known domains to display names.
	SourceNames map[string]string

	// RegionalMarkers identify trusted-region domains by substring.
	RegionalMarkers []string
}

// TrustedRegion reports whether a domain belongs to the prioritised
// region.
func (r ReliabilitySettings) TrustedRegion(domain string) bool {
	lower := strings.ToLower(domain)
	for _, marker := range r.RegionalMarkers {
		if marker != "" && strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// RetrievalSettings tunes the vector retriever, confidence gate, and
// answer generation.
type RetrievalSettings struct {
	// TopK is the default number of neighbours to retrieve.
	TopK int

	// ConfidenceThreshold marks a retrieval result confident when its
	// similarity meets it.
	ConfidenceThreshold float64

	// MinConfidentDocs is the minimum number of confident results for
	// the gate to pass.
	MinConfidentDocs int

	// MeanSimilarityThreshold is the minimum mean similarity across
	// results for the gate to pass.
	MeanSimilarityThreshold float64

	// MaxContextLength bounds the context string fed to the model.
	MaxContextLength int

	// MaxTokens bounds generation length.
	MaxTokens int

	// Temperature is the sampling temperature; kept low for determinism.
	Temperature float64

	// Strict refuses to answer when the gate fails. When false the
	// generator still runs on whatever context was retrieved.
	Strict bool
}

// SectionSpec describes one article section: its heading, the
// retrieval-augmented prompt used to write it, and generation bounds.
type SectionSpec struct {
	ID          string
	Heading     string
	Prompt      string // template; receives the subject name
	TopK        int
	MaxTokens   int
	Temperature float64
	Fallback    string // template; receives the subject name twice at most
}

// HeadingTemplate is one candidate article title/subtitle pair. Both
// templates receive the subject name.
type HeadingTemplate struct {
	Title    string
	Subtitle string
}

// CleaningSettings controls post-generation text cleanup.
type CleaningSettings struct {
	RemoveCitations     bool
	RemoveSourceMarkers bool
	RemoveIncomplete    bool
	MinParagraphLength  int
}

// ArticleSettings tunes the article assembler.
type ArticleSettings struct {
	// Layout is the front-matter layout value.
	Layout string

	// Headings are the candidate title/subtitle templates; one is
	// chosen per article.
	Headings []HeadingTemplate

	// Categories go into the front matter verbatim.
	Categories []string

	// Sections are rendered in order.
	Sections []SectionSpec

	// FetchImages enables one illustrative image per section.
	FetchImages bool

	// FallbackImage is used when no image can be fetched.
	FallbackImage string

	// Cleaning controls generated-text cleanup.
	Cleaning CleaningSettings
}

