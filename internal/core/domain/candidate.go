package domain

import "strings"

// DocumentKind identifies how a candidate's content must be extracted.
type DocumentKind string

// Document kinds.
const (
	KindHTML        DocumentKind = "html"
	KindPDF         DocumentKind = "pdf"
	KindText        DocumentKind = "text"
	KindUnsupported DocumentKind = "unsupported"
)

// IsValid checks if the document kind is recognised.
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindHTML, KindPDF, KindText, KindUnsupported:
		return true
	}
	return false
}

// String returns the string representation.
func (k DocumentKind) String() string {
	return string(k)
}

// TierPriority records which search tier produced a candidate. Higher
// tiers carry a larger relevance bonus during filtering.
type TierPriority string

// Tier priorities.
const (
	PriorityHigh   TierPriority = "high"
	PriorityMedium TierPriority = "medium"
	PriorityLow    TierPriority = "low"
)

// Bonus returns the relevance score contribution of the tier.
func (p TierPriority) Bonus() int {
	switch p {
	case PriorityHigh:
		return 25
	case PriorityMedium:
		return 15
	default:
		return 0
	}
}

// Candidate is one search hit before extraction.
type Candidate struct {
	// URL is the candidate's address.
	URL string

	// Title and Snippet come from the search result.
	Title   string
	Snippet string

	// Kind is derived from the URL, never from fetched content.
	Kind DocumentKind

	// Priority is set by the collector from the tier that found it.
	Priority TierPriority
}

// KindForURL classifies a URL by its apparent document kind. Extensions
// in unsupportedExts (images, archives, media) are rejected outright.
func KindForURL(rawURL string, unsupportedExts []string) DocumentKind {
	lower := strings.ToLower(rawURL)

	for _, ext := range unsupportedExts {
		if strings.HasSuffix(lower, ext) {
			return KindUnsupported
		}
	}
	if strings.HasSuffix(lower, ".pdf") || strings.Contains(lower, "pdf") {
		return KindPDF
	}
	if strings.HasSuffix(lower, ".txt") {
		return KindText
	}
	return KindHTML
}
