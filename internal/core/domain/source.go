package domain

import "strings"

// ReliabilityLevel is a coarse trust bucket derived from a numeric
// domain-trust score.
type ReliabilityLevel string

// Reliability levels, most trusted first.
const (
	ReliabilityVeryHigh ReliabilityLevel = "very_high"
	ReliabilityHigh     ReliabilityLevel = "high"
	ReliabilityMedium   ReliabilityLevel = "medium"
	ReliabilityLow      ReliabilityLevel = "low"
)

// IsValid returns true if the reliability level is recognised.
func (l ReliabilityLevel) IsValid() bool {
	switch l {
	case ReliabilityVeryHigh, ReliabilityHigh, ReliabilityMedium, ReliabilityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l ReliabilityLevel) String() string {
	return string(l)
}

// RankBase returns the base used when ordering records for retrieval.
func (l ReliabilityLevel) RankBase() float64 {
	switch l {
	case ReliabilityVeryHigh:
		return 1.0
	case ReliabilityHigh:
		return 0.8
	case ReliabilityMedium:
		return 0.6
	default:
		return 0.4
	}
}

// ContentType classifies what kind of information an extracted text holds.
type ContentType string

// Content type classifications.
const (
	ContentBotanicalReference ContentType = "botanical_reference"
	ContentCultivationGuide   ContentType = "cultivation_guide"
	ContentEcological         ContentType = "ecological_information"
	ContentPlantDescription   ContentType = "plant_description"
	ContentGeneral            ContentType = "general_information"
)

// RankBonus returns the ranking bonus for this content type.
func (c ContentType) RankBonus() float64 {
	switch c {
	case ContentBotanicalReference:
		return 0.2
	case ContentPlantDescription:
		return 0.15
	case ContentCultivationGuide, ContentEcological:
		return 0.1
	default:
		return 0
	}
}

// Keyword markers used to classify extracted text. Order matters: the
// first matching class wins.
var contentClassifiers = []struct {
	class ContentType
	terms []string
}{
	{ContentBotanicalReference, []string{"scientific name", "botanical", "taxonomy"}},
	{ContentCultivationGuide, []string{"growing", "planting", "cultivation", "care"}},
	{ContentEcological, []string{"native", "habitat", "distribution", "ecology"}},
	{ContentPlantDescription, []string{"description", "appearance", "characteristics"}},
}

// ClassifyContent derives a content type from extracted text. The result
// is a pure function of the text.
func ClassifyContent(text string) ContentType {
	lower := strings.ToLower(text)
	for _, c := range contentClassifiers {
		for _, term := range c.terms {
			if strings.Contains(lower, term) {
				return c.class
			}
		}
	}
	return ContentGeneral
}

// SourceMetadata describes where a source record came from and how much
// it can be trusted. Derived deterministically from the domain and text
// at extraction time; never mutated afterwards.
type SourceMetadata struct {
	// SourceName is the human-readable publisher name.
	SourceName string `json:"source"`

	// Reliability is the trust bucket for the publishing domain.
	Reliability ReliabilityLevel `json:"reliability"`

	// URL is the document location.
	URL string `json:"url"`

	// Domain is the publishing host.
	Domain string `json:"domain"`

	// Title is the extracted document title.
	Title string `json:"title"`

	// ExtractionDate is the date the text was extracted (YYYY-MM-DD).
	ExtractionDate string `json:"extraction_date"`

	// ContentType classifies the information in the text.
	ContentType ContentType `json:"content_type"`

	// Kind is the document format the text came from.
	Kind DocumentKind `json:"document_kind"`

	// TrustedRegion is true for domains in the prioritised region.
	TrustedRegion bool `json:"is_trusted_region"`
}

// SourceRecord is verified, extracted text plus trust and classification
// metadata. It is immutable once created and is the atomic unit stored in
// the vector index and returned by retrieval.
type SourceRecord struct {
	Text     string         `json:"text"`
	Metadata SourceMetadata `json:"metadata"`
}

// Collection is the persisted artifact produced by a collection run.
type Collection struct {
	Subject        string         `json:"subject"`
	CollectionDate string         `json:"collection_date"`
	TotalSources   int            `json:"total_sources"`
	Sources        []SourceRecord `json:"sources"`
}
