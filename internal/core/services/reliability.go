package services

import (
	"strings"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

// Reliability level thresholds applied to trust scores.
const (
	veryHighThreshold = 0.95
	highThreshold     = 0.85
	mediumThreshold   = 0.75
)

// Content boosts applied on top of the domain score. The trust score is
// capped at 1.0; regional preference is expressed in the ranking score
// (capped at 1.5), never in the trust score itself.
const (
	taxonomyBoost   = 0.05
	lengthBoost     = 0.03
	lengthBoostMin  = 1000
	unknownDomain   = 0.5
	regionalRankBonus = 0.25
	pdfRankBonus      = 0.05
	maxRankScore      = 1.5
)

// Markers of taxonomic vocabulary in extracted text.
var taxonomyMarkers = []string{"scientific name", "botanical", "taxonomy"}

// ReliabilityModel maps domains to trust scores. The table is supplied
// through settings; the model itself holds no mutable state.
type ReliabilityModel struct {
	scores   map[string]float64
	names    map[string]string
	settings domain.ReliabilitySettings
}

// NewReliabilityModel flattens the category-partitioned trust table into
// a single lookup.
func NewReliabilityModel(settings domain.ReliabilitySettings) *ReliabilityModel {
	scores := make(map[string]float64)
	for _, domains := range settings.Domains {
		for d, score := range domains {
			scores[d] = score
		}
	}
	return &ReliabilityModel{
		scores:   scores,
		names:    settings.SourceNames,
		settings: settings,
	}
}

// Score returns the trust score for a domain plus content boosts,
// capped at 1.0. Unknown domains score 0.5.
func (m *ReliabilityModel) Score(dom, text string) float64 {
	score, ok := m.scores[dom]
	if !ok {
		score = unknownDomain
	}

	lower := strings.ToLower(text)
	for _, marker := range taxonomyMarkers {
		if strings.Contains(lower, marker) {
			score += taxonomyBoost
			break
		}
	}
	if len(text) > lengthBoostMin {
		score += lengthBoost
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Known reports whether the domain appears in the trust table.
func (m *ReliabilityModel) Known(dom string) bool {
	_, ok := m.scores[dom]
	return ok
}

// TrustedRegion reports whether a domain belongs to the prioritised region.
func (m *ReliabilityModel) TrustedRegion(dom string) bool {
	return m.settings.TrustedRegion(dom)
}

// Level converts a trust score to its coarse bucket. Monotonic in score:
// raising the score never lowers the level.
func Level(score float64) domain.ReliabilityLevel {
	switch {
	case score >= veryHighThreshold:
		return domain.ReliabilityVeryHigh
	case score >= highThreshold:
		return domain.ReliabilityHigh
	case score >= mediumThreshold:
		return domain.ReliabilityMedium
	default:
		return domain.ReliabilityLow
	}
}

// RankScore orders final records for retrieval: reliability base plus
// regional, content-type, and document-kind bonuses, capped at 1.5.
func RankScore(meta domain.SourceMetadata) float64 {
	score := meta.Reliability.RankBase()

	if meta.TrustedRegion {
		score += regionalRankBonus
	}
	score += meta.ContentType.RankBonus()
	if meta.Kind == domain.KindPDF {
		score += pdfRankBonus
	}

	if score > maxRankScore {
		score = maxRankScore
	}
	return score
}

// SourceName returns the display name for a domain, falling back to the
// title's publisher segment or a tidied domain.
func (m *ReliabilityModel) SourceName(dom, title string) string {
	if name, ok := m.names[dom]; ok {
		return name
	}
	if idx := strings.Index(title, " - "); idx > 0 {
		return title[:idx]
	}

	name := strings.TrimPrefix(dom, "www.")
	if name == "" {
		return dom
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
