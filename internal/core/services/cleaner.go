package services

import (
	"regexp"
	"strings"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

// Pre-compiled patterns for generated-text cleanup.
var (
	citationMarkers  = regexp.MustCompile(`\[\d+\]`)
	sourceMarkers    = regexp.MustCompile(`\[Source[^\]]*\]`)
	markdownHeading  = regexp.MustCompile(`(?m)^#{1,6}\s*(.+)$`)
	markdownBold     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	multipleBlanks   = regexp.MustCompile(`\n{3,}`)
	trailingSentence = regexp.MustCompile(`[.!?]["')\]]?\s*$`)
)

// ContentCleaner normalises generated section text: citation markers and
// source tags are stripped, light markup is promoted to structural
// markup, and incomplete edge sentences are dropped.
type ContentCleaner struct {
	settings domain.CleaningSettings
}

// NewContentCleaner creates a cleaner with the given settings.
func NewContentCleaner(settings domain.CleaningSettings) *ContentCleaner {
	return &ContentCleaner{settings: settings}
}

// Clean applies the configured cleanup steps to generated text.
func (c *ContentCleaner) Clean(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if c.settings.RemoveCitations {
		text = citationMarkers.ReplaceAllString(text, "")
	}
	if c.settings.RemoveSourceMarkers {
		text = sourceMarkers.ReplaceAllString(text, "")
	}

	// Promote light markup the model tends to emit.
	text = markdownHeading.ReplaceAllString(text, "<h3>$1</h3>")
	text = markdownBold.ReplaceAllString(text, "<strong>$1</strong>")

	if c.settings.RemoveIncomplete {
		text = c.dropIncompleteEdges(text)
	}

	text = c.dropShortParagraphs(text)
	text = multipleBlanks.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// dropIncompleteEdges removes a leading fragment that does not start a
// sentence and a trailing fragment that never ends one.
func (c *ContentCleaner) dropIncompleteEdges(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	// Leading fragment: starts lowercase and is cut off from a prior
	// sentence — drop up to the first sentence boundary.
	first := trimmed[0]
	if first >= 'a' && first <= 'z' {
		if idx := strings.IndexAny(trimmed, ".!?"); idx >= 0 && idx+1 < len(trimmed) {
			trimmed = strings.TrimSpace(trimmed[idx+1:])
		}
	}

	// Trailing fragment: no terminal punctuation — drop back to the
	// last completed sentence, keeping structural markup intact.
	if trimmed != "" && !trailingSentence.MatchString(trimmed) && !strings.HasSuffix(trimmed, ">") {
		if idx := strings.LastIndexAny(trimmed, ".!?"); idx > 0 {
			trimmed = strings.TrimSpace(trimmed[:idx+1])
		}
	}

	return trimmed
}

// dropShortParagraphs removes paragraphs below the minimum length,
// except structural markup lines.
func (c *ContentCleaner) dropShortParagraphs(text string) string {
	if c.settings.MinParagraphLength <= 0 {
		return text
	}

	paragraphs := strings.Split(text, "\n\n")
	kept := paragraphs[:0]
	for _, p := range paragraphs {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "<h3>") || len(trimmed) >= c.settings.MinParagraphLength {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n\n")
}
