// Package plaintext extracts content from plain text files, handling
// the legacy single-byte encodings older botanical archives still use.
package plaintext

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/extractors"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// minChars is the shortest text file worth keeping.
const minChars = 50

// Extractor handles plain text documents.
type Extractor struct {
	client    *http.Client
	userAgent string
}

// New creates a plain text extractor.
func New(client *http.Client, userAgent string) *Extractor {
	return &Extractor{client: client, userAgent: userAgent}
}

// SupportedKinds returns the document kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.DocumentKind {
	return []domain.DocumentKind{domain.KindText}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract fetches the file and decodes it, trying UTF-8 first and then
// the common single-byte encodings.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*driven.Extraction, error) {
	body, _, err := extractors.Fetch(ctx, e.client, rawURL, e.userAgent)
	if err != nil {
		return nil, err
	}

	text := decode(body)
	if len(text) < minChars {
		return nil, fmt.Errorf("text file %s too short: %w", rawURL, domain.ErrInsufficientContent)
	}

	return &driven.Extraction{
		Title:   extractors.TitleFromURL(rawURL),
		Content: text,
	}, nil
}

func decode(body []byte) string {
	if utf8.Valid(body) {
		return strings.TrimSpace(string(body))
	}
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := cm.NewDecoder().Bytes(body)
		if err == nil {
			return strings.TrimSpace(string(decoded))
		}
	}
	return ""
}
