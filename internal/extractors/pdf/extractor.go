// Package pdf extracts text from PDF documents fetched over HTTP.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/extractors"
	"github.com/veldlabs/florascribe-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const (
	// maxPages bounds how deep into a document extraction goes.
	maxPages = 50

	// minPageChars drops pages that are effectively empty (covers,
	// figures, scanned images with no text layer).
	minPageChars = 50
)

// Extractor handles PDF documents.
type Extractor struct {
	client    *http.Client
	userAgent string
}

// New creates a PDF extractor.
func New(client *http.Client, userAgent string) *Extractor {
	return &Extractor{client: client, userAgent: userAgent}
}

// SupportedKinds returns the document kinds this extractor handles.
func (e *Extractor) SupportedKinds() []domain.DocumentKind {
	return []domain.DocumentKind{domain.KindPDF}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract downloads the document and joins the text of its first pages.
// URLs that do not actually serve a PDF are rejected.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*driven.Extraction, error) {
	body, contentType, err := extractors.Fetch(ctx, e.client, rawURL, e.userAgent)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(contentType, "application/pdf") {
		return nil, fmt.Errorf("%s served %q instead of a pdf: %w",
			rawURL, contentType, domain.ErrUnsupportedKind)
	}

	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	pages := reader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}

	var parts []string
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Debug("Skipping pdf page %d of %s: %v", i, rawURL, err)
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) > minPageChars {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("no extractable text in %s: %w", rawURL, domain.ErrInsufficientContent)
	}

	return &driven.Extraction{
		Title:   extractors.TitleFromURL(rawURL),
		Content: strings.Join(parts, "\n\n"),
	}, nil
}
