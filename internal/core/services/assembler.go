package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driving"
	"github.com/veldlabs/florascribe-cli/internal/logger"
)

// Ensure AssemblerService implements the interface.
var _ driving.ArticleGenerator = (*AssemblerService)(nil)

// AssemblerService produces the final multi-section article. Each
// section is one retrieval-augmented query; sections that cannot be
// generated fall back to deterministic templates, so the assembler never
// produces an empty document.
type AssemblerService struct {
	rag      *RAGService
	images   driven.ImageProvider
	cleaner  *ContentCleaner
	settings domain.ArticleSettings
	now      func() time.Time
	rng      *rand.Rand
}

// NewAssemblerService creates an assembler. Both the RAG service and the
// image provider are optional; with neither, the article is entirely
// template-driven.
func NewAssemblerService(
	rag *RAGService,
	images driven.ImageProvider,
	settings domain.ArticleSettings,
) *AssemblerService {
	return &AssemblerService{
		rag:      rag,
		images:   images,
		cleaner:  NewContentCleaner(settings.Cleaning),
		settings: settings,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateArticle builds the index from the records (when a RAG service
// and records are available), writes every configured section, and
// renders the document.
func (s *AssemblerService) GenerateArticle(ctx context.Context, subject string, records []domain.SourceRecord) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", domain.ErrInvalidInput
	}

	logger.Section("Article Assembly")

	useRAG := s.rag != nil && len(records) > 0
	if useRAG {
		if err := s.rag.BuildIndex(ctx, records); err != nil {
			logger.Error("Index build failed, falling back to templates: %v", err)
			useRAG = false
		}
	}

	var sectionImages []domain.SectionImage
	if s.settings.FetchImages && s.images != nil {
		sectionImages = s.fetchImages(ctx, subject)
	}

	sections := make([]domain.Section, 0, len(s.settings.Sections))
	for i, spec := range s.settings.Sections {
		body := s.sectionBody(ctx, spec, subject, useRAG)

		section := domain.Section{Heading: spec.Heading, Body: body}
		if img := s.imageFor(sectionImages, i, subject, spec.Heading); img != nil {
			section.Image = img
		}
		sections = append(sections, section)
	}

	article := domain.Article{
		FrontMatter: s.frontMatter(subject),
		Sections:    sections,
	}
	return article.Render(), nil
}

// sectionBody generates one section via the RAG pipeline, falling back
// to the section template on refusal, in-band errors, or empty output.
func (s *AssemblerService) sectionBody(ctx context.Context, spec domain.SectionSpec, subject string, useRAG bool) string {
	if useRAG {
		question := fmt.Sprintf(spec.Prompt, subject)
		result, err := s.rag.QuerySection(ctx, question, spec)
		switch {
		case err != nil:
			logger.Warn("Section %q query failed: %v", spec.ID, err)
		case !result.ValidationPassed:
			logger.Debug("Section %q refused by confidence gate", spec.ID)
		case strings.HasPrefix(result.Answer, "Error generating answer"):
			logger.Debug("Section %q hit a generation error", spec.ID)
		default:
			if cleaned := s.cleaner.Clean(result.Answer); cleaned != "" {
				return wrapParagraphs(cleaned)
			}
		}
	}

	return wrapParagraphs(fillTemplate(spec.Fallback, subject))
}

// fetchImages retrieves one image per section in a single lookup. Any
// failure yields nil and the stable fallback image takes over.
func (s *AssemblerService) fetchImages(ctx context.Context, subject string) []domain.SectionImage {
	images, err := s.images.Search(ctx, subject, len(s.settings.Sections))
	if err != nil {
		logger.Warn("Image search failed: %v", err)
		return nil
	}
	return images
}

// imageFor picks the i-th fetched image, padding with the first when the
// provider returned fewer than one per section, and falling back to the
// configured default when none were fetched at all.
func (s *AssemblerService) imageFor(images []domain.SectionImage, i int, subject, heading string) *domain.SectionImage {
	if !s.settings.FetchImages {
		return nil
	}

	var img domain.SectionImage
	switch {
	case i < len(images):
		img = images[i]
	case len(images) > 0:
		img = images[0]
	case s.settings.FallbackImage != "":
		img = domain.SectionImage{URL: s.settings.FallbackImage}
	default:
		return nil
	}

	img.Alt = fmt.Sprintf("%s - %s", subject, heading)
	return &img
}

func (s *AssemblerService) frontMatter(subject string) domain.FrontMatter {
	heading := domain.HeadingTemplate{Title: "%s", Subtitle: ""}
	if len(s.settings.Headings) > 0 {
		heading = s.settings.Headings[s.rng.Intn(len(s.settings.Headings))]
	}

	return domain.FrontMatter{
		Layout:     s.settings.Layout,
		Title:      fillTemplate(heading.Title, subject),
		Subtitle:   heading.Subtitle,
		Date:       s.now().Format("2006-01-02 15:04:05"),
		Background: s.settings.FallbackImage,
		Categories: s.settings.Categories,
		Tags:       subjectTags(subject),
	}
}

// subjectTags derives the tag list from the subject name.
func subjectTags(subject string) []string {
	slug := strings.ToLower(strings.ReplaceAll(subject, " ", "-"))
	return []string{slug, "indigenous-plants", "south-african-flora", "plant-guide"}
}

// fillTemplate substitutes the subject into a %s template, tolerating
// templates that mention the subject more than once or not at all.
func fillTemplate(tmpl, subject string) string {
	n := strings.Count(tmpl, "%s")
	if n == 0 {
		return tmpl
	}
	args := make([]any, n)
	for i := range args {
		args[i] = subject
	}
	return fmt.Sprintf(tmpl, args...)
}

// wrapParagraphs wraps bare text blocks in paragraph tags, leaving
// blocks that already carry structural markup untouched.
func wrapParagraphs(text string) string {
	blocks := strings.Split(text, "\n\n")
	for i, block := range blocks {
		trimmed := strings.TrimSpace(block)
		if trimmed == "" || strings.HasPrefix(trimmed, "<") {
			blocks[i] = trimmed
			continue
		}
		blocks[i] = "<p>" + trimmed + "</p>"
	}
	return strings.Join(blocks, "\n")
}
