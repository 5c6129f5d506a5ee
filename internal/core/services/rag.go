package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driving"
	"github.com/veldlabs/florascribe-cli/internal/logger"
)

// Ensure RAGService implements the interface.
var _ driving.QueryService = (*RAGService)(nil)

// refusalTemplate is returned verbatim (with the question) whenever the
// confidence gate fails in strict mode. Low-confidence context must
// never reach the generator.
const refusalTemplate = "I don't have enough reliable source material to answer %q. " +
	"Collect more sources for this subject and try again."

// RAGService embeds and indexes source records and answers questions
// against them, gated by a confidence check.
type RAGService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	llm      driven.LLMService
	settings domain.RetrievalSettings

	// records is aligned by position with the vectors in the index.
	// Replaced wholesale on every BuildIndex; never mutated in place.
	records []domain.SourceRecord
	built   bool
}

// NewRAGService creates a retrieval service. The LLM is optional: with a
// nil LLM, Query still retrieves and validates but answers with the
// refusal template.
func NewRAGService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	llm driven.LLMService,
	settings domain.RetrievalSettings,
) *RAGService {
	return &RAGService{
		embedder: embedder,
		index:    index,
		llm:      llm,
		settings: settings,
	}
}

// CanGenerate reports whether a language model is configured. Without
// one, Query answers with the refusal template only.
func (s *RAGService) CanGenerate() bool {
	return s.llm != nil
}

// BuildIndex embeds all record texts and rebuilds the vector index.
// Prior state is fully replaced; entry count equals len(records).
func (s *RAGService) BuildIndex(ctx context.Context, records []domain.SourceRecord) error {
	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}

	logger.Info("Embedding %d records with %s", len(records), s.embedder.ModelName())
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed records: %w", err)
	}

	if err := s.index.Build(ctx, vectors); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	s.records = append([]domain.SourceRecord(nil), records...)
	s.built = true
	logger.Info("Index built with %d vectors", s.index.Size())
	return nil
}

// Retrieve returns up to k results sorted by ascending distance, each
// marked confident when its similarity meets the threshold. Calling it
// before BuildIndex is a caller-ordering bug and fails loudly.
func (s *RAGService) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	if !s.built {
		return nil, domain.ErrIndexNotBuilt
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if k <= 0 {
		k = s.settings.TopK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	results := make([]domain.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		if hit.Position < 0 || hit.Position >= len(s.records) {
			continue
		}
		similarity := 1 / (1 + hit.Distance)
		results = append(results, domain.RetrievalResult{
			Record:     s.records[hit.Position],
			Distance:   hit.Distance,
			Similarity: similarity,
			Confident:  similarity >= s.settings.ConfidenceThreshold,
		})
	}
	return results, nil
}

// Query runs the full retrieve → validate → generate pipeline for one
// question. Gate failures produce a refusal result, not an error; model
// failures are surfaced in-band in the answer.
func (s *RAGService) Query(ctx context.Context, question string) (*domain.QueryResult, error) {
	return s.query(ctx, question, s.settings.TopK, driven.GenerateOptions{
		MaxTokens:   s.settings.MaxTokens,
		Temperature: s.settings.Temperature,
	})
}

// QuerySection is Query with per-section retrieval and generation
// bounds, used by the article assembler.
func (s *RAGService) QuerySection(ctx context.Context, question string, spec domain.SectionSpec) (*domain.QueryResult, error) {
	topK := spec.TopK
	if topK <= 0 {
		topK = s.settings.TopK
	}
	opts := driven.GenerateOptions{
		MaxTokens:   spec.MaxTokens,
		Temperature: spec.Temperature,
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = s.settings.MaxTokens
	}
	if opts.Temperature <= 0 {
		opts.Temperature = s.settings.Temperature
	}
	return s.query(ctx, question, topK, opts)
}

func (s *RAGService) query(ctx context.Context, question string, topK int, opts driven.GenerateOptions) (*domain.QueryResult, error) {
	results, err := s.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, err
	}

	ok, reason := s.validate(results)
	if !ok && s.settings.Strict {
		logger.Warn("Confidence gate failed: %s", reason)
		return &domain.QueryResult{
			Question:         question,
			Answer:           fmt.Sprintf(refusalTemplate, question),
			Confidence:       domain.ConfidenceLow,
			ValidationPassed: false,
		}, nil
	}

	if s.llm == nil {
		return &domain.QueryResult{
			Question:         question,
			Answer:           fmt.Sprintf(refusalTemplate, question),
			Confidence:       domain.ConfidenceLow,
			ValidationPassed: false,
		}, nil
	}

	contextText := s.buildContext(results)
	prompt := buildPrompt(question, contextText)

	answer, genErr := s.llm.Generate(ctx, prompt, opts)
	if genErr != nil {
		// Surfaced in-band so the assembler can apply its fallback.
		logger.Error("Generation failed: %v", genErr)
		answer = fmt.Sprintf("Error generating answer: %v", genErr)
	}

	sources := make([]domain.SourceMetadata, 0, len(results))
	for _, r := range results {
		sources = append(sources, r.Record.Metadata)
	}

	confidence := domain.ConfidenceHigh
	if !ok {
		confidence = domain.ConfidenceLow
	}

	return &domain.QueryResult{
		Question:         question,
		Answer:           strings.TrimSpace(answer),
		Sources:          sources,
		Confidence:       confidence,
		ValidationPassed: ok,
	}, nil
}

// validate applies the confidence gate: zero results, too few confident
// results, or a weak mean similarity all fail.
func (s *RAGService) validate(results []domain.RetrievalResult) (bool, string) {
	if len(results) == 0 {
		return false, "no results retrieved"
	}

	confident := 0
	var sum float64
	for _, r := range results {
		if r.Confident {
			confident++
		}
		sum += r.Similarity
	}

	if confident < s.settings.MinConfidentDocs {
		return false, fmt.Sprintf("only %d of %d results confident (need %d)",
			confident, len(results), s.settings.MinConfidentDocs)
	}

	mean := sum / float64(len(results))
	if mean < s.settings.MeanSimilarityThreshold {
		return false, fmt.Sprintf("mean similarity %.2f below threshold %.2f",
			mean, s.settings.MeanSimilarityThreshold)
	}

	return true, ""
}

// buildContext assembles a bounded context string, confident results
// first, each block tagged with its source and reliability.
func (s *RAGService) buildContext(results []domain.RetrievalResult) string {
	ordered := make([]domain.RetrievalResult, 0, len(results))
	for _, r := range results {
		if r.Confident {
			ordered = append(ordered, r)
		}
	}
	for _, r := range results {
		if !r.Confident {
			ordered = append(ordered, r)
		}
	}

	var b strings.Builder
	for i, r := range ordered {
		block := fmt.Sprintf("[Source %d: %s, reliability: %s]\n%s\n\n",
			i+1, r.Record.Metadata.SourceName, r.Record.Metadata.Reliability, r.Record.Text)
		if b.Len()+len(block) > s.settings.MaxContextLength {
			break
		}
		b.WriteString(block)
	}
	return b.String()
}

func buildPrompt(question, context string) string {
	return fmt.Sprintf(`You are a botanical writing assistant.

Context:
%s
Question: %s

Instructions:
- Answer based ONLY on the information in the context above
- If the context does not contain enough information, say so
- Cite which source(s) you used
- Be concise but thorough
- Write in an encyclopedic style

Answer:`, context, question)
}
