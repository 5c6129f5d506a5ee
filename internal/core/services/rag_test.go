package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldlabs/florascribe-cli/internal/adapters/driven/vector/flat"
	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

type mockEmbeddingService struct {
	dims     int
	embedErr error
	calls    int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	dims := m.dims
	if dims == 0 {
		dims = 4
	}
	vec := make([]float32, dims)
	for i := range vec {
		vec[i] = 0.1
	}
	return vec, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		vec, err := m.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims == 0 {
		return 4
	}
	return m.dims
}

func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// wordCountEmbedder derives a vector from the text itself, so equal
// inputs always embed identically.
type wordCountEmbedder struct{}

func (wordCountEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	words := strings.Fields(text)
	return []float32{
		float32(len(words)),
		float32(len(text) % 11),
		float32(len(text) % 7),
	}, nil
}

func (e wordCountEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (wordCountEmbedder) Dimensions() int              { return 3 }
func (wordCountEmbedder) ModelName() string            { return "word-count" }
func (wordCountEmbedder) Ping(_ context.Context) error { return nil }
func (wordCountEmbedder) Close() error                 { return nil }

type mockVectorIndex struct {
	hits      []driven.VectorHit
	buildErr  error
	searchErr error
	stored    [][]float32
}

func (m *mockVectorIndex) Build(_ context.Context, vectors [][]float32) error {
	if m.buildErr != nil {
		return m.buildErr
	}
	m.stored = vectors
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if len(m.hits) > k {
		return m.hits[:k], nil
	}
	return m.hits, nil
}

func (m *mockVectorIndex) Size() int    { return len(m.stored) }
func (m *mockVectorIndex) Close() error { return nil }

type mockLLMService struct {
	response   string
	genErr     error
	calls      int
	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastOpts = opts
	if m.genErr != nil {
		return "", m.genErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string            { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

// --- Test helpers ---

// distanceFor converts a wanted similarity back to the L2 distance the
// index would have to report, given similarity = 1/(1+distance).
func distanceFor(similarity float64) float64 {
	return 1/similarity - 1
}

func testRecords(n int) []domain.SourceRecord {
	records := make([]domain.SourceRecord, n)
	for i := range records {
		records[i] = domain.SourceRecord{
			Text: "Aloe ferox is a tall single-stemmed aloe.",
			Metadata: domain.SourceMetadata{
				SourceName:  "SANBI PlantZAfrica",
				Reliability: domain.ReliabilityVeryHigh,
				Domain:      "pza.sanbi.org",
			},
		}
	}
	return records
}

func defaultRetrievalSettings() domain.RetrievalSettings {
	return domain.RetrievalSettings{
		TopK:                    5,
		ConfidenceThreshold:     0.6,
		MinConfidentDocs:        2,
		MeanSimilarityThreshold: 0.5,
		MaxContextLength:        2000,
		MaxTokens:               500,
		Temperature:             0.3,
		Strict:                  true,
	}
}

func newTestRAG(t *testing.T, index *mockVectorIndex, llm driven.LLMService, records []domain.SourceRecord) *RAGService {
	t.Helper()
	svc := NewRAGService(&mockEmbeddingService{}, index, llm, defaultRetrievalSettings())
	require.NoError(t, svc.BuildIndex(context.Background(), records))
	return svc
}

// --- Tests ---

func TestRetrieveBeforeBuildFails(t *testing.T) {
	svc := NewRAGService(&mockEmbeddingService{}, &mockVectorIndex{}, nil, defaultRetrievalSettings())

	_, err := svc.Retrieve(context.Background(), "how tall does it grow", 3)

	assert.ErrorIs(t, err, domain.ErrIndexNotBuilt)
}

func TestBuildIndexWithoutEmbedderFails(t *testing.T) {
	svc := NewRAGService(nil, &mockVectorIndex{}, nil, defaultRetrievalSettings())

	err := svc.BuildIndex(context.Background(), testRecords(2))

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestBuildIndexReplacesPriorState(t *testing.T) {
	index := &mockVectorIndex{}
	svc := newTestRAG(t, index, nil, testRecords(3))
	assert.Equal(t, 3, index.Size())

	require.NoError(t, svc.BuildIndex(context.Background(), testRecords(1)))

	assert.Equal(t, 1, index.Size())
}

func TestBuildIndexTwiceRetrievesIdentically(t *testing.T) {
	records := testRecords(3)
	records[0].Text = "Aloe ferox flowers between May and August."
	records[1].Text = "The bitter aloe reaches three metres on a single stem."
	records[2].Text = "Sap is tapped for aloin."

	svc := NewRAGService(wordCountEmbedder{}, flat.New(), nil, defaultRetrievalSettings())

	require.NoError(t, svc.BuildIndex(context.Background(), records))
	first, err := svc.Retrieve(context.Background(), "how tall does it grow", 3)
	require.NoError(t, err)
	require.Len(t, first, 3)

	require.NoError(t, svc.BuildIndex(context.Background(), records))
	second, err := svc.Retrieve(context.Background(), "how tall does it grow", 3)
	require.NoError(t, err)

	assert.Equal(t, first, second, "rebuilding from the same records must not change ordering or similarity")
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i].Distance, first[i-1].Distance)
	}
}

func TestRetrieveConvertsDistanceToSimilarity(t *testing.T) {
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: 0},
		{Position: 1, Distance: 1},
	}}
	svc := newTestRAG(t, index, nil, testRecords(2))

	results, err := svc.Retrieve(context.Background(), "habitat", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
	assert.True(t, results[0].Confident)
	assert.InDelta(t, 0.5, results[1].Similarity, 1e-9)
	assert.False(t, results[1].Confident, "similarity 0.5 is below the 0.6 threshold")
}

func TestRetrieveDropsOutOfRangePositions(t *testing.T) {
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: 0.1},
		{Position: 7, Distance: 0.2},
	}}
	svc := newTestRAG(t, index, nil, testRecords(1))

	results, err := svc.Retrieve(context.Background(), "habitat", 5)
	require.NoError(t, err)

	assert.Len(t, results, 1)
}

func TestQueryRefusesWhenTooFewConfidentDocs(t *testing.T) {
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: distanceFor(0.9)},
		{Position: 1, Distance: distanceFor(0.3)},
	}}
	llm := &mockLLMService{response: "should never be used"}
	svc := newTestRAG(t, index, llm, testRecords(2))

	result, err := svc.Query(context.Background(), "does it tolerate frost")
	require.NoError(t, err)

	assert.False(t, result.ValidationPassed)
	assert.Equal(t, domain.ConfidenceLow, result.Confidence)
	assert.Contains(t, result.Answer, "don't have enough reliable source material")
	assert.Zero(t, llm.calls, "strict refusal must not invoke the model")
}

func TestQueryRefusesOnWeakMeanSimilarity(t *testing.T) {
	// Both confident, but the mean drags below the threshold once a
	// third weak result joins.
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: distanceFor(0.65)},
		{Position: 1, Distance: distanceFor(0.65)},
		{Position: 2, Distance: distanceFor(0.1)},
	}}
	llm := &mockLLMService{response: "should never be used"}
	svc := newTestRAG(t, index, llm, testRecords(3))

	result, err := svc.Query(context.Background(), "flowering season")
	require.NoError(t, err)

	assert.False(t, result.ValidationPassed)
	assert.Zero(t, llm.calls)
}

func TestQueryAnswersWhenGatePasses(t *testing.T) {
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: distanceFor(0.8)},
		{Position: 1, Distance: distanceFor(0.7)},
	}}
	llm := &mockLLMService{response: "It flowers from May to August."}
	svc := newTestRAG(t, index, llm, testRecords(2))

	result, err := svc.Query(context.Background(), "when does it flower")
	require.NoError(t, err)

	assert.True(t, result.ValidationPassed)
	assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
	assert.Equal(t, "It flowers from May to August.", result.Answer)
	assert.Len(t, result.Sources, 2)
	assert.Contains(t, llm.lastPrompt, "[Source 1: SANBI PlantZAfrica, reliability: very_high]")
	assert.Contains(t, llm.lastPrompt, "when does it flower")
}

func TestQueryWithoutLLMRefuses(t *testing.T) {
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: distanceFor(0.8)},
		{Position: 1, Distance: distanceFor(0.7)},
	}}
	svc := newTestRAG(t, index, nil, testRecords(2))

	result, err := svc.Query(context.Background(), "soil preference")
	require.NoError(t, err)

	assert.False(t, result.ValidationPassed)
	assert.Contains(t, result.Answer, "don't have enough reliable source material")
}

func TestQuerySurfacesGenerationErrorsInBand(t *testing.T) {
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: distanceFor(0.8)},
		{Position: 1, Distance: distanceFor(0.7)},
	}}
	llm := &mockLLMService{genErr: errors.New("connection refused")}
	svc := newTestRAG(t, index, llm, testRecords(2))

	result, err := svc.Query(context.Background(), "propagation")
	require.NoError(t, err)

	assert.True(t, result.ValidationPassed)
	assert.Contains(t, result.Answer, "Error generating answer")
}

func TestQuerySectionUsesSpecBounds(t *testing.T) {
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: distanceFor(0.8)},
		{Position: 1, Distance: distanceFor(0.7)},
	}}
	llm := &mockLLMService{response: "A description."}
	svc := newTestRAG(t, index, llm, testRecords(2))

	spec := domain.SectionSpec{
		ID:          "description",
		TopK:        3,
		MaxTokens:   123,
		Temperature: 0.9,
	}
	_, err := svc.QuerySection(context.Background(), "describe the plant", spec)
	require.NoError(t, err)

	assert.Equal(t, 123, llm.lastOpts.MaxTokens)
	assert.InDelta(t, 0.9, llm.lastOpts.Temperature, 1e-9)
}

func TestQuerySectionFallsBackToDefaults(t *testing.T) {
	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: distanceFor(0.8)},
		{Position: 1, Distance: distanceFor(0.7)},
	}}
	llm := &mockLLMService{response: "A description."}
	svc := newTestRAG(t, index, llm, testRecords(2))

	_, err := svc.QuerySection(context.Background(), "describe the plant", domain.SectionSpec{ID: "bare"})
	require.NoError(t, err)

	assert.Equal(t, 500, llm.lastOpts.MaxTokens)
	assert.InDelta(t, 0.3, llm.lastOpts.Temperature, 1e-9)
}

func TestBuildContextRespectsLengthBound(t *testing.T) {
	long := make([]byte, 1500)
	for i := range long {
		long[i] = 'a'
	}
	records := testRecords(2)
	records[0].Text = string(long)
	records[1].Text = string(long)

	index := &mockVectorIndex{hits: []driven.VectorHit{
		{Position: 0, Distance: distanceFor(0.8)},
		{Position: 1, Distance: distanceFor(0.7)},
	}}
	llm := &mockLLMService{response: "ok"}
	svc := newTestRAG(t, index, llm, records)

	_, err := svc.Query(context.Background(), "anything")
	require.NoError(t, err)

	// Two 1500-byte blocks cannot both fit a 2000-char context.
	assert.Contains(t, llm.lastPrompt, "[Source 1:")
	assert.NotContains(t, llm.lastPrompt, "[Source 2:")
}
