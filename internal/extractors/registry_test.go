package extractors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

type mockExtractor struct {
	kinds    []domain.DocumentKind
	priority int
	result   *driven.Extraction
	err      error
	calls    int
}

func (m *mockExtractor) SupportedKinds() []domain.DocumentKind { return m.kinds }
func (m *mockExtractor) Priority() int                         { return m.priority }

func (m *mockExtractor) Extract(_ context.Context, _ string) (*driven.Extraction, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// --- Tests ---

func TestRegistryExtractUnknownKind(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Extract(context.Background(), "https://example.org", domain.KindPDF)

	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
}

func TestRegistryDispatchesByPriority(t *testing.T) {
	low := &mockExtractor{
		kinds:    []domain.DocumentKind{domain.KindHTML},
		priority: 5,
		result:   &driven.Extraction{Content: "from low"},
	}
	high := &mockExtractor{
		kinds:    []domain.DocumentKind{domain.KindHTML},
		priority: 50,
		result:   &driven.Extraction{Content: "from high"},
	}

	registry := NewRegistry()
	registry.Register(low)
	registry.Register(high)

	result, err := registry.Extract(context.Background(), "https://example.org", domain.KindHTML)
	require.NoError(t, err)

	assert.Equal(t, "from high", result.Content)
	assert.Zero(t, low.calls, "lower-priority extractor must not run when the first succeeds")
}

func TestRegistryFallsThroughOnFailure(t *testing.T) {
	failing := &mockExtractor{
		kinds:    []domain.DocumentKind{domain.KindHTML},
		priority: 50,
		err:      domain.ErrInsufficientContent,
	}
	fallback := &mockExtractor{
		kinds:    []domain.DocumentKind{domain.KindHTML},
		priority: 5,
		result:   &driven.Extraction{Content: "from fallback"},
	}

	registry := NewRegistry()
	registry.Register(failing)
	registry.Register(fallback)

	result, err := registry.Extract(context.Background(), "https://example.org", domain.KindHTML)
	require.NoError(t, err)

	assert.Equal(t, "from fallback", result.Content)
	assert.Equal(t, 1, failing.calls)
}

func TestRegistryReturnsLastError(t *testing.T) {
	wantErr := errors.New("fetch timed out")
	registry := NewRegistry()
	registry.Register(&mockExtractor{
		kinds:    []domain.DocumentKind{domain.KindHTML},
		priority: 50,
		err:      wantErr,
	})

	_, err := registry.Extract(context.Background(), "https://example.org", domain.KindHTML)

	assert.ErrorIs(t, err, wantErr)
}

func TestRegistrySupportedKinds(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockExtractor{kinds: []domain.DocumentKind{domain.KindText, domain.KindHTML}})

	assert.Equal(t,
		[]domain.DocumentKind{domain.KindHTML, domain.KindText},
		registry.SupportedKinds())
}

func TestTitleFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://pza.sanbi.org/aloe-ferox", "Aloe Ferox"},
		{"https://example.org/plants/cape_honeysuckle/", "Cape Honeysuckle"},
		{"https://example.org/docs/protea-guide.pdf", "Protea Guide"},
		{"https://example.org/aloe?ref=home", "Aloe"},
		{"https://example.org/---", "Untitled"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleFromURL(tt.url), tt.url)
	}
}
