package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

func testCollection() *domain.Collection {
	return &domain.Collection{
		Subject:        "Aloe ferox",
		CollectionDate: "2026-08-23",
		TotalSources:   1,
		Sources: []domain.SourceRecord{{
			Text: "A tall single-stemmed aloe.",
			Metadata: domain.SourceMetadata{
				SourceName:  "SANBI PlantZAfrica",
				Reliability: domain.ReliabilityVeryHigh,
				URL:         "https://pza.sanbi.org/aloe-ferox",
				Domain:      "pza.sanbi.org",
			},
		}},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, err := NewArchiveStore(t.TempDir())
	require.NoError(t, err)

	col := testCollection()
	require.NoError(t, store.Save(context.Background(), col))

	back, err := store.Load(context.Background(), "Aloe ferox")
	require.NoError(t, err)

	assert.Equal(t, col, back)
}

func TestSaveWritesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	store, err := NewArchiveStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), testCollection()))

	assert.FileExists(t, filepath.Join(dir, "aloe_ferox_sources.json"))

	bare, err := os.ReadFile(filepath.Join(dir, "aloe_ferox_sources_only.json"))
	require.NoError(t, err)

	var records []domain.SourceRecord
	require.NoError(t, json.Unmarshal(bare, &records))
	assert.Len(t, records, 1)
}

func TestSaveRejectsEmptySubject(t *testing.T) {
	store, err := NewArchiveStore(t.TempDir())
	require.NoError(t, err)

	err = store.Save(context.Background(), &domain.Collection{Subject: "  "})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadMissingCollection(t *testing.T) {
	store, err := NewArchiveStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "Protea cynaroides")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadIsCaseInsensitiveOnSubject(t *testing.T) {
	store, err := NewArchiveStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), testCollection()))

	back, err := store.Load(context.Background(), "ALOE FEROX")
	require.NoError(t, err)

	assert.Equal(t, "Aloe ferox", back.Subject)
}

func TestSubjectSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Aloe ferox", "aloe_ferox"},
		{"  Strelitzia reginae  ", "strelitzia_reginae"},
		{"King Protea (cynaroides)!", "king_protea_cynaroides"},
		{"cape-honeysuckle", "cape-honeysuckle"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, subjectSlug(tt.in), tt.in)
	}
}

func TestNewArchiveStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "research")

	_, err := NewArchiveStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
}
