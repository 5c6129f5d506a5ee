package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
)

func TestReliabilityScore(t *testing.T) {
	model := testReliabilityModel()

	t.Run("known domain", func(t *testing.T) {
		assert.InDelta(t, 0.80, model.Score("www.gardenia.net", "short text"), 1e-9)
	})

	t.Run("unknown domain scores half", func(t *testing.T) {
		assert.InDelta(t, 0.5, model.Score("blog.example.org", "short text"), 1e-9)
	})

	t.Run("taxonomy vocabulary boosts", func(t *testing.T) {
		score := model.Score("www.gardenia.net", "The scientific name is Aloe ferox.")
		assert.InDelta(t, 0.85, score, 1e-9)
	})

	t.Run("long text boosts", func(t *testing.T) {
		long := strings.Repeat("aloe ", 300)
		assert.InDelta(t, 0.83, model.Score("www.gardenia.net", long), 1e-9)
	})

	t.Run("capped at one", func(t *testing.T) {
		long := "botanical taxonomy " + strings.Repeat("aloe ", 300)
		assert.InDelta(t, 1.0, model.Score("pza.sanbi.org", long), 1e-9)
	})
}

func TestReliabilityLevelThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.ReliabilityLevel
	}{
		{1.0, domain.ReliabilityVeryHigh},
		{0.95, domain.ReliabilityVeryHigh},
		{0.94, domain.ReliabilityHigh},
		{0.85, domain.ReliabilityHigh},
		{0.84, domain.ReliabilityMedium},
		{0.75, domain.ReliabilityMedium},
		{0.74, domain.ReliabilityLow},
		{0.0, domain.ReliabilityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.score), "score %.2f", tt.score)
	}
}

func TestLevelIsMonotonic(t *testing.T) {
	order := map[domain.ReliabilityLevel]int{
		domain.ReliabilityLow:      0,
		domain.ReliabilityMedium:   1,
		domain.ReliabilityHigh:     2,
		domain.ReliabilityVeryHigh: 3,
	}
	prev := domain.ReliabilityLow
	for score := 0.0; score <= 1.0; score += 0.01 {
		level := Level(score)
		assert.GreaterOrEqual(t, order[level], order[prev],
			"level dropped at score %.2f", score)
		prev = level
	}
}

func TestRankScore(t *testing.T) {
	t.Run("base plus bonuses", func(t *testing.T) {
		meta := domain.SourceMetadata{
			Reliability:   domain.ReliabilityHigh,
			ContentType:   domain.ContentCultivationGuide,
			Kind:          domain.KindPDF,
			TrustedRegion: false,
		}
		// 0.8 base + 0.1 content + 0.05 pdf
		assert.InDelta(t, 0.95, RankScore(meta), 1e-9)
	})

	t.Run("capped at max", func(t *testing.T) {
		meta := domain.SourceMetadata{
			Reliability:   domain.ReliabilityVeryHigh,
			ContentType:   domain.ContentBotanicalReference,
			Kind:          domain.KindPDF,
			TrustedRegion: true,
		}
		// 1.0 + 0.25 + 0.2 + 0.05 exceeds the cap
		assert.InDelta(t, 1.5, RankScore(meta), 1e-9)
	})

	t.Run("regional beats equal non-regional", func(t *testing.T) {
		regional := domain.SourceMetadata{Reliability: domain.ReliabilityMedium, TrustedRegion: true}
		other := domain.SourceMetadata{Reliability: domain.ReliabilityMedium}
		assert.Greater(t, RankScore(regional), RankScore(other))
	})
}

func TestSourceName(t *testing.T) {
	model := testReliabilityModel()

	t.Run("known domain uses display name", func(t *testing.T) {
		assert.Equal(t, "SANBI PlantZAfrica", model.SourceName("pza.sanbi.org", "anything"))
	})

	t.Run("falls back to title publisher segment", func(t *testing.T) {
		assert.Equal(t, "Aloe ferox", model.SourceName("unknown.org", "Aloe ferox - Plant Encyclopedia"))
	})

	t.Run("falls back to tidied domain", func(t *testing.T) {
		assert.Equal(t, "Fynbos.co.za", model.SourceName("www.fynbos.co.za", "no separator here"))
	})
}
