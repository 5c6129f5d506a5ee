package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsConsistency(t *testing.T) {
	s := DefaultSettings()

	t.Run("search tiers descend in priority", func(t *testing.T) {
		require.Len(t, s.Search.Tiers, 3)
		assert.Equal(t, PriorityHigh, s.Search.Tiers[0].Priority)
		assert.Equal(t, PriorityLow, s.Search.Tiers[len(s.Search.Tiers)-1].Priority)
		for _, tier := range s.Search.Tiers {
			assert.Contains(t, tier.Format, "%s")
		}
	})

	t.Run("regional cap exceeds the general cap", func(t *testing.T) {
		assert.Greater(t, s.Search.RegionalDomainCap, s.Search.DomainCap)
	})

	t.Run("trust scores stay in range", func(t *testing.T) {
		for category, domains := range s.Reliability.Domains {
			for d, score := range domains {
				assert.Greater(t, score, 0.0, "%s/%s", category, d)
				assert.LessOrEqual(t, score, 1.0, "%s/%s", category, d)
			}
		}
	})

	t.Run("regional academic domains are trusted region", func(t *testing.T) {
		for d := range s.Reliability.Domains["regional_academic"] {
			assert.True(t, s.Reliability.TrustedRegion(d), d)
		}
	})

	t.Run("retrieval gate is strict by default", func(t *testing.T) {
		assert.True(t, s.Retrieval.Strict)
		assert.GreaterOrEqual(t, s.Retrieval.TopK, s.Retrieval.MinConfidentDocs)
	})

	t.Run("every section has a prompt and a fallback", func(t *testing.T) {
		require.Len(t, s.Article.Sections, 5)
		seen := map[string]bool{}
		for _, sec := range s.Article.Sections {
			assert.False(t, seen[sec.ID], "duplicate section id %s", sec.ID)
			seen[sec.ID] = true
			assert.NotEmpty(t, sec.Heading, sec.ID)
			assert.Contains(t, sec.Prompt, "%s", sec.ID)
			assert.Contains(t, sec.Fallback, "%s", sec.ID)
			assert.Greater(t, sec.MaxTokens, 0, sec.ID)
		}
	})

	t.Run("heading templates mention the subject", func(t *testing.T) {
		require.NotEmpty(t, s.Article.Headings)
		for _, h := range s.Article.Headings {
			assert.Equal(t, 1, strings.Count(h.Title, "%s"), h.Title)
		}
	})

	t.Run("unsupported extensions are lowercase with dots", func(t *testing.T) {
		for _, ext := range s.Search.UnsupportedExtensions {
			assert.True(t, strings.HasPrefix(ext, "."), ext)
			assert.Equal(t, strings.ToLower(ext), ext)
		}
	})
}
