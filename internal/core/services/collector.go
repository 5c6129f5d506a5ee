package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driving"
	"github.com/veldlabs/florascribe-cli/internal/logger"
)

// Ensure CollectorService implements the interface.
var _ driving.SourceCollector = (*CollectorService)(nil)

// Relevance score contributions during filtering.
const (
	subjectMatchBonus  = 10
	genusMatchBonus    = 5
	titleTermBonus     = 3
	snippetTermBonus   = 1
	topicKeywordBonus  = 1
	regionalTrustBonus = 12
	knownDomainBonus   = 5
	pdfKindBonus       = 5
	pathKeywordBonus   = 3
)

// scoredCandidate pairs a candidate with its relevance score so ranking
// stays a pure function of the scores, not arrival order.
type scoredCandidate struct {
	score     int
	candidate domain.Candidate
}

// CollectorService discovers, extracts, and ranks web sources about a
// subject: tiered search, filter/rank, then a capped extraction loop.
type CollectorService struct {
	searcher    driven.WebSearcher
	extractors  driven.ExtractorRegistry
	reliability *ReliabilityModel
	archive     driven.ArchiveStore
	limiter     *rate.Limiter
	settings    domain.SearchSettings
	now         func() time.Time
}

// NewCollectorService creates a collector. The archive store is optional
// (nil disables artifact persistence).
func NewCollectorService(
	searcher driven.WebSearcher,
	extractors driven.ExtractorRegistry,
	reliability *ReliabilityModel,
	archive driven.ArchiveStore,
	settings domain.SearchSettings,
) *CollectorService {
	delay := settings.Delay
	if delay <= 0 {
		delay = time.Second
	}
	return &CollectorService{
		searcher:    searcher,
		extractors:  extractors,
		reliability: reliability,
		archive:     archive,
		limiter:     rate.NewLimiter(rate.Every(delay), 1),
		settings:    settings,
		now:         time.Now,
	}
}

// CollectSources runs the full collection pipeline for a subject.
// Failures of individual tiers or candidates are logged and skipped;
// only a missing searcher or a cancelled context abort the run.
func (s *CollectorService) CollectSources(ctx context.Context, subject string) ([]domain.SourceRecord, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.searcher == nil {
		return nil, domain.ErrSearchUnavailable
	}

	logger.Section("Source Collection")
	logger.Info("Subject: %q", subject)

	candidates := s.searchTiered(ctx, subject)
	if len(candidates) == 0 {
		logger.Warn("All search tiers came back empty")
		return []domain.SourceRecord{}, nil
	}

	ranked := s.filterAndRank(candidates, subject)
	logger.Info("Filtered %d candidates to %d relevant", len(candidates), len(ranked))

	records := s.extractLoop(ctx, ranked)

	// Final ordering is a pure function of the rank scores.
	sort.SliceStable(records, func(i, j int) bool {
		return RankScore(records[i].Metadata) > RankScore(records[j].Metadata)
	})

	logger.Info("Collected %d sources for %q", len(records), subject)
	return records, nil
}

// SaveCollection persists the two JSON artifacts for a finished run.
func (s *CollectorService) SaveCollection(ctx context.Context, subject string, records []domain.SourceRecord) error {
	if s.archive == nil {
		return nil
	}
	col := &domain.Collection{
		Subject:        subject,
		CollectionDate: s.now().Format("2006-01-02"),
		TotalSources:   len(records),
		Sources:        records,
	}
	if err := s.archive.Save(ctx, col); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

// searchTiered runs the ordered search tiers. A tier only runs while the
// candidate count is below target, and one tier's failure never aborts
// the next.
func (s *CollectorService) searchTiered(ctx context.Context, subject string) []domain.Candidate {
	target := s.settings.MaxSources
	var candidates []domain.Candidate

	for i, tier := range s.settings.Tiers {
		if i > 0 && len(candidates) >= target {
			logger.Debug("Skipping tier %d: %d candidates already found", i+1, len(candidates))
			break
		}
		if err := s.wait(ctx); err != nil {
			return candidates
		}

		query := fmt.Sprintf(tier.Format, subject)
		logger.Debug("Tier %d query: %q", i+1, query)

		results, err := s.searcher.Search(ctx, query, target+10)
		if err != nil {
			logger.Error("Search tier %d failed: %v", i+1, err)
			continue
		}

		for _, c := range results {
			c.Priority = tier.Priority
			candidates = append(candidates, c)
		}
		logger.Debug("Tier %d returned %d candidates", i+1, len(results))
	}

	return candidates
}

// filterAndRank deduplicates by URL, drops denylisted domains and
// unsupported kinds, scores the remainder, and sorts descending. Scores
// of zero or below are dropped.
func (s *CollectorService) filterAndRank(candidates []domain.Candidate, subject string) []domain.Candidate {
	terms := strings.Fields(strings.ToLower(subject))
	genus := ""
	if len(terms) > 0 {
		genus = terms[0]
	}

	seen := make(map[string]bool)
	var scored []scoredCandidate

	for _, c := range candidates {
		if c.URL == "" || seen[c.URL] {
			continue
		}
		if c.Kind == domain.KindUnsupported {
			continue
		}
		if s.skipped(c.URL) {
			continue
		}
		seen[c.URL] = true

		score := s.relevanceScore(c, subject, genus, terms)
		if score <= 0 {
			continue
		}
		scored = append(scored, scoredCandidate{score: score, candidate: c})
	}

	// Stable sort keyed on score then URL keeps ranking deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].candidate.URL < scored[j].candidate.URL
	})

	ranked := make([]domain.Candidate, len(scored))
	for i, sc := range scored {
		ranked[i] = sc.candidate
	}
	return ranked
}

func (s *CollectorService) relevanceScore(c domain.Candidate, subject, genus string, terms []string) int {
	title := strings.ToLower(c.Title)
	snippet := strings.ToLower(c.Snippet)
	lowerSubject := strings.ToLower(subject)
	lowerURL := strings.ToLower(c.URL)

	score := c.Priority.Bonus()

	if c.Kind == domain.KindPDF {
		score += pdfKindBonus
	}
	if strings.Contains(title, lowerSubject) || strings.Contains(snippet, lowerSubject) {
		score += subjectMatchBonus
	}
	if genus != "" && (strings.Contains(title, genus) || strings.Contains(snippet, genus)) {
		score += genusMatchBonus
	}
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleTermBonus
		}
		if strings.Contains(snippet, term) {
			score += snippetTermBonus
		}
	}
	for _, kw := range s.settings.TopicKeywords {
		if strings.Contains(title, kw) || strings.Contains(snippet, kw) {
			score += topicKeywordBonus
		}
	}

	if dom := hostOf(c.URL); dom != "" && s.reliability.Known(dom) {
		if s.reliability.TrustedRegion(dom) {
			score += regionalTrustBonus
		} else {
			score += knownDomainBonus
		}
	}

	for _, kw := range s.settings.PathKeywords {
		if strings.Contains(lowerURL, kw) {
			score += pathKeywordBonus
			break
		}
	}

	return score
}

// extractLoop walks the ranked candidates, enforcing per-domain and
// global caps, the fixed inter-request delay, and the minimum content
// length. Per-candidate errors are logged and skipped.
func (s *CollectorService) extractLoop(ctx context.Context, ranked []domain.Candidate) []domain.SourceRecord {
	var records []domain.SourceRecord
	domainCounts := make(map[string]int)

	for _, c := range ranked {
		if len(records) >= s.settings.MaxSources {
			break
		}

		dom := hostOf(c.URL)
		domainCap := s.settings.DomainCap
		if s.reliability.TrustedRegion(dom) {
			domainCap = s.settings.RegionalDomainCap
		}
		if domainCounts[dom] >= domainCap {
			logger.Debug("Domain cap reached for %s", dom)
			continue
		}

		if err := s.wait(ctx); err != nil {
			break
		}

		logger.Info("Extracting [%s] %s", c.Kind, c.URL)
		extraction, err := s.extractors.Extract(ctx, c.URL, c.Kind)
		if err != nil {
			logger.Debug("Skipping %s: %v", c.URL, err)
			continue
		}
		if len(strings.TrimSpace(extraction.Content)) < s.settings.MinContentLength {
			logger.Debug("Skipping %s: content below minimum length", c.URL)
			continue
		}

		records = append(records, s.buildRecord(c, dom, extraction))
		domainCounts[dom]++
	}

	return records
}

// buildRecord derives the record metadata deterministically from the
// domain and extracted text.
func (s *CollectorService) buildRecord(c domain.Candidate, dom string, ex *driven.Extraction) domain.SourceRecord {
	score := s.reliability.Score(dom, ex.Content)

	return domain.SourceRecord{
		Text: ex.Content,
		Metadata: domain.SourceMetadata{
			SourceName:     s.reliability.SourceName(dom, ex.Title),
			Reliability:    Level(score),
			URL:            c.URL,
			Domain:         dom,
			Title:          ex.Title,
			ExtractionDate: s.now().Format("2006-01-02"),
			ContentType:    domain.ClassifyContent(ex.Content),
			Kind:           c.Kind,
			TrustedRegion:  s.reliability.TrustedRegion(dom),
		},
	}
}

func (s *CollectorService) skipped(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, skip := range s.settings.SkipDomains {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}

// wait applies the fixed inter-request delay. Context cancellation is
// the only way out early.
func (s *CollectorService) wait(ctx context.Context) error {
	return s.limiter.Wait(ctx)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
