package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-hub/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService fuses GitHub results with Exa relevance signals.
type SearchService struct {
	primary    driving.PrimarySearchService
	similarity driving.SimilarityService
}

// NewSearchService creates a new search service.
// The similarity parameter is optional (can be nil); without it every
// search returns unenriched results.
func NewSearchService(primary driving.PrimarySearchService, similarity driving.SimilarityService) *SearchService {
	return &SearchService{primary: primary, similarity: similarity}
}

// CombinedSearch runs the primary search and, when requested and possible,
// one enrichment pass. Only primary failures are returned.
func (s *SearchService) CombinedSearch(
	ctx context.Context, p domain.ParameterSet, page, perPage int, enrich bool,
) (*domain.ResultSet, error) {
	id := uuid.NewString()
	logger.Section("Search Execution")
	logger.Debug("[%s] Query: %q, kind: %s, enrich: %t", id, p.Query, p.Kind, enrich)

	rs, err := s.primary.Search(ctx, p, page, perPage)
	if err != nil {
		return nil, err
	}

	if !enrich {
		return rs, nil
	}
	if s.similarity == nil || !s.similarity.Available() {
		logger.Debug("[%s] Semantic search unavailable, skipping enrichment", id)
		return rs, nil
	}

	items, err := s.similarity.SearchSimilarContent(ctx, domain.ContentSearchRequest{
		Prompt:      p.Query,
		NumResults:  rs.PerPage,
		Mode:        domain.SearchModeNeural,
		AutoPrompt:  true,
		IncludeText: true,
	})
	if err != nil {
		logger.Warn("[%s] %v", id, fmt.Errorf("%w: %w", domain.ErrEnrichmentFailed, err))
		return rs, nil
	}
	if len(items) == 0 {
		logger.Debug("[%s] No semantic results, returning primary results", id)
		return rs, nil
	}

	out, matched := Enrich(rs, items)
	logger.Debug("[%s] Enriched %d of %d results", id, matched, rs.Len())
	return out, nil
}

// Enrich attaches the first matching content item to each entity of rs.
// It returns rs itself when nothing matched, otherwise a new result set.
func Enrich(rs *domain.ResultSet, items []domain.ScoredContentItem) (*domain.ResultSet, int) {
	updates := make(map[int]domain.Enrichment)
	for i, e := range rs.Items() {
		for _, it := range items {
			if !matches(e, it) {
				continue
			}
			updates[i] = enrichmentFrom(it)
			break
		}
	}
	if len(updates) == 0 {
		return rs, 0
	}
	return rs.WithEnrichments(updates), len(updates)
}

// matches reports whether it describes e. Repositories also match when
// their full name appears anywhere in the item URL, so an empty full name
// matches every item.
func matches(e domain.Entity, it domain.ScoredContentItem) bool {
	if it.URL == e.Link() {
		return true
	}
	repo, ok := e.(domain.Repository)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(it.URL), strings.ToLower(repo.FullName))
}

func enrichmentFrom(it domain.ScoredContentItem) domain.Enrichment {
	score := it.Score
	similarity := 0.0
	if it.Similarity != nil {
		similarity = *it.Similarity
	}
	en := domain.Enrichment{
		RelevanceScore:     &score,
		SemanticSimilarity: &similarity,
	}
	if it.Text != "" {
		text := it.Text
		en.EnrichedContent = &text
	}
	return en
}
