package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result  *domain.ResultSet
	err     error
	params  domain.ParameterSet
	page    int
	perPage int
	enrich  bool
}

func (m *mockSearchService) CombinedSearch(
	_ context.Context,
	p domain.ParameterSet,
	page, perPage int,
	enrich bool,
) (*domain.ResultSet, error) {
	m.params, m.page, m.perPage, m.enrich = p, page, perPage, enrich
	return m.result, m.err
}

// mockSimilarityService is a mock implementation of driving.SimilarityService.
type mockSimilarityService struct {
	available bool
	items     []domain.ScoredContentItem
	err       error
	content   domain.ContentSearchRequest
	links     domain.SimilarLinksRequest
}

func (m *mockSimilarityService) Available() bool { return m.available }

func (m *mockSimilarityService) SearchSimilarContent(
	_ context.Context,
	req domain.ContentSearchRequest,
) ([]domain.ScoredContentItem, error) {
	m.content = req
	return m.items, m.err
}

func (m *mockSimilarityService) FindSimilarLinks(
	_ context.Context,
	req domain.SimilarLinksRequest,
) ([]domain.ScoredContentItem, error) {
	m.links = req
	return m.items, m.err
}

func repoSet(repos ...domain.Repository) *domain.ResultSet {
	items := make([]domain.Entity, len(repos))
	for i, r := range repos {
		items[i] = r
	}
	rs, err := domain.NewResultSet("q", domain.KindRepositories, 25, 1, 10, items)
	if err != nil {
		panic(err)
	}
	return rs
}
