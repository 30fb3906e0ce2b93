package api

import (
	"context"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

type mockSearchService struct {
	result  *domain.ResultSet
	err     error
	calls   int
	params  domain.ParameterSet
	page    int
	perPage int
	enrich  bool
}

func (m *mockSearchService) CombinedSearch(
	_ context.Context, p domain.ParameterSet, page, perPage int, enrich bool,
) (*domain.ResultSet, error) {
	m.calls++
	m.params, m.page, m.perPage, m.enrich = p, page, perPage, enrich
	return m.result, m.err
}

type mockSimilarityService struct {
	available bool
	items     []domain.ScoredContentItem
	err       error
	content   domain.ContentSearchRequest
	links     domain.SimilarLinksRequest
}

func (m *mockSimilarityService) Available() bool { return m.available }

func (m *mockSimilarityService) SearchSimilarContent(
	_ context.Context, req domain.ContentSearchRequest,
) ([]domain.ScoredContentItem, error) {
	m.content = req
	return m.items, m.err
}

func (m *mockSimilarityService) FindSimilarLinks(
	_ context.Context, req domain.SimilarLinksRequest,
) ([]domain.ScoredContentItem, error) {
	m.links = req
	return m.items, m.err
}
