package services

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSearchTransport implements driven.SearchTransport for testing.
type mockSearchTransport struct {
	page  *driven.SearchPage
	err   error
	calls []driven.SearchRequest
}

func (m *mockSearchTransport) Search(_ context.Context, req driven.SearchRequest) (*driven.SearchPage, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

// mockContentTransport implements driven.ContentSearchTransport for testing.
type mockContentTransport struct {
	items        []domain.ScoredContentItem
	err          error
	searchCalls  []domain.ContentSearchRequest
	similarCalls []domain.SimilarLinksRequest
}

func (m *mockContentTransport) SearchContents(
	_ context.Context, req domain.ContentSearchRequest,
) ([]domain.ScoredContentItem, error) {
	m.searchCalls = append(m.searchCalls, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockContentTransport) FindSimilar(
	_ context.Context, req domain.SimilarLinksRequest,
) ([]domain.ScoredContentItem, error) {
	m.similarCalls = append(m.similarCalls, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

// mockPrimary implements driving.PrimarySearchService for testing.
type mockPrimary struct {
	result *domain.ResultSet
	err    error
	calls  int
}

func (m *mockPrimary) Search(_ context.Context, _ domain.ParameterSet, _, _ int) (*domain.ResultSet, error) {
	m.calls++
	return m.result, m.err
}

// mockSimilarity implements driving.SimilarityService for testing.
type mockSimilarity struct {
	available bool
	items     []domain.ScoredContentItem
	err       error
	requests  []domain.ContentSearchRequest
}

func (m *mockSimilarity) Available() bool { return m.available }

func (m *mockSimilarity) SearchSimilarContent(
	_ context.Context, req domain.ContentSearchRequest,
) ([]domain.ScoredContentItem, error) {
	m.requests = append(m.requests, req)
	return m.items, m.err
}

func (m *mockSimilarity) FindSimilarLinks(
	_ context.Context, _ domain.SimilarLinksRequest,
) ([]domain.ScoredContentItem, error) {
	return m.items, m.err
}

// --- Helpers ---

func rawItems(t interface{ Fatalf(string, ...any) }, items ...any) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		out = append(out, data)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

var bothKeys = domain.Credentials{GitHubToken: "ghp_test", ExaAPIKey: "exa_test"}
