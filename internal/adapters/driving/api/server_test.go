package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

func newTestServer(t *testing.T, search *mockSearchService, sim *mockSimilarityService) http.Handler {
	t.Helper()
	ports := &Ports{Search: search}
	if sim != nil {
		ports.Similarity = sim
	}
	s, err := NewServer(ports)
	require.NoError(t, err)
	return s.Handler()
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestNewServer_RequiresSearch(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, &mockSearchService{}, &mockSimilarityService{available: true})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "ok", "semantic": true}, decodeBody(t, rec))
}

func TestSearch_MapsBodyOntoParameters(t *testing.T) {
	rs, err := domain.NewResultSet("q", domain.KindRepositories, 42, 2, 5, []domain.Entity{
		domain.Repository{FullName: "a/b", URL: "https://github.com/a/b"},
	})
	require.NoError(t, err)
	search := &mockSearchService{result: rs}
	h := newTestServer(t, search, nil)

	rec := post(t, h, "/api/search", `{
		"query": "web server",
		"language": "go",
		"stars": [100, null],
		"forks": ["x", 5],
		"user": "octo",
		"is_public": false,
		"topics": "http, ,server",
		"exclude_topics": ["deprecated"],
		"page": 2,
		"per_page": 5,
		"enrich": true
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := search.params
	assert.Equal(t, "web server", p.Query)
	assert.Equal(t, domain.KindRepositories, p.Kind)
	assert.Equal(t, "go", p.Language)
	require.NotNil(t, p.Stars.Min)
	assert.Equal(t, 100, *p.Stars.Min)
	assert.Nil(t, p.Stars.Max)
	assert.True(t, p.Forks.IsZero())
	assert.Equal(t, "octo", p.Owner)
	assert.False(t, p.PublicOnly)
	assert.Equal(t, []string{"http", "server"}, p.Topics)
	assert.Equal(t, []string{"deprecated"}, p.ExcludedTopics)
	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, 2, search.page)
	assert.Equal(t, 5, search.perPage)
	assert.True(t, search.enrich)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(42), body["total_count"])
	assert.Equal(t, true, body["has_next_page"])
	assert.Len(t, body["items"], 1)
}

func TestSearch_Defaults(t *testing.T) {
	rs, err := domain.NewResultSet("q", domain.KindCode, 0, 1, 10, nil)
	require.NoError(t, err)
	search := &mockSearchService{result: rs}
	h := newTestServer(t, search, nil)

	rec := post(t, h, "/api/search", `{"query": "x", "type": "code", "stars": "lots"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.KindCode, search.params.Kind)
	assert.True(t, search.params.PublicOnly)
	assert.False(t, search.params.IncludeForks)
	assert.True(t, search.params.Stars.IsZero())
	assert.False(t, search.enrich)
}

func TestSearch_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing query", `{"language": "go"}`, "query"},
		{"unknown type", `{"query": "x", "type": "gists"}`, "type"},
		{"bad page", `{"query": "x", "page": -1}`, "page"},
		{"malformed json", `{"query": `, "invalid JSON"},
		{"empty body", ``, "empty body"},
		{"bad topics", `{"query": "x", "topics": 5}`, "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &mockSearchService{}
			h := newTestServer(t, search, nil)

			rec := post(t, h, "/api/search", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody(t, rec)["error"], tt.want)
			assert.Zero(t, search.calls)
		})
	}
}

func TestSearch_ErrorStatus(t *testing.T) {
	provider := func(cause error) error {
		return domain.NewSearchError("github search", domain.ErrProviderRequest, cause)
	}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewSearchError("github search", domain.ErrInvalidInput, nil), http.StatusBadRequest},
		{"not configured", domain.NewSearchError("github search", domain.ErrNotConfigured, nil), http.StatusServiceUnavailable},
		{"network", provider(nil), http.StatusBadGateway},
		{"rate limited", provider(domain.ErrRateLimited), http.StatusTooManyRequests},
		{"query rejected", provider(domain.ErrQueryRejected), http.StatusUnprocessableEntity},
		{"bad token", provider(domain.ErrUnauthorized), http.StatusBadGateway},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := &mockSearchService{err: tt.err}
			h := newTestServer(t, search, nil)

			rec := post(t, h, "/api/search", `{"query": "x"}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestSearch_RejectsOtherContentTypes(t *testing.T) {
	h := newTestServer(t, &mockSearchService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader("query=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestSearch_PerClientLimit(t *testing.T) {
	rs, err := domain.NewResultSet("q", domain.KindRepositories, 0, 1, 10, nil)
	require.NoError(t, err)
	h := newTestServer(t, &mockSearchService{result: rs}, nil)

	for i := 0; i < SearchPerMinute; i++ {
		require.Equal(t, http.StatusOK, post(t, h, "/api/search", `{"query": "x"}`).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, post(t, h, "/api/search", `{"query": "x"}`).Code)
}

func postForwarded(t *testing.T, h http.Handler, path, body, forwardedFor string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestSearch_ForwardedForIgnoredByDefault(t *testing.T) {
	rs, err := domain.NewResultSet("q", domain.KindRepositories, 0, 1, 10, nil)
	require.NoError(t, err)
	h := newTestServer(t, &mockSearchService{result: rs}, nil)

	for i := 0; i < SearchPerMinute; i++ {
		require.Equal(t, http.StatusOK, postForwarded(t, h, "/api/search", `{"query": "x"}`, fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, http.StatusTooManyRequests, postForwarded(t, h, "/api/search", `{"query": "x"}`, "10.0.1.1"))
}

func TestSearch_TrustProxyKeysOnForwardedFor(t *testing.T) {
	rs, err := domain.NewResultSet("q", domain.KindRepositories, 0, 1, 10, nil)
	require.NoError(t, err)
	s, err := NewServer(&Ports{Search: &mockSearchService{result: rs}, TrustProxy: true})
	require.NoError(t, err)
	h := s.Handler()

	for i := 0; i < SearchPerMinute; i++ {
		require.Equal(t, http.StatusOK, postForwarded(t, h, "/api/search", `{"query": "x"}`, "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, postForwarded(t, h, "/api/search", `{"query": "x"}`, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, postForwarded(t, h, "/api/search", `{"query": "x"}`, "10.0.0.2"))
}

func TestSimilarityRoutes_SeparateBudgets(t *testing.T) {
	h := newTestServer(t, &mockSearchService{}, &mockSimilarityService{available: true})

	for i := 0; i < SimilarityPerMinute; i++ {
		require.Equal(t, http.StatusOK, post(t, h, "/api/similarity-search", `{"prompt": "x"}`).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, post(t, h, "/api/similarity-search", `{"prompt": "x"}`).Code)
	assert.Equal(t, http.StatusOK, post(t, h, "/api/similar-urls", `{"url": "https://x.dev"}`).Code)
}

func TestClientLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cl := newClientLimiter(rate.Every(time.Minute), 1)
	cl.now = func() time.Time { return now }

	assert.True(t, cl.allow("a"))
	assert.False(t, cl.allow("a"))
	assert.True(t, cl.allow("b"))
	assert.Equal(t, 2, cl.size())

	now = now.Add(clientIdleTTL)
	assert.True(t, cl.allow("c"))
	assert.Equal(t, 1, cl.size())

	// "c" is fresh, so the next sweep keeps it
	now = now.Add(clientIdleTTL / 2)
	assert.True(t, cl.allow("a"))
	assert.Equal(t, 2, cl.size())
}

func TestSimilaritySearch(t *testing.T) {
	sim := &mockSimilarityService{available: true, items: []domain.ScoredContentItem{
		{Title: "Hyper", URL: "https://hyper.rs", Score: 0.8, Domain: "hyper.rs", Text: "body", PublishedDate: "2024-01-01"},
	}}
	h := newTestServer(t, &mockSearchService{}, sim)

	rec := post(t, h, "/api/similarity-search", `{
		"prompt": "rust http",
		"num_results": 3,
		"search_type": "keyword",
		"use_autoprompt": true,
		"site_restrict": "hyper.rs, docs.rs",
		"date_start": "2023-01-01",
		"include_domains": true
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "rust http", sim.content.Prompt)
	assert.Equal(t, 3, sim.content.NumResults)
	assert.Equal(t, domain.SearchModeKeyword, sim.content.Mode)
	assert.True(t, sim.content.AutoPrompt)
	assert.Equal(t, []string{"hyper.rs", "docs.rs"}, sim.content.IncludeDomains)
	assert.Equal(t, "2023-01-01", sim.content.DateRange.Start)
	assert.False(t, sim.content.IncludeText)

	results := decodeBody(t, rec)["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "hyper.rs", first["domain"])
	assert.Nil(t, first["text"])
	assert.Equal(t, "2024-01-01", first["published_date"])
}

func TestSimilaritySearch_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		h := newTestServer(t, &mockSearchService{}, &mockSimilarityService{})
		rec := post(t, h, "/api/similarity-search", `{"prompt": "x"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("no similarity port", func(t *testing.T) {
		h := newTestServer(t, &mockSearchService{}, nil)
		rec := post(t, h, "/api/similar-urls", `{"url": "https://x.dev"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("missing prompt", func(t *testing.T) {
		h := newTestServer(t, &mockSearchService{}, &mockSimilarityService{available: true})
		rec := post(t, h, "/api/similarity-search", `{"num_results": 3}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "prompt")
	})

	t.Run("bad date", func(t *testing.T) {
		h := newTestServer(t, &mockSearchService{}, &mockSimilarityService{available: true})
		rec := post(t, h, "/api/similarity-search", `{"prompt": "x", "date_end": "last week"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider failure", func(t *testing.T) {
		sim := &mockSimilarityService{
			available: true,
			err:       domain.NewSearchError("exa search", domain.ErrProviderRequest, fmt.Errorf("timeout")),
		}
		h := newTestServer(t, &mockSearchService{}, sim)
		rec := post(t, h, "/api/similarity-search", `{"prompt": "x"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "timeout")
	})
}

func TestSimilarURLs(t *testing.T) {
	sim := &mockSimilarityService{available: true, items: []domain.ScoredContentItem{
		{Title: "T", URL: "https://x.dev/a", Score: 0.5, Domain: "x.dev", Text: "snippet"},
	}}
	h := newTestServer(t, &mockSearchService{}, sim)

	rec := post(t, h, "/api/similar-urls", `{
		"url": "https://github.com/hyperium/hyper",
		"excluded_sites": ["github.com"],
		"text_similarity": true,
		"include_snippets": true
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "https://github.com/hyperium/hyper", sim.links.URL)
	assert.Equal(t, []string{"github.com"}, sim.links.ExcludeDomains)
	assert.True(t, sim.links.UseTextSimilarity)
	assert.True(t, sim.links.IncludeText)

	first := decodeBody(t, rec)["results"].([]any)[0].(map[string]any)
	assert.Nil(t, first["domain"])
	assert.Equal(t, "snippet", first["text"])
	assert.Nil(t, first["published_date"])
}

func TestSimilarURLs_RequiresURL(t *testing.T) {
	h := newTestServer(t, &mockSearchService{}, &mockSimilarityService{available: true})

	for _, body := range []string{`{}`, `{"url": "not a url"}`} {
		rec := post(t, h, "/api/similar-urls", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
