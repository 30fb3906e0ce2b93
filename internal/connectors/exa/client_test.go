package exa

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

type captured struct {
	path   string
	apiKey string
	body   map[string]any
}

func newTestClient(t *testing.T, status int, response string) (*Client, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.apiKey = r.Header.Get("x-api-key")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &got.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{APIKey: "exa_test", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)
	return c, got
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	c, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
}

func TestClient_SearchContents(t *testing.T) {
	c, got := newTestClient(t, http.StatusOK, `{
		"results": [
			{"title": "Hyper", "url": "https://www.github.com/hyperium/hyper", "score": 0.91,
			 "publishedDate": "2023-04-01", "author": "sean", "text": "A fast HTTP implementation"},
			{"title": "Blog", "url": "https://blog.example.com/post", "score": 0.5,
			 "published_date": "2022-01-02", "similarity": 0.7, "highlights": ["fast"]}
		]
	}`)

	items, err := c.SearchContents(context.Background(), domain.ContentSearchRequest{
		Prompt:         "rust http client",
		NumResults:     2,
		Mode:           domain.SearchModeNeural,
		AutoPrompt:     true,
		IncludeDomains: []string{"github.com"},
		DateRange:      domain.DateRange{Start: "2022-01-01"},
		IncludeText:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/search", got.path)
	assert.Equal(t, "exa_test", got.apiKey)
	assert.Equal(t, "rust http client", got.body["query"])
	assert.Equal(t, float64(2), got.body["numResults"])
	assert.Equal(t, "neural", got.body["type"])
	assert.Equal(t, true, got.body["useAutoprompt"])
	assert.Equal(t, []any{"github.com"}, got.body["includeDomains"])
	assert.Equal(t, "2022-01-01", got.body["startPublishedDate"])
	assert.Equal(t, map[string]any{"text": true}, got.body["contents"])
	for _, absent := range []string{"excludeDomains", "contentTypes", "language", "endPublishedDate"} {
		assert.NotContains(t, got.body, absent)
	}

	require.Len(t, items, 2)
	assert.Equal(t, "Hyper", items[0].Title)
	assert.InDelta(t, 0.91, items[0].Score, 1e-9)
	assert.Nil(t, items[0].Similarity)
	assert.Equal(t, "2023-04-01", items[0].PublishedDate)
	assert.Equal(t, "github.com", items[0].Domain)
	assert.Equal(t, "A fast HTTP implementation", items[0].Text)

	assert.Equal(t, "2022-01-02", items[1].PublishedDate)
	require.NotNil(t, items[1].Similarity)
	assert.InDelta(t, 0.7, *items[1].Similarity, 1e-9)
	assert.Equal(t, "blog.example.com", items[1].Domain)
	assert.Equal(t, []string{"fast"}, items[1].Highlights)
}

func TestClient_SearchContents_NoContents(t *testing.T) {
	c, got := newTestClient(t, http.StatusOK, `{"results": []}`)

	items, err := c.SearchContents(context.Background(), domain.ContentSearchRequest{Prompt: "q"})
	require.NoError(t, err)

	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NotContains(t, got.body, "contents")
	assert.NotContains(t, got.body, "useAutoprompt")
}

func TestClient_FindSimilar(t *testing.T) {
	c, got := newTestClient(t, http.StatusOK, `{"results": [{"title": "t", "url": "https://x.dev/a", "score": 0.3}]}`)

	items, err := c.FindSimilar(context.Background(), domain.SimilarLinksRequest{
		URL:               "https://github.com/hyperium/hyper",
		NumResults:        5,
		ExcludeDomains:    []string{"github.com"},
		DateRange:         domain.DateRange{End: "2024-12-31"},
		UseTextSimilarity: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/findSimilar", got.path)
	assert.Equal(t, "https://github.com/hyperium/hyper", got.body["url"])
	assert.Equal(t, []any{"github.com"}, got.body["excludeDomains"])
	assert.Equal(t, "2024-12-31", got.body["endPublishedDate"])
	assert.Equal(t, true, got.body["textSimilarity"])
	assert.NotContains(t, got.body, "contents")

	require.Len(t, items, 1)
	assert.Equal(t, "x.dev", items[0].Domain)
}

func TestClient_Errors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		c, _ := newTestClient(t, http.StatusUnauthorized, `{"error": "invalid api key"}`)

		_, err := c.SearchContents(context.Background(), domain.ContentSearchRequest{Prompt: "q"})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Contains(t, apiErr.Error(), "invalid api key")
	})

	t.Run("error field", func(t *testing.T) {
		c, _ := newTestClient(t, http.StatusOK, `{"error": "quota exceeded"}`)

		_, err := c.FindSimilar(context.Background(), domain.SimilarLinksRequest{URL: "https://x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("malformed body", func(t *testing.T) {
		c, _ := newTestClient(t, http.StatusOK, `{"results": [`)

		_, err := c.SearchContents(context.Background(), domain.ContentSearchRequest{Prompt: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})

	t.Run("unreachable", func(t *testing.T) {
		c, err := NewClient(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
		require.NoError(t, err)

		_, err = c.SearchContents(context.Background(), domain.ContentSearchRequest{Prompt: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "send request")
	})
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "example.com", hostOf("https://www.example.com/a?b=c"))
	assert.Equal(t, "sub.example.com", hostOf("http://sub.example.com:8080/"))
	assert.Equal(t, "", hostOf("::not a url"))
}
