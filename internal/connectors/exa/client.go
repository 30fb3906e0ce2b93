package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ContentSearchTransport = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.exa.ai"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Exa client.
type Config struct {
	// APIKey is the Exa API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.exa.ai).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient replaces the default client. Used by tests.
	HTTPClient *http.Client
}

// Client calls the Exa search and findSimilar endpoints.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

type contentsOptions struct {
	Text       bool `json:"text,omitempty"`
	Highlights bool `json:"highlights,omitempty"`
}

// searchRequest is the /search body. Unset filters are omitted.
type searchRequest struct {
	Query              string           `json:"query"`
	NumResults         int              `json:"numResults,omitempty"`
	Type               string           `json:"type,omitempty"`
	UseAutoprompt      bool             `json:"useAutoprompt,omitempty"`
	IncludeDomains     []string         `json:"includeDomains,omitempty"`
	ExcludeDomains     []string         `json:"excludeDomains,omitempty"`
	ContentTypes       []string         `json:"contentTypes,omitempty"`
	Language           string           `json:"language,omitempty"`
	StartPublishedDate string           `json:"startPublishedDate,omitempty"`
	EndPublishedDate   string           `json:"endPublishedDate,omitempty"`
	Contents           *contentsOptions `json:"contents,omitempty"`
}

// findSimilarRequest is the /findSimilar body.
type findSimilarRequest struct {
	URL                string           `json:"url"`
	NumResults         int              `json:"numResults,omitempty"`
	IncludeDomains     []string         `json:"includeDomains,omitempty"`
	ExcludeDomains     []string         `json:"excludeDomains,omitempty"`
	Language           string           `json:"language,omitempty"`
	StartPublishedDate string           `json:"startPublishedDate,omitempty"`
	EndPublishedDate   string           `json:"endPublishedDate,omitempty"`
	TextSimilarity     bool             `json:"textSimilarity,omitempty"`
	Contents           *contentsOptions `json:"contents,omitempty"`
}

type result struct {
	Title            string   `json:"title"`
	URL              string   `json:"url"`
	Score            float64  `json:"score"`
	Similarity       *float64 `json:"similarity,omitempty"`
	PublishedDate    string   `json:"publishedDate"`
	PublishedDateAlt string   `json:"published_date"`
	Author           string   `json:"author"`
	Domain           string   `json:"domain"`
	Text             string   `json:"text"`
	Highlights       []string `json:"highlights"`
}

type searchResponse struct {
	Results []result `json:"results"`
	Error   string   `json:"error,omitempty"`
}

// NewClient creates a new Exa client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("exa: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}, nil
}

// SearchContents calls POST /search.
func (c *Client) SearchContents(
	ctx context.Context, req domain.ContentSearchRequest,
) ([]domain.ScoredContentItem, error) {
	body := searchRequest{
		Query:              req.Prompt,
		NumResults:         req.NumResults,
		Type:               string(req.Mode),
		UseAutoprompt:      req.AutoPrompt,
		IncludeDomains:     req.IncludeDomains,
		ExcludeDomains:     req.ExcludeDomains,
		ContentTypes:       req.ContentTypes,
		Language:           req.Language,
		StartPublishedDate: req.DateRange.Start,
		EndPublishedDate:   req.DateRange.End,
		Contents:           contents(req.IncludeText, req.IncludeHighlights),
	}
	return c.post(ctx, "/search", body)
}

// FindSimilar calls POST /findSimilar.
func (c *Client) FindSimilar(
	ctx context.Context, req domain.SimilarLinksRequest,
) ([]domain.ScoredContentItem, error) {
	body := findSimilarRequest{
		URL:                req.URL,
		NumResults:         req.NumResults,
		IncludeDomains:     req.IncludeDomains,
		ExcludeDomains:     req.ExcludeDomains,
		Language:           req.Language,
		StartPublishedDate: req.DateRange.Start,
		EndPublishedDate:   req.DateRange.End,
		TextSimilarity:     req.UseTextSimilarity,
		Contents:           contents(req.IncludeText, false),
	}
	return c.post(ctx, "/findSimilar", body)
}

func contents(text, highlights bool) *contentsOptions {
	if !text && !highlights {
		return nil
	}
	return &contentsOptions{Text: text, Highlights: highlights}
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]domain.ScoredContentItem, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("exa error: %s", parsed.Error)
	}

	items := make([]domain.ScoredContentItem, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		items = append(items, r.toItem())
	}
	return items, nil
}

func (r result) toItem() domain.ScoredContentItem {
	published := r.PublishedDate
	if published == "" {
		published = r.PublishedDateAlt
	}
	d := r.Domain
	if d == "" {
		d = hostOf(r.URL)
	}
	return domain.ScoredContentItem{
		Title:         r.Title,
		URL:           r.URL,
		Score:         r.Score,
		Similarity:    r.Similarity,
		PublishedDate: published,
		Author:        r.Author,
		Domain:        d,
		Text:          r.Text,
		Highlights:    r.Highlights,
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// APIError is a non-200 response from Exa.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exa error (status %d): %s", e.StatusCode, e.Body)
}
