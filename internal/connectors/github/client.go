package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.SearchTransport = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MediaTypeJSON is the default search media type.
	MediaTypeJSON = "application/vnd.github.v3+json"

	// MediaTypeTextMatch asks GitHub to include text match metadata.
	MediaTypeTextMatch = "application/vnd.github.v3.text-match+json"
)

// Client wraps the go-github client for the search endpoints.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// searchEnvelope is the common shape of every search response.
// TotalCount is a pointer so a body without it can be told apart from an
// empty result.
type searchEnvelope struct {
	TotalCount        *int              `json:"total_count"`
	IncompleteResults bool              `json:"incomplete_results"`
	Items             []json.RawMessage `json:"items"`
}

// NewClient creates a GitHub search client. An empty token is allowed;
// the core declines to call an unconfigured client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = DefaultTimeout
	}

	client := gh.NewClient(httpClient)
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("github: invalid base url: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{
		gh:          client,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// Search runs GET search/{kind} for one page.
func (c *Client) Search(ctx context.Context, req driven.SearchRequest) (*driven.SearchPage, error) {
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("github: %w: %q", domain.ErrUnsupportedType, req.Kind)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("page", fmt.Sprint(req.Page))
	q.Set("per_page", fmt.Sprint(req.PerPage))

	httpReq, err := c.gh.NewRequest(http.MethodGet, "search/"+string(req.Kind)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("Accept", acceptFor(req.Kind))

	var env searchEnvelope
	resp, err := c.gh.Do(ctx, httpReq, &env)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "search "+string(req.Kind))
	}

	// go-github treats an empty body as success.
	if env.TotalCount == nil {
		return nil, errors.New("github: malformed search response: missing total_count")
	}

	items := env.Items
	if items == nil {
		items = []json.RawMessage{}
	}
	return &driven.SearchPage{TotalCount: *env.TotalCount, Items: items}, nil
}

func acceptFor(kind domain.ResultKind) string {
	if kind == domain.KindCode {
		return MediaTypeTextMatch
	}
	return MediaTypeJSON
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{
			ResetAt:   resetAt,
			Remaining: 0,
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
