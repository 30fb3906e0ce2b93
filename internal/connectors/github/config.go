package github

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Config holds the settings for a GitHub search client.
type Config struct {
	// Token is a personal access token or OAuth access token.
	Token string

	// BaseURL overrides the API root, e.g. for GitHub Enterprise.
	// Default: https://api.github.com/
	BaseURL string

	// RequestsPerSecond is the proactive throttle rate.
	// Default: SearchRate
	RequestsPerSecond float64

	// Burst is the token bucket size.
	// Default: SearchBurst
	Burst int

	// HTTPClient replaces the oauth2 client. Used by tests.
	HTTPClient *http.Client
}

// withDefaults fills unset fields and validates BaseURL.
func (c Config) withDefaults() (Config, error) {
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = SearchRate
	}
	if c.Burst <= 0 {
		c.Burst = SearchBurst
	}
	if c.BaseURL != "" {
		u, err := parseBaseURL(c.BaseURL)
		if err != nil {
			return c, err
		}
		c.BaseURL = u.String()
	}
	return c, nil
}

// parseBaseURL parses an API root and ensures the trailing slash go-github
// requires.
func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("github: invalid base url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("github: invalid base url %q", raw)
	}
	return u, nil
}
