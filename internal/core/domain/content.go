package domain

import (
	"fmt"
	"strings"
)

// ScoredContentItem is one result from the semantic search provider.
// It lives only for the duration of a request.
type ScoredContentItem struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`

	// Similarity is set only when the provider reports it.
	Similarity *float64 `json:"similarity,omitempty"`

	// PublishedDate is the provider's date string, empty when unknown.
	PublishedDate string   `json:"published_date,omitempty"`
	Author        string   `json:"author,omitempty"`
	Domain        string   `json:"domain,omitempty"`
	Text          string   `json:"text,omitempty"`
	Highlights    []string `json:"highlights,omitempty"`
}

// SearchMode selects the semantic provider's retrieval strategy.
type SearchMode string

const (
	// SearchModeNeural uses embedding-based retrieval.
	SearchModeNeural SearchMode = "neural"
	// SearchModeKeyword uses keyword retrieval.
	SearchModeKeyword SearchMode = "keyword"
	// SearchModeAuto lets the provider decide.
	SearchModeAuto SearchMode = "auto"
)

// ParseSearchMode parses a mode name. An empty string selects neural.
func ParseSearchMode(s string) (SearchMode, error) {
	switch m := SearchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SearchModeNeural, nil
	case SearchModeNeural, SearchModeKeyword, SearchModeAuto:
		return m, nil
	default:
		return "", fmt.Errorf("%w: search mode %q", ErrUnsupportedType, s)
	}
}

// DefaultNumResults is the result count used when a request leaves it unset.
const DefaultNumResults = 5

// DateRange bounds the publication date of semantic results.
// Dates use the YYYY-MM-DD form; empty means unbounded.
type DateRange struct {
	Start string
	End   string
}

// ContentSearchRequest asks the semantic provider for content similar to a
// prompt. Filters left empty are not sent.
type ContentSearchRequest struct {
	Prompt            string
	NumResults        int
	Mode              SearchMode
	AutoPrompt        bool
	IncludeDomains    []string
	ExcludeDomains    []string
	ContentTypes      []string
	Language          string
	DateRange         DateRange
	IncludeText       bool
	IncludeHighlights bool
}

// SimilarLinksRequest asks the semantic provider for pages similar to a URL.
type SimilarLinksRequest struct {
	URL               string
	NumResults        int
	IncludeDomains    []string
	ExcludeDomains    []string
	Language          string
	DateRange         DateRange
	UseTextSimilarity bool
	IncludeText       bool
}

// Credentials carries the provider secrets established at start-up.
// An empty value disables the corresponding client on use.
type Credentials struct {
	GitHubToken string
	ExaAPIKey   string
}

// HasPrimary reports whether a GitHub token is configured.
func (c Credentials) HasPrimary() bool {
	return strings.TrimSpace(c.GitHubToken) != ""
}

// HasSecondary reports whether an Exa API key is configured.
func (c Credentials) HasSecondary() bool {
	return strings.TrimSpace(c.ExaAPIKey) != ""
}
