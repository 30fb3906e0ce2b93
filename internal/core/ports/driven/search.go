package driven

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

// SearchTransport issues one structured search against the primary provider.
// Implementations own authentication, rate limiting and error mapping; they
// do not interpret the returned items.
type SearchTransport interface {
	// Search runs the compiled query and returns one page of raw items.
	Search(ctx context.Context, req SearchRequest) (*SearchPage, error)
}

// SearchRequest is a compiled, paginated search call.
type SearchRequest struct {
	// Kind selects the search endpoint.
	Kind domain.ResultKind

	// Query is the compiled query string, sent verbatim.
	Query string

	// Page is 1-based.
	Page int

	PerPage int
}

// SearchPage is the provider's response envelope for one page.
type SearchPage struct {
	TotalCount int
	Items      []json.RawMessage
}

// ContentSearchTransport talks to the semantic search provider.
type ContentSearchTransport interface {
	// SearchContents returns content semantically related to a prompt.
	SearchContents(ctx context.Context, req domain.ContentSearchRequest) ([]domain.ScoredContentItem, error)

	// FindSimilar returns pages similar to a given URL.
	FindSimilar(ctx context.Context, req domain.SimilarLinksRequest) ([]domain.ScoredContentItem, error)
}
