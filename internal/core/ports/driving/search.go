package driving

import (
	"context"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

// PrimarySearchService runs structured searches against GitHub.
type PrimarySearchService interface {
	// Search compiles p and returns one page of typed results.
	Search(ctx context.Context, p domain.ParameterSet, page, perPage int) (*domain.ResultSet, error)
}

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// CombinedSearch runs a structured search and, when enrich is set and
	// semantic search is available, attaches relevance signals to the
	// matching items. Enrichment failures never fail the call.
	CombinedSearch(ctx context.Context, p domain.ParameterSet, page, perPage int, enrich bool) (*domain.ResultSet, error)
}
