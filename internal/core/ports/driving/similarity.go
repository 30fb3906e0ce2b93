package driving

import (
	"context"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

// SimilarityService exposes semantic search.
type SimilarityService interface {
	// Available reports whether semantic search is configured.
	Available() bool

	// SearchSimilarContent finds content related to a natural language prompt.
	SearchSimilarContent(ctx context.Context, req domain.ContentSearchRequest) ([]domain.ScoredContentItem, error)

	// FindSimilarLinks finds pages similar to a URL.
	FindSimilarLinks(ctx context.Context, req domain.SimilarLinksRequest) ([]domain.ScoredContentItem, error)
}
