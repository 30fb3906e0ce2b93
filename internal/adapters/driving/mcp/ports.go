package mcp

import (
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the MCP server.
type Ports struct {
	// Search runs structured searches with optional enrichment.
	Search driving.SearchService

	// Similarity provides semantic search. Optional.
	Similarity driving.SimilarityService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}

func (p *Ports) semanticAvailable() bool {
	return p.Similarity != nil && p.Similarity.Available()
}
