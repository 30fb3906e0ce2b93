package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-hub/internal/logger"
)

// Ensure PrimarySearchClient implements the interface.
var _ driving.PrimarySearchService = (*PrimarySearchClient)(nil)

const opPrimarySearch = "github search"

// PrimarySearchClient runs structured searches against GitHub.
type PrimarySearchClient struct {
	transport driven.SearchTransport
	creds     domain.Credentials
}

// NewPrimarySearchClient creates a primary search client.
// A nil transport or an empty token leaves the client unconfigured; calls
// then fail with a configuration error.
func NewPrimarySearchClient(transport driven.SearchTransport, creds domain.Credentials) *PrimarySearchClient {
	return &PrimarySearchClient{transport: transport, creds: creds}
}

// Configured reports whether the client can issue requests.
func (c *PrimarySearchClient) Configured() bool {
	return c.transport != nil && c.creds.HasPrimary()
}

// Search compiles p and fetches one page of results.
// Validation and configuration failures are returned before any request.
func (c *PrimarySearchClient) Search(
	ctx context.Context, p domain.ParameterSet, page, perPage int,
) (*domain.ResultSet, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !c.Configured() {
		return nil, domain.NewSearchError(opPrimarySearch, domain.ErrNotConfigured,
			errors.New("no GitHub token configured"))
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = domain.DefaultPerPage
	}

	query := domain.CompileQuery(p)
	logger.Debug("GitHub %s query: %q (page %d, per_page %d)", p.Kind, query, page, perPage)

	resp, err := c.transport.Search(ctx, driven.SearchRequest{
		Kind:    p.Kind,
		Query:   query,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		logger.Warn("GitHub search failed: %v", err)
		return nil, domain.NewSearchError(opPrimarySearch, domain.ErrProviderRequest, err)
	}
	if resp == nil {
		return nil, domain.NewSearchError(opPrimarySearch, domain.ErrProviderRequest,
			errors.New("empty response"))
	}

	items, err := domain.ParseEntities(p.Kind, resp.Items)
	if err != nil {
		return nil, domain.NewSearchError(opPrimarySearch, domain.ErrProviderRequest, err)
	}

	rs, err := domain.NewResultSet(p.Query, p.Kind, resp.TotalCount, page, perPage, items)
	if err != nil {
		return nil, domain.NewSearchError(opPrimarySearch, domain.ErrProviderRequest, err)
	}

	logger.Debug("GitHub returned %d of %d results", rs.Len(), rs.TotalCount)
	return rs, nil
}
