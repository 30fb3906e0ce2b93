package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-hub/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-hub/internal/logger"
)

// Ensure SimilarityClient implements the interface.
var _ driving.SimilarityService = (*SimilarityClient)(nil)

const (
	opSimilarContent = "exa search"
	opSimilarLinks   = "exa find similar"
)

// SimilarityClient runs semantic searches against Exa.
type SimilarityClient struct {
	transport driven.ContentSearchTransport
	creds     domain.Credentials
}

// NewSimilarityClient creates a semantic search client.
// The transport is optional (can be nil).
func NewSimilarityClient(transport driven.ContentSearchTransport, creds domain.Credentials) *SimilarityClient {
	return &SimilarityClient{transport: transport, creds: creds}
}

// Available reports whether a transport and an API key are present.
func (c *SimilarityClient) Available() bool {
	return c != nil && c.transport != nil && c.creds.HasSecondary()
}

// SearchSimilarContent finds content related to req.Prompt.
func (c *SimilarityClient) SearchSimilarContent(
	ctx context.Context, req domain.ContentSearchRequest,
) ([]domain.ScoredContentItem, error) {
	if !c.Available() {
		return nil, domain.NewSearchError(opSimilarContent, domain.ErrNotConfigured,
			errors.New("no Exa API key configured"))
	}

	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return nil, domain.NewSearchError(opSimilarContent, domain.ErrInvalidInput,
			errors.New("prompt is required"))
	}
	if req.NumResults < 1 {
		req.NumResults = domain.DefaultNumResults
	}
	if req.Mode == "" {
		req.Mode = domain.SearchModeNeural
	}
	req.IncludeDomains = domain.CleanList(req.IncludeDomains)
	req.ExcludeDomains = domain.CleanList(req.ExcludeDomains)
	req.ContentTypes = domain.CleanList(req.ContentTypes)

	logger.Debug("Exa search: %q (mode %s, results %d)", req.Prompt, req.Mode, req.NumResults)

	items, err := c.transport.SearchContents(ctx, req)
	if err != nil {
		logger.Warn("Exa search failed: %v", err)
		return nil, domain.NewSearchError(opSimilarContent, domain.ErrProviderRequest, err)
	}
	return nonNil(items), nil
}

// FindSimilarLinks finds pages similar to req.URL.
func (c *SimilarityClient) FindSimilarLinks(
	ctx context.Context, req domain.SimilarLinksRequest,
) ([]domain.ScoredContentItem, error) {
	if !c.Available() {
		return nil, domain.NewSearchError(opSimilarLinks, domain.ErrNotConfigured,
			errors.New("no Exa API key configured"))
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return nil, domain.NewSearchError(opSimilarLinks, domain.ErrInvalidInput,
			errors.New("url is required"))
	}
	if req.NumResults < 1 {
		req.NumResults = domain.DefaultNumResults
	}
	req.IncludeDomains = domain.CleanList(req.IncludeDomains)
	req.ExcludeDomains = domain.CleanList(req.ExcludeDomains)

	logger.Debug("Exa find similar: %s (results %d)", req.URL, req.NumResults)

	items, err := c.transport.FindSimilar(ctx, req)
	if err != nil {
		logger.Warn("Exa find similar failed: %v", err)
		return nil, domain.NewSearchError(opSimilarLinks, domain.ErrProviderRequest, err)
	}
	return nonNil(items), nil
}

func nonNil(items []domain.ScoredContentItem) []domain.ScoredContentItem {
	if items == nil {
		return []domain.ScoredContentItem{}
	}
	return items
}
