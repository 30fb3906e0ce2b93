package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

const (
	uriScheme = "sercha-hub://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "capabilities",
		Name:        "capabilities",
		Description: "Result kinds and whether semantic enrichment is available",
		MIMEType:    "application/json",
	}, s.handleCapabilitiesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{kind}/{query}",
		Name:        "search",
		Description: "First page of a GitHub search with default filters",
		MIMEType:    "application/json",
	}, s.handleSearchResource)
}

func (s *Server) handleCapabilitiesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kinds := domain.AllResultKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}

	data, err := json.MarshalIndent(struct {
		Kinds    []string `json:"kinds"`
		Semantic bool     `json:"semantic"`
	}{names, s.ports.semanticAvailable()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling capabilities: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// handleSearchResource runs the search named by sercha-hub://search/{kind}/{query}.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, query := extractSearchTarget(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	k, err := domain.ParseResultKind(kind)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p := domain.NewParameterSet(query)
	p.Kind = k
	rs, err := s.ports.Search.CombinedSearch(ctx, p, 1, domain.DefaultPerPage, false)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	data, err := json.MarshalIndent(toSearchOutput(rs), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling results: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// extractSearchTarget splits sercha-hub://search/{kind}/{query}. The query
// segment is path-unescaped.
func extractSearchTarget(uri string) (kind, query string) {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return "", ""
	}
	kind, rest, ok := strings.Cut(strings.TrimPrefix(uri, prefix), "/")
	if !ok || kind == "" {
		return "", ""
	}
	query, err := url.PathUnescape(rest)
	if err != nil {
		return "", ""
	}
	return kind, strings.TrimSpace(query)
}

func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}
