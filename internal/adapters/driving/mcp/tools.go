package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

// GitHubSearchInput is the input schema for the github_search tool.
type GitHubSearchInput struct {
	Query          string   `json:"query" jsonschema:"keywords to search for"`
	Type           string   `json:"type,omitempty" jsonschema:"repositories, code, issues or users (default repositories)"`
	Language       string   `json:"language,omitempty" jsonschema:"restrict to a programming language"`
	MinStars       *int     `json:"min_stars,omitempty" jsonschema:"minimum star count"`
	MaxStars       *int     `json:"max_stars,omitempty" jsonschema:"maximum star count"`
	MinForks       *int     `json:"min_forks,omitempty" jsonschema:"minimum fork count"`
	MaxForks       *int     `json:"max_forks,omitempty" jsonschema:"maximum fork count"`
	Created        string   `json:"created,omitempty" jsonschema:"creation date qualifier such as >2023-01-01"`
	Pushed         string   `json:"pushed,omitempty" jsonschema:"last push date qualifier such as >=2024-06-01"`
	Owner          string   `json:"owner,omitempty" jsonschema:"restrict to a user account"`
	Organization   string   `json:"organization,omitempty" jsonschema:"restrict to an organization"`
	IncludePrivate bool     `json:"include_private,omitempty" jsonschema:"do not restrict to public repositories"`
	IncludeForks   bool     `json:"include_forks,omitempty" jsonschema:"include forked repositories"`
	Topics         []string `json:"topics,omitempty" jsonschema:"required topics"`
	Subtopics      []string `json:"subtopics,omitempty" jsonschema:"required subtopics"`
	Tags           []string `json:"tags,omitempty" jsonschema:"required tags"`
	ExcludedTopics []string `json:"excluded_topics,omitempty" jsonschema:"topics to exclude"`
	Page           int      `json:"page,omitempty" jsonschema:"page number (default 1)"`
	PerPage        int      `json:"per_page,omitempty" jsonschema:"results per page (default 10)"`
	Enrich         bool     `json:"enrich,omitempty" jsonschema:"attach semantic relevance scores"`
}

// GitHubSearchOutput is the output schema for the github_search tool.
type GitHubSearchOutput struct {
	Query       string       `json:"query"`
	Type        string       `json:"type"`
	TotalCount  int          `json:"total_count"`
	Page        int          `json:"page"`
	PerPage     int          `json:"per_page"`
	HasNextPage bool         `json:"has_next_page"`
	Items       []SearchItem `json:"items"`
}

// SearchItem is a flattened view of one result entity.
type SearchItem struct {
	Title              string   `json:"title"`
	URL                string   `json:"url"`
	Description        string   `json:"description,omitempty"`
	RelevanceScore     *float64 `json:"relevance_score,omitempty"`
	SemanticSimilarity *float64 `json:"semantic_similarity,omitempty"`
	EnrichedContent    string   `json:"enriched_content,omitempty"`
}

// SimilarContentInput is the input schema for the similar_content tool.
type SimilarContentInput struct {
	Prompt         string   `json:"prompt" jsonschema:"natural language description of the content"`
	NumResults     int      `json:"num_results,omitempty" jsonschema:"number of results (default 5)"`
	Mode           string   `json:"mode,omitempty" jsonschema:"neural, keyword or auto (default neural)"`
	AutoPrompt     bool     `json:"auto_prompt,omitempty" jsonschema:"let the provider rewrite the prompt"`
	IncludeDomains []string `json:"include_domains,omitempty" jsonschema:"only return results from these domains"`
	ExcludeDomains []string `json:"exclude_domains,omitempty" jsonschema:"never return results from these domains"`
	StartDate      string   `json:"start_date,omitempty" jsonschema:"earliest publication date (YYYY-MM-DD)"`
	EndDate        string   `json:"end_date,omitempty" jsonschema:"latest publication date (YYYY-MM-DD)"`
	IncludeText    bool     `json:"include_text,omitempty" jsonschema:"return page text"`
}

// SimilarLinksInput is the input schema for the similar_links tool.
type SimilarLinksInput struct {
	URL            string   `json:"url" jsonschema:"page to find similar pages for"`
	NumResults     int      `json:"num_results,omitempty" jsonschema:"number of results (default 5)"`
	IncludeDomains []string `json:"include_domains,omitempty" jsonschema:"only return results from these domains"`
	ExcludeDomains []string `json:"exclude_domains,omitempty" jsonschema:"never return results from these domains"`
	StartDate      string   `json:"start_date,omitempty" jsonschema:"earliest publication date (YYYY-MM-DD)"`
	EndDate        string   `json:"end_date,omitempty" jsonschema:"latest publication date (YYYY-MM-DD)"`
	TextSimilarity bool     `json:"text_similarity,omitempty" jsonschema:"compare by page text rather than links"`
}

// ContentOutput is the output schema for both similarity tools.
type ContentOutput struct {
	Results []ContentItem `json:"results"`
	Count   int           `json:"count"`
}

// ContentItem is one semantic search result.
type ContentItem struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Score         float64  `json:"score"`
	Similarity    *float64 `json:"similarity,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Author        string   `json:"author,omitempty"`
	Domain        string   `json:"domain,omitempty"`
	Text          string   `json:"text,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "github_search",
		Description: "Search GitHub repositories, code, issues or users with structured filters",
	}, s.handleGitHubSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_content",
		Description: "Find web content semantically related to a prompt",
	}, s.handleSimilarContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_links",
		Description: "Find pages similar to a given URL",
	}, s.handleSimilarLinks)
}

func (s *Server) handleGitHubSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GitHubSearchInput,
) (*mcp.CallToolResult, GitHubSearchOutput, error) {
	kind, err := domain.ParseResultKind(input.Type)
	if err != nil {
		return nil, GitHubSearchOutput{}, err
	}

	p := domain.NewParameterSet(input.Query)
	p.Kind = kind
	p.Language = input.Language
	p.Stars = domain.NewRange(input.MinStars, input.MaxStars)
	p.Forks = domain.NewRange(input.MinForks, input.MaxForks)
	p.Created = input.Created
	p.Pushed = input.Pushed
	p.Owner = input.Owner
	p.Organization = input.Organization
	p.PublicOnly = !input.IncludePrivate
	p.IncludeForks = input.IncludeForks
	p.Topics = domain.CleanList(input.Topics)
	p.Subtopics = domain.CleanList(input.Subtopics)
	p.Tags = domain.CleanList(input.Tags)
	p.ExcludedTopics = domain.CleanList(input.ExcludedTopics)

	rs, err := s.ports.Search.CombinedSearch(ctx, p, input.Page, input.PerPage, input.Enrich)
	if err != nil {
		return nil, GitHubSearchOutput{}, err
	}
	return nil, toSearchOutput(rs), nil
}

func (s *Server) handleSimilarContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarContentInput,
) (*mcp.CallToolResult, ContentOutput, error) {
	if !s.ports.semanticAvailable() {
		return nil, ContentOutput{}, ErrSemanticUnavailable
	}
	mode, err := domain.ParseSearchMode(input.Mode)
	if err != nil {
		return nil, ContentOutput{}, err
	}

	items, err := s.ports.Similarity.SearchSimilarContent(ctx, domain.ContentSearchRequest{
		Prompt:         input.Prompt,
		NumResults:     input.NumResults,
		Mode:           mode,
		AutoPrompt:     input.AutoPrompt,
		IncludeDomains: input.IncludeDomains,
		ExcludeDomains: input.ExcludeDomains,
		DateRange:      domain.DateRange{Start: input.StartDate, End: input.EndDate},
		IncludeText:    input.IncludeText,
	})
	if err != nil {
		return nil, ContentOutput{}, err
	}
	return nil, toContentOutput(items), nil
}

func (s *Server) handleSimilarLinks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarLinksInput,
) (*mcp.CallToolResult, ContentOutput, error) {
	if !s.ports.semanticAvailable() {
		return nil, ContentOutput{}, ErrSemanticUnavailable
	}

	items, err := s.ports.Similarity.FindSimilarLinks(ctx, domain.SimilarLinksRequest{
		URL:               input.URL,
		NumResults:        input.NumResults,
		IncludeDomains:    input.IncludeDomains,
		ExcludeDomains:    input.ExcludeDomains,
		DateRange:         domain.DateRange{Start: input.StartDate, End: input.EndDate},
		UseTextSimilarity: input.TextSimilarity,
	})
	if err != nil {
		return nil, ContentOutput{}, err
	}
	return nil, toContentOutput(items), nil
}

func toSearchOutput(rs *domain.ResultSet) GitHubSearchOutput {
	entities := rs.Items()
	out := GitHubSearchOutput{
		Query:       rs.Query,
		Type:        string(rs.Kind),
		TotalCount:  rs.TotalCount,
		Page:        rs.Page,
		PerPage:     rs.PerPage,
		HasNextPage: rs.HasNextPage(),
		Items:       make([]SearchItem, len(entities)),
	}
	for i, e := range entities {
		out.Items[i] = toSearchItem(e)
	}
	return out
}

func toSearchItem(e domain.Entity) SearchItem {
	item := SearchItem{URL: e.Link()}
	switch v := e.(type) {
	case domain.Repository:
		item.Title = v.FullName
		item.Description = v.Description
	case domain.CodeResult:
		item.Title = fmt.Sprintf("%s/%s", v.Repository.FullName, v.Path)
	case domain.Issue:
		item.Title = fmt.Sprintf("#%d %s", v.Number, v.Title)
		item.Description = v.State
	case domain.User:
		item.Title = v.Login
		item.Description = v.Bio
	}

	enr := e.GetEnrichment()
	item.RelevanceScore = enr.RelevanceScore
	item.SemanticSimilarity = enr.SemanticSimilarity
	if enr.EnrichedContent != nil {
		item.EnrichedContent = *enr.EnrichedContent
	}
	return item
}

func toContentOutput(items []domain.ScoredContentItem) ContentOutput {
	out := ContentOutput{
		Results: make([]ContentItem, len(items)),
		Count:   len(items),
	}
	for i, it := range items {
		out.Results[i] = ContentItem{
			Title:         it.Title,
			URL:           it.URL,
			Score:         it.Score,
			Similarity:    it.Similarity,
			PublishedDate: it.PublishedDate,
			Author:        it.Author,
			Domain:        it.Domain,
			Text:          it.Text,
		}
	}
	return out
}
