package api

import (
	"net/http"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

type searchRequest struct {
	Query         string     `json:"query" validate:"required"`
	Type          string     `json:"type" validate:"omitempty,oneof=repositories code issues users"`
	Language      string     `json:"language"`
	Stars         bounds     `json:"stars"`
	Forks         bounds     `json:"forks"`
	Created       string     `json:"created"`
	Pushed        string     `json:"pushed"`
	User          string     `json:"user"`
	Org           string     `json:"org"`
	IsPublic      *bool      `json:"is_public"`
	IncludeForks  bool       `json:"include_forks"`
	Topics        stringList `json:"topics"`
	Subtopics     stringList `json:"subtopics"`
	Tags          stringList `json:"tags"`
	ExcludeTopics stringList `json:"exclude_topics"`
	Page          int        `json:"page" validate:"omitempty,min=1"`
	PerPage       int        `json:"per_page" validate:"omitempty,min=1,max=100"`
	Enrich        bool       `json:"enrich"`
}

func (req searchRequest) params() domain.ParameterSet {
	p := domain.NewParameterSet(req.Query)
	if req.Type != "" {
		p.Kind = domain.ResultKind(req.Type)
	}
	p.Language = req.Language
	p.Stars = req.Stars.toRange()
	p.Forks = req.Forks.toRange()
	p.Created = req.Created
	p.Pushed = req.Pushed
	p.Owner = req.User
	p.Organization = req.Org
	if req.IsPublic != nil {
		p.PublicOnly = *req.IsPublic
	}
	p.IncludeForks = req.IncludeForks
	p.Topics = domain.CleanList(req.Topics)
	p.Subtopics = domain.CleanList(req.Subtopics)
	p.Tags = domain.CleanList(req.Tags)
	p.ExcludedTopics = domain.CleanList(req.ExcludeTopics)
	return p
}

type displayOptions struct {
	IncludeDomains  bool `json:"include_domains"`
	IncludeSnippets bool `json:"include_snippets"`
}

type similaritySearchRequest struct {
	Prompt        string     `json:"prompt" validate:"required"`
	NumResults    int        `json:"num_results" validate:"omitempty,min=1,max=100"`
	SearchType    string     `json:"search_type" validate:"omitempty,oneof=neural keyword auto"`
	UseAutoprompt bool       `json:"use_autoprompt"`
	SiteRestrict  stringList `json:"site_restrict"`
	ExcludedSites stringList `json:"excluded_sites"`
	ContentTypes  stringList `json:"content_types"`
	Language      string     `json:"language"`
	DateStart     string     `json:"date_start" validate:"omitempty,datetime=2006-01-02"`
	DateEnd       string     `json:"date_end" validate:"omitempty,datetime=2006-01-02"`
	Highlight     bool       `json:"highlight"`
	displayOptions
}

type similarURLsRequest struct {
	URL            string     `json:"url" validate:"required,url"`
	NumResults     int        `json:"num_results" validate:"omitempty,min=1,max=100"`
	SiteRestrict   stringList `json:"site_restrict"`
	ExcludedSites  stringList `json:"excluded_sites"`
	Language       string     `json:"language"`
	DateStart      string     `json:"date_start" validate:"omitempty,datetime=2006-01-02"`
	DateEnd        string     `json:"date_end" validate:"omitempty,datetime=2006-01-02"`
	TextSimilarity bool       `json:"text_similarity"`
	displayOptions
}

type contentResult struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Score         float64  `json:"score"`
	Similarity    *float64 `json:"similarity,omitempty"`
	PublishedDate *string  `json:"published_date"`
	Domain        *string  `json:"domain"`
	Text          *string  `json:"text"`
	Highlights    []string `json:"highlights,omitempty"`
}

type contentResponse struct {
	Results []contentResult `json:"results"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Semantic bool   `json:"semantic"`
}

func (s *Server) semanticAvailable() bool {
	return s.ports.Similarity != nil && s.ports.Similarity.Available()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Semantic: s.semanticAvailable()})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[searchRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	rs, err := s.ports.Search.CombinedSearch(r.Context(), req.params(), req.Page, req.PerPage, req.Enrich)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (s *Server) handleSimilaritySearch(w http.ResponseWriter, r *http.Request) {
	if !s.semanticAvailable() {
		writeError(w, notConfigured("similarity search"))
		return
	}
	req, err := decodeJSON[similaritySearchRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := s.ports.Similarity.SearchSimilarContent(r.Context(), domain.ContentSearchRequest{
		Prompt:            req.Prompt,
		NumResults:        req.NumResults,
		Mode:              domain.SearchMode(req.SearchType),
		AutoPrompt:        req.UseAutoprompt,
		IncludeDomains:    req.SiteRestrict,
		ExcludeDomains:    req.ExcludedSites,
		ContentTypes:      req.ContentTypes,
		Language:          req.Language,
		DateRange:         domain.DateRange{Start: req.DateStart, End: req.DateEnd},
		IncludeText:       req.IncludeSnippets,
		IncludeHighlights: req.Highlight,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{Results: present(items, req.displayOptions)})
}

func (s *Server) handleSimilarURLs(w http.ResponseWriter, r *http.Request) {
	if !s.semanticAvailable() {
		writeError(w, notConfigured("similar urls"))
		return
	}
	req, err := decodeJSON[similarURLsRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := s.ports.Similarity.FindSimilarLinks(r.Context(), domain.SimilarLinksRequest{
		URL:               req.URL,
		NumResults:        req.NumResults,
		IncludeDomains:    req.SiteRestrict,
		ExcludeDomains:    req.ExcludedSites,
		Language:          req.Language,
		DateRange:         domain.DateRange{Start: req.DateStart, End: req.DateEnd},
		UseTextSimilarity: req.TextSimilarity,
		IncludeText:       req.IncludeSnippets,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{Results: present(items, req.displayOptions)})
}

func notConfigured(op string) error {
	return domain.NewSearchError(op, domain.ErrNotConfigured, nil)
}

// present renders items, surfacing domain and text only when asked for.
func present(items []domain.ScoredContentItem, opts displayOptions) []contentResult {
	out := make([]contentResult, len(items))
	for i, it := range items {
		res := contentResult{
			Title:         it.Title,
			URL:           it.URL,
			Score:         it.Score,
			Similarity:    it.Similarity,
			PublishedDate: optional(it.PublishedDate),
			Highlights:    it.Highlights,
		}
		if opts.IncludeDomains {
			res.Domain = optional(it.Domain)
		}
		if opts.IncludeSnippets {
			res.Text = optional(it.Text)
		}
		out[i] = res
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
