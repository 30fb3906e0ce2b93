package domain

// Enrichment holds the relevance signals attached by the secondary provider.
// All fields are nil until a fusion pass matches the entity.
type Enrichment struct {
	RelevanceScore     *float64 `json:"relevance_score,omitempty"`
	SemanticSimilarity *float64 `json:"semantic_similarity,omitempty"`
	EnrichedContent    *string  `json:"enriched_content,omitempty"`
}

// IsZero reports whether no enrichment has been attached.
func (e Enrichment) IsZero() bool {
	return e.RelevanceScore == nil && e.SemanticSimilarity == nil && e.EnrichedContent == nil
}

// Entity is one item of a ResultSet. The set of implementations is closed:
// Repository, CodeResult, Issue and User.
type Entity interface {
	// Kind returns the result kind this entity belongs to.
	Kind() ResultKind

	// Link returns the entity's web URL, used for enrichment matching.
	Link() string

	// GetEnrichment returns the attached enrichment, if any.
	GetEnrichment() Enrichment

	// WithEnrichment returns a copy of the entity carrying e.
	WithEnrichment(e Enrichment) Entity

	isEntity()
}

// AccountRef is a reference to a GitHub user or organisation.
type AccountRef struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	URL   string `json:"html_url"`
	Type  string `json:"type"`
}

// LicenseRef is a reference to a repository license.
type LicenseRef struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
}

// Repository is a repository search hit.
type Repository struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	FullName    string      `json:"full_name"`
	URL         string      `json:"html_url"`
	Description string      `json:"description,omitempty"`
	Owner       AccountRef  `json:"owner"`
	Stars       int         `json:"stargazers_count"`
	Watchers    int         `json:"watchers_count"`
	Forks       int         `json:"forks_count"`
	OpenIssues  int         `json:"open_issues_count"`
	Language    string      `json:"language,omitempty"`
	Topics      []string    `json:"topics"`
	License     *LicenseRef `json:"license,omitempty"`
	CreatedAt   string      `json:"created_at,omitempty"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
	PushedAt    string      `json:"pushed_at,omitempty"`
	Fork        bool        `json:"fork"`
	Archived    bool        `json:"archived"`
	Disabled    bool        `json:"disabled"`
	Template    bool        `json:"is_template"`

	Enrichment
}

func (r Repository) Kind() ResultKind          { return KindRepositories }
func (r Repository) Link() string              { return r.URL }
func (r Repository) GetEnrichment() Enrichment { return r.Enrichment }
func (Repository) isEntity()                   {}

// WithEnrichment returns a copy of r carrying e.
func (r Repository) WithEnrichment(e Enrichment) Entity {
	r.Topics = append([]string{}, r.Topics...)
	r.Enrichment = e
	return r
}

// RepositoryRef is the repository a code hit belongs to.
type RepositoryRef struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	FullName string     `json:"full_name"`
	URL      string     `json:"html_url"`
	Owner    AccountRef `json:"owner"`
	Private  bool       `json:"private"`
}

// TextMatchSpan locates one matched term inside a fragment.
type TextMatchSpan struct {
	Text    string `json:"text"`
	Indices []int  `json:"indices"`
}

// TextMatch is a highlighted fragment returned with the text-match media type.
type TextMatch struct {
	ObjectURL  string          `json:"object_url"`
	ObjectType string          `json:"object_type"`
	Property   string          `json:"property"`
	Fragment   string          `json:"fragment"`
	Matches    []TextMatchSpan `json:"matches"`
}

// CodeResult is a code search hit.
type CodeResult struct {
	Name        string        `json:"name"`
	Path        string        `json:"path"`
	SHA         string        `json:"sha"`
	APIURL      string        `json:"url"`
	URL         string        `json:"html_url"`
	Repository  RepositoryRef `json:"repository"`
	Score       float64       `json:"score"`
	TextMatches []TextMatch   `json:"text_matches"`

	Enrichment
}

func (c CodeResult) Kind() ResultKind          { return KindCode }
func (c CodeResult) Link() string              { return c.URL }
func (c CodeResult) GetEnrichment() Enrichment { return c.Enrichment }
func (CodeResult) isEntity()                   {}

// WithEnrichment returns a copy of c carrying e.
func (c CodeResult) WithEnrichment(e Enrichment) Entity {
	c.TextMatches = append([]TextMatch{}, c.TextMatches...)
	c.Enrichment = e
	return c
}

// Label is an issue label.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// PullRequestRef links an issue hit to its pull request.
type PullRequestRef struct {
	URL      string `json:"url"`
	HTMLURL  string `json:"html_url"`
	DiffURL  string `json:"diff_url,omitempty"`
	PatchURL string `json:"patch_url,omitempty"`
}

// Issue is an issue or pull request search hit.
type Issue struct {
	ID            int64           `json:"id"`
	Number        int             `json:"number"`
	Title         string          `json:"title"`
	URL           string          `json:"html_url"`
	State         string          `json:"state"`
	Author        AccountRef      `json:"user"`
	Body          string          `json:"body,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
	ClosedAt      string          `json:"closed_at,omitempty"`
	RepositoryURL string          `json:"repository_url,omitempty"`
	Labels        []Label         `json:"labels"`
	Comments      int             `json:"comments"`
	PullRequest   *PullRequestRef `json:"pull_request,omitempty"`

	Enrichment
}

func (i Issue) Kind() ResultKind          { return KindIssues }
func (i Issue) Link() string              { return i.URL }
func (i Issue) GetEnrichment() Enrichment { return i.Enrichment }
func (Issue) isEntity()                   {}

// IsPullRequest reports whether the hit is a pull request.
func (i Issue) IsPullRequest() bool { return i.PullRequest != nil }

// WithEnrichment returns a copy of i carrying e.
func (i Issue) WithEnrichment(e Enrichment) Entity {
	i.Labels = append([]Label{}, i.Labels...)
	i.Enrichment = e
	return i
}

// User is a user or organisation search hit.
type User struct {
	ID          int64   `json:"id"`
	Login       string  `json:"login"`
	URL         string  `json:"html_url"`
	Type        string  `json:"type"`
	Score       float64 `json:"score"`
	Name        string  `json:"name,omitempty"`
	Company     string  `json:"company,omitempty"`
	Blog        string  `json:"blog,omitempty"`
	Location    string  `json:"location,omitempty"`
	Email       string  `json:"email,omitempty"`
	Bio         string  `json:"bio,omitempty"`
	PublicRepos int     `json:"public_repos"`
	PublicGists int     `json:"public_gists"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`

	Enrichment
}

func (u User) Kind() ResultKind          { return KindUsers }
func (u User) Link() string              { return u.URL }
func (u User) GetEnrichment() Enrichment { return u.Enrichment }
func (User) isEntity()                   {}

// WithEnrichment returns a copy of u carrying e.
func (u User) WithEnrichment(e Enrichment) Entity {
	u.Enrichment = e
	return u
}
