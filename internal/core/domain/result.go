package domain

import (
	"encoding/json"
	"fmt"
)

// DefaultPerPage is the page size used when the caller does not give one.
const DefaultPerPage = 10

// ResultSet is one page of primary search results. Exactly one entity kind
// is populated and it is always the one named by Kind.
type ResultSet struct {
	Query      string
	Kind       ResultKind
	TotalCount int
	Page       int
	PerPage    int

	items []Entity
}

// NewResultSet builds a result set. Every item must belong to kind.
// Page and perPage below 1 are clamped to 1 and totalCount below 0 to 0.
func NewResultSet(query string, kind ResultKind, totalCount, page, perPage int, items []Entity) (*ResultSet, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: result kind %q", ErrUnsupportedType, kind)
	}
	for i, it := range items {
		if it == nil || it.Kind() != kind {
			return nil, fmt.Errorf("%w: item %d does not belong to %s", ErrInvalidInput, i, kind)
		}
	}
	if totalCount < 0 {
		totalCount = 0
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	return &ResultSet{
		Query:      query,
		Kind:       kind,
		TotalCount: totalCount,
		Page:       page,
		PerPage:    perPage,
		items:      append([]Entity{}, items...),
	}, nil
}

// HasNextPage reports whether results exist beyond the current page.
func (r *ResultSet) HasNextPage() bool {
	return r.TotalCount > r.Page*r.PerPage
}

// Len returns the number of entities in the set.
func (r *ResultSet) Len() int {
	return len(r.items)
}

// Items returns a copy of the active entity list.
func (r *ResultSet) Items() []Entity {
	return append([]Entity{}, r.items...)
}

// WithEnrichments returns a new result set where the entity at each index
// of updates carries the given enrichment. The receiver is not modified.
func (r *ResultSet) WithEnrichments(updates map[int]Enrichment) *ResultSet {
	out := *r
	out.items = make([]Entity, len(r.items))
	for i, it := range r.items {
		if e, ok := updates[i]; ok {
			out.items[i] = it.WithEnrichment(e)
			continue
		}
		out.items[i] = it
	}
	return &out
}

// Repositories returns the repository hits, or an empty slice when Kind is
// not repositories.
func (r *ResultSet) Repositories() []Repository {
	return collect[Repository](r, KindRepositories)
}

// Code returns the code hits, or an empty slice when Kind is not code.
func (r *ResultSet) Code() []CodeResult {
	return collect[CodeResult](r, KindCode)
}

// Issues returns the issue hits, or an empty slice when Kind is not issues.
func (r *ResultSet) Issues() []Issue {
	return collect[Issue](r, KindIssues)
}

// Users returns the user hits, or an empty slice when Kind is not users.
func (r *ResultSet) Users() []User {
	return collect[User](r, KindUsers)
}

func collect[T Entity](r *ResultSet, kind ResultKind) []T {
	out := make([]T, 0, len(r.items))
	if r.Kind != kind {
		return out
	}
	for _, it := range r.items {
		if v, ok := it.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

type resultSetJSON struct {
	Query       string     `json:"query"`
	Kind        ResultKind `json:"type"`
	TotalCount  int        `json:"total_count"`
	Page        int        `json:"page"`
	PerPage     int        `json:"per_page"`
	HasNextPage bool       `json:"has_next_page"`
	Items       []Entity   `json:"items"`
}

// MarshalJSON renders the set with its derived pagination flag.
func (r *ResultSet) MarshalJSON() ([]byte, error) {
	items := r.items
	if items == nil {
		items = []Entity{}
	}
	return json.Marshal(resultSetJSON{
		Query:       r.Query,
		Kind:        r.Kind,
		TotalCount:  r.TotalCount,
		Page:        r.Page,
		PerPage:     r.PerPage,
		HasNextPage: r.HasNextPage(),
		Items:       items,
	})
}
