package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ResultKind selects the GitHub search endpoint and the entity variant
// carried by a ResultSet.
type ResultKind string

const (
	// KindRepositories searches repositories.
	KindRepositories ResultKind = "repositories"
	// KindCode searches file contents.
	KindCode ResultKind = "code"
	// KindIssues searches issues and pull requests.
	KindIssues ResultKind = "issues"
	// KindUsers searches users and organisations.
	KindUsers ResultKind = "users"
)

// AllResultKinds returns every supported kind.
func AllResultKinds() []ResultKind {
	return []ResultKind{KindRepositories, KindCode, KindIssues, KindUsers}
}

// Valid reports whether k is a supported kind.
func (k ResultKind) Valid() bool {
	switch k {
	case KindRepositories, KindCode, KindIssues, KindUsers:
		return true
	}
	return false
}

// ParseResultKind parses a kind name. An empty string selects repositories.
func ParseResultKind(s string) (ResultKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindRepositories, nil
	}
	k := ResultKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: result kind %q", ErrUnsupportedType, s)
	}
	return k, nil
}

// Range is an optional numeric bound pair. Either side may be nil;
// both nil means unconstrained.
type Range struct {
	Min *int
	Max *int
}

// NewRange builds a range from optional bounds.
func NewRange(lo, hi *int) Range {
	return Range{Min: lo, Max: hi}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// IsZero reports whether neither bound is set.
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// ParseRange parses raw form bounds. A blank bound is absent. If either
// bound is not an integer the whole range degrades to unconstrained.
func ParseRange(lo, hi string) Range {
	minV, okMin := parseBound(lo)
	maxV, okMax := parseBound(hi)
	if !okMin || !okMax {
		return Range{}
	}
	return Range{Min: minV, Max: maxV}
}

func parseBound(s string) (*int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// RangeFromValues converts a decoded JSON pair [min, max] into a Range.
// Elements may be numbers, numeric strings or null. Any other shape yields
// an unconstrained range.
func RangeFromValues(values []any) Range {
	if len(values) != 2 {
		return Range{}
	}
	minV, okMin := boundFromValue(values[0])
	maxV, okMax := boundFromValue(values[1])
	if !okMin || !okMax {
		return Range{}
	}
	return Range{Min: minV, Max: maxV}
}

func boundFromValue(v any) (*int, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case int:
		return &t, true
	case int64:
		n := int(t)
		return &n, true
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return nil, false
		}
		n := int(t)
		return &n, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, false
		}
		return &n, true
	default:
		return nil, false
	}
}

// ParameterSet is a validated structured search request.
// Construct it once per request with NewParameterSet and do not modify it
// after handing it to a search client.
type ParameterSet struct {
	Query        string
	Kind         ResultKind
	Language     string
	Stars        Range
	Forks        Range
	Created      string
	Pushed       string
	Owner        string
	Organization string
	PublicOnly   bool
	IncludeForks bool

	Topics         []string
	Subtopics      []string
	Tags           []string
	ExcludedTopics []string
}

// NewParameterSet returns a parameter set with the documented defaults:
// repositories, public only, forks excluded, empty lists.
func NewParameterSet(query string) ParameterSet {
	return ParameterSet{
		Query:          query,
		Kind:           KindRepositories,
		PublicOnly:     true,
		Topics:         []string{},
		Subtopics:      []string{},
		Tags:           []string{},
		ExcludedTopics: []string{},
	}
}

// Normalized returns a copy with list fields cleaned and never nil.
func (p ParameterSet) Normalized() ParameterSet {
	p.Topics = CleanList(p.Topics)
	p.Subtopics = CleanList(p.Subtopics)
	p.Tags = CleanList(p.Tags)
	p.ExcludedTopics = CleanList(p.ExcludedTopics)
	if p.Kind == "" {
		p.Kind = KindRepositories
	}
	return p
}

// Validate checks the parameter set before compilation.
func (p ParameterSet) Validate() error {
	if strings.TrimSpace(p.Query) == "" {
		return NewSearchError("validate parameters", ErrInvalidInput, fmt.Errorf("query is required"))
	}
	if !p.Kind.Valid() {
		return NewSearchError("validate parameters", ErrInvalidInput, fmt.Errorf("unknown result kind %q", p.Kind))
	}
	return nil
}

// SplitList parses a comma-separated list, trimming entries and dropping
// empty ones. It never returns nil.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return CleanList(strings.Split(s, ","))
}

// CleanList trims every entry and drops empty ones. It never returns nil.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
