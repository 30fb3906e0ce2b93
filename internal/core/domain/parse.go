package domain

import (
	"encoding/json"
	"fmt"
)

// The parsers below decode one raw GitHub search item. Absent scalars keep
// their zero value and absent collections become empty slices; only
// malformed JSON is an error. Enrichment is always reset, so a payload can
// never pre-populate it.

// ParseRepository decodes a repository search item.
func ParseRepository(raw json.RawMessage) (Repository, error) {
	var r Repository
	if err := decodeItem(raw, &r); err != nil {
		return Repository{}, fmt.Errorf("parse repository: %w", err)
	}
	if r.Topics == nil {
		r.Topics = []string{}
	}
	r.Enrichment = Enrichment{}
	return r, nil
}

// ParseCode decodes a code search item.
func ParseCode(raw json.RawMessage) (CodeResult, error) {
	var c CodeResult
	if err := decodeItem(raw, &c); err != nil {
		return CodeResult{}, fmt.Errorf("parse code result: %w", err)
	}
	if c.TextMatches == nil {
		c.TextMatches = []TextMatch{}
	}
	for i := range c.TextMatches {
		if c.TextMatches[i].Matches == nil {
			c.TextMatches[i].Matches = []TextMatchSpan{}
		}
	}
	c.Enrichment = Enrichment{}
	return c, nil
}

// ParseIssue decodes an issue search item.
func ParseIssue(raw json.RawMessage) (Issue, error) {
	var i Issue
	if err := decodeItem(raw, &i); err != nil {
		return Issue{}, fmt.Errorf("parse issue: %w", err)
	}
	if i.Labels == nil {
		i.Labels = []Label{}
	}
	i.Enrichment = Enrichment{}
	return i, nil
}

// ParseUser decodes a user search item.
func ParseUser(raw json.RawMessage) (User, error) {
	var u User
	if err := decodeItem(raw, &u); err != nil {
		return User{}, fmt.Errorf("parse user: %w", err)
	}
	u.Enrichment = Enrichment{}
	return u, nil
}

// ParseEntity decodes raw with the parser selected by kind.
func ParseEntity(kind ResultKind, raw json.RawMessage) (Entity, error) {
	switch kind {
	case KindRepositories:
		return ParseRepository(raw)
	case KindCode:
		return ParseCode(raw)
	case KindIssues:
		return ParseIssue(raw)
	case KindUsers:
		return ParseUser(raw)
	default:
		return nil, fmt.Errorf("%w: result kind %q", ErrUnsupportedType, kind)
	}
}

// ParseEntities decodes every item of a search page.
func ParseEntities(kind ResultKind, items []json.RawMessage) ([]Entity, error) {
	out := make([]Entity, 0, len(items))
	for idx, raw := range items {
		e, err := ParseEntity(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", idx, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeItem(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty item")
	}
	return json.Unmarshal(raw, v)
}
