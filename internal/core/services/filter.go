package services

import (
	"strings"
	"time"

	"github.com/custodia-labs/sercha-hub/internal/core/domain"
)

// FilterOptions bounds a content filter. Nil fields are not applied.
type FilterOptions struct {
	MinDate  *time.Time
	MaxDate  *time.Time
	MinScore *float64
}

// FilterContent keeps the items that fall inside opts, preserving order.
// An item whose published date is missing or unparsable is never excluded
// by a date bound.
func FilterContent(items []domain.ScoredContentItem, opts FilterOptions) []domain.ScoredContentItem {
	out := make([]domain.ScoredContentItem, 0, len(items))
	for _, it := range items {
		if opts.MinScore != nil && it.Score < *opts.MinScore {
			continue
		}
		if published, ok := ParseContentDate(it.PublishedDate); ok {
			if opts.MinDate != nil && published.Before(truncateDay(*opts.MinDate)) {
				continue
			}
			if opts.MaxDate != nil && published.After(truncateDay(*opts.MaxDate)) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// ParseContentDate parses a YYYY-MM-DD or RFC 3339 date and truncates it
// to the day.
func ParseContentDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return truncateDay(t), true
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
