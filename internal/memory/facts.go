package memory

import (
	"strings"
	"time"
)

// Facts is the ordered fact collection, serialized as {"items": [...]}.
// Order is insertion order; nothing here persists to disk by itself.
type Facts struct {
	Items []*Fact `json:"items"`
}

// Remember appends a new fact and returns it.
func (f *Facts) Remember(subject, value, provenance string, d FactDetails) *Fact {
	fact := NewFact(subject, value, provenance, d)
	f.Items = append(f.Items, fact)
	return fact
}

// Forget soft-deletes every non-deleted fact whose subject contains the
// query, case-insensitively. An empty or whitespace-only query is a
// no-op returning 0.
func (f *Facts) Forget(query string) int {
	if strings.TrimSpace(query) == "" {
		return 0
	}
	q := strings.ToLower(query)
	deleted := 0
	for _, fact := range f.Items {
		if fact.Deleted {
			continue
		}
		if strings.Contains(strings.ToLower(fact.Subject), q) {
			at := time.Now().UTC()
			fact.Deleted = true
			fact.DeletedAt = &at
			deleted++
		}
	}
	return deleted
}

// FindMatching returns the non-deleted facts matching the query, in
// insertion order. A fact matches when the query is a substring of its
// subject, its subject is a substring of the query, or the query is a
// substring of its value. Matching is case-insensitive; no dedup, no
// ranking.
func (f *Facts) FindMatching(query string) []*Fact {
	q := strings.ToLower(query)
	var matches []*Fact
	for _, fact := range f.Items {
		if fact.Deleted {
			continue
		}
		subject := strings.ToLower(fact.Subject)
		value := strings.ToLower(fact.Value)
		if strings.Contains(subject, q) || strings.Contains(q, subject) {
			matches = append(matches, fact)
		} else if strings.Contains(value, q) {
			matches = append(matches, fact)
		}
	}
	return matches
}
