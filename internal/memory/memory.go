// Package memory holds the agent's knowledge base: an ordered fact
// collection with soft-delete semantics and a category/item preference
// map. The aggregate is plain data; persistence lives in
// internal/storage.
package memory

import "encoding/json"

// Memory is the aggregate persisted state, loaded fully at the start of
// an interaction and flushed fully at the end.
type Memory struct {
	Facts       Facts       `json:"facts"`
	Preferences Preferences `json:"preferences"`
}

// New returns an empty aggregate with non-nil collections.
func New() *Memory {
	return &Memory{
		Facts:       Facts{Items: []*Fact{}},
		Preferences: Preferences{},
	}
}

// RememberFact stores a fact in memory only; the caller persists.
func (m *Memory) RememberFact(subject, value, provenance string, d FactDetails) *Fact {
	return m.Facts.Remember(subject, value, provenance, d)
}

// RememberPreference upserts an opinion in memory only.
func (m *Memory) RememberPreference(category, item, opinion string) Preference {
	if m.Preferences == nil {
		m.Preferences = Preferences{}
	}
	return m.Preferences.Set(category, item, opinion)
}

// ForgetFacts soft-deletes facts whose subject contains the query and
// returns how many were marked.
func (m *Memory) ForgetFacts(query string) int {
	return m.Facts.Forget(query)
}

// FindMatching looks up non-deleted facts for a query.
func (m *Memory) FindMatching(query string) []*Fact {
	return m.Facts.FindMatching(query)
}

// Clone returns a deep copy of the aggregate. The state is JSON-shaped
// by construction, so a marshal round-trip copies every level.
func (m *Memory) Clone() *Memory {
	clone := New()
	data, err := json.Marshal(m)
	if err != nil {
		return clone
	}
	if err := json.Unmarshal(data, clone); err != nil {
		return New()
	}
	return clone
}
