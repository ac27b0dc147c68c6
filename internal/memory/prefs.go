package memory

import "time"

// Preference is one stored opinion.
type Preference struct {
	Opinion string    `json:"opinion"`
	AddedAt time.Time `json:"added_at"`
}

// Preferences maps category → item → opinion entry.
type Preferences map[string]map[string]Preference

// Set upserts the (category, item) entry. Last write wins, no history.
func (p Preferences) Set(category, item, opinion string) Preference {
	block, ok := p[category]
	if !ok {
		block = map[string]Preference{}
		p[category] = block
	}
	entry := Preference{Opinion: opinion, AddedAt: time.Now().UTC()}
	block[item] = entry
	return entry
}
