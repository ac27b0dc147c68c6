package memory

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestNewFactConfidence(t *testing.T) {
	tests := []struct {
		name       string
		provenance string
		details    FactDetails
		want       float64
	}{
		{"user default", "user", FactDetails{}, 0.2},
		{"web default", "web", FactDetails{}, 0.8},
		{"unknown provenance", "imported", FactDetails{}, 0.5},
		{"explicit wins over user", "user", FactDetails{Confidence: floatPtr(0.9)}, 0.9},
		{"explicit wins over web", "web", FactDetails{Confidence: floatPtr(0.1)}, 0.1},
		{"explicit zero wins", "web", FactDetails{Confidence: floatPtr(0)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fact := NewFact("s", "v", tt.provenance, tt.details)
			if fact.Confidence != tt.want {
				t.Errorf("confidence = %v, want %v", fact.Confidence, tt.want)
			}
		})
	}
}

func TestNewFactShape(t *testing.T) {
	fact := NewFact("  Paris  ", " la capitale .  ", "user", FactDetails{})
	if fact.ID == "" {
		t.Error("fact has empty ID")
	}
	if fact.Subject != "Paris" {
		t.Errorf("subject = %q, want trimmed %q", fact.Subject, "Paris")
	}
	if fact.Value != "la capitale ." {
		t.Errorf("value = %q, want %q", fact.Value, "la capitale .")
	}
	if fact.Tags == nil || fact.Metadata == nil {
		t.Error("tags and metadata must default to empty, not nil")
	}
	if fact.Deleted || fact.DeletedAt != nil {
		t.Error("new fact must not be deleted")
	}
	if fact.AddedAt.IsZero() || fact.AddedAt.Location() != time.UTC {
		t.Error("added_at must be a UTC timestamp")
	}
}

func TestFactIDsUnique(t *testing.T) {
	var facts Facts
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		fact := facts.Remember("s", "v", "user", FactDetails{})
		if seen[fact.ID] {
			t.Fatalf("duplicate fact ID %q", fact.ID)
		}
		seen[fact.ID] = true
	}
}

func TestForget(t *testing.T) {
	newStore := func() *Facts {
		f := &Facts{}
		f.Remember("Paris", "la capitale de la France", "user", FactDetails{})
		f.Remember("le soleil", "une étoile", "user", FactDetails{})
		return f
	}

	t.Run("matching subject", func(t *testing.T) {
		f := newStore()
		if got := f.Forget("paris"); got != 1 {
			t.Fatalf("Forget = %d, want 1", got)
		}
		if !f.Items[0].Deleted || f.Items[0].DeletedAt == nil {
			t.Error("matched fact not marked deleted with timestamp")
		}
		if f.Items[1].Deleted {
			t.Error("unmatched fact was deleted")
		}
	})

	t.Run("empty query is a no-op", func(t *testing.T) {
		f := newStore()
		if got := f.Forget(""); got != 0 {
			t.Errorf("Forget(\"\") = %d, want 0", got)
		}
		if got := f.Forget("   "); got != 0 {
			t.Errorf("Forget(whitespace) = %d, want 0", got)
		}
		for _, fact := range f.Items {
			if fact.Deleted {
				t.Error("no-op query mutated the store")
			}
		}
	})

	t.Run("already deleted facts are skipped", func(t *testing.T) {
		f := newStore()
		f.Forget("paris")
		if got := f.Forget("paris"); got != 0 {
			t.Errorf("second Forget = %d, want 0", got)
		}
	})

	t.Run("only subject-contains-query direction", func(t *testing.T) {
		// FindMatching is symmetric, Forget is not: an over-specified
		// query does not delete a shorter subject.
		f := newStore()
		if got := f.Forget("Paris, France"); got != 0 {
			t.Errorf("Forget(over-specified) = %d, want 0", got)
		}
		if got := f.Forget("étoile"); got != 0 {
			t.Errorf("Forget(value text) = %d, want 0", got)
		}
	})
}

func TestFindMatching(t *testing.T) {
	f := &Facts{}
	paris := f.Remember("Paris", "la capitale de la France", "user", FactDetails{})
	f.Remember("France", "un pays d'Europe", "user", FactDetails{})

	t.Run("symmetric substring", func(t *testing.T) {
		for _, q := range []string{"Paris", "par", "Paris, France"} {
			got := f.FindMatching(q)
			found := false
			for _, m := range got {
				if m.ID == paris.ID {
					found = true
				}
			}
			if !found {
				t.Errorf("FindMatching(%q) missed subject %q", q, "Paris")
			}
		}
		for _, m := range f.FindMatching("Pa") {
			if m.Subject == "France" {
				t.Error(`subject "France" must not match query "Pa"`)
			}
		}
	})

	t.Run("value substring", func(t *testing.T) {
		got := f.FindMatching("capitale")
		if len(got) != 1 || got[0].ID != paris.ID {
			t.Errorf("FindMatching(value text) = %d facts, want the Paris fact", len(got))
		}
	})

	t.Run("insertion order preserved", func(t *testing.T) {
		g := &Facts{}
		g.Remember("chat noir", "un animal", "user", FactDetails{})
		g.Remember("chat blanc", "un animal", "user", FactDetails{})
		got := g.FindMatching("chat")
		if len(got) != 2 {
			t.Fatalf("FindMatching = %d facts, want 2", len(got))
		}
		if got[0].Subject != "chat noir" || got[1].Subject != "chat blanc" {
			t.Error("matches not in insertion order")
		}
	})

	t.Run("soft-deleted facts never surface", func(t *testing.T) {
		g := &Facts{}
		g.Remember("Paris", "la capitale", "user", FactDetails{})
		g.Forget("Paris")
		for _, q := range []string{"Paris", "par", "capitale", ""} {
			if got := g.FindMatching(q); len(got) != 0 {
				t.Errorf("FindMatching(%q) returned %d deleted facts", q, len(got))
			}
		}
	})
}

func TestMemoryClone(t *testing.T) {
	m := New()
	fact := m.RememberFact("Paris", "la capitale", "user", FactDetails{
		Tags:     []string{"geo"},
		Metadata: map[string]any{"query": "paris"},
	})
	m.RememberPreference("likes", "le chocolat", "like")

	clone := m.Clone()

	if len(clone.Facts.Items) != 1 || clone.Facts.Items[0].ID != fact.ID {
		t.Fatal("clone missing fact")
	}
	if !clone.Facts.Items[0].AddedAt.Equal(fact.AddedAt) {
		t.Error("clone timestamp drifted")
	}

	// Mutations on the clone must not leak back.
	clone.Facts.Items[0].Subject = "mutated"
	clone.Facts.Items[0].Tags[0] = "mutated"
	clone.Facts.Items[0].Metadata["query"] = "mutated"
	clone.RememberPreference("likes", "le chocolat", "dislike")

	if m.Facts.Items[0].Subject != "Paris" {
		t.Error("clone shares fact struct with original")
	}
	if m.Facts.Items[0].Tags[0] != "geo" {
		t.Error("clone shares tags slice with original")
	}
	if m.Facts.Items[0].Metadata["query"] != "paris" {
		t.Error("clone shares metadata map with original")
	}
	if m.Preferences["likes"]["le chocolat"].Opinion != "like" {
		t.Error("clone shares preference map with original")
	}
}
