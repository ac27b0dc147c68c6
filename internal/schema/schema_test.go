package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jeanpaul/axon/internal/memory"
)

func TestValidateFactsAcceptsStoreOutput(t *testing.T) {
	mem := memory.New()
	notes := "note"
	mem.RememberFact("Paris", "la capitale", "user", memory.FactDetails{
		Notes:    &notes,
		Tags:     []string{"geo"},
		Metadata: map[string]any{"query": "paris"},
	})
	mem.ForgetFacts("Paris")
	mem.RememberFact("le soleil", "une étoile", "web", memory.FactDetails{})

	doc, err := json.Marshal(mem.Facts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := NewValidator().ValidateFacts(doc); err != nil {
		t.Errorf("real store output rejected: %v", err)
	}
}

func TestValidateFactsRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing items", `{}`, "items"},
		{"confidence above one", `{"items": [{"id": "a", "subject": "s", "value": "v", "provenance": "user", "confidence": 1.5, "added_at": "t", "tags": [], "deleted": false, "metadata": {}}]}`, "confidence"},
		{"missing id", `{"items": [{"subject": "s", "value": "v", "provenance": "user", "confidence": 0.5, "added_at": "t", "tags": [], "deleted": false, "metadata": {}}]}`, "id"},
		{"tags not a list", `{"items": [{"id": "a", "subject": "s", "value": "v", "provenance": "user", "confidence": 0.5, "added_at": "t", "tags": "geo", "deleted": false, "metadata": {}}]}`, "tags"},
	}
	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateFacts([]byte(tt.doc))
			if err == nil {
				t.Fatal("invalid document accepted")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidatePreferences(t *testing.T) {
	mem := memory.New()
	mem.RememberPreference("likes", "le chocolat", "like")
	doc, err := json.Marshal(mem.Preferences)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	v := NewValidator()
	if err := v.ValidatePreferences(doc); err != nil {
		t.Errorf("real store output rejected: %v", err)
	}
	if err := v.ValidatePreferences([]byte(`{}`)); err != nil {
		t.Errorf("empty map rejected: %v", err)
	}
	if err := v.ValidatePreferences([]byte(`{"likes": {"x": {"added_at": "t"}}}`)); err == nil {
		t.Error("entry without opinion accepted")
	}
}
