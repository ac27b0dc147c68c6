package parse

import "testing"

func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"trigger with remainder", "Cherche la météo à Paris", "la météo à Paris"},
		{"google trigger", "google meilleur restaurant lyon", "meilleur restaurant lyon"},
		{"web trigger uppercase", "WEB golang generics", "golang generics"},
		{"trigger without remainder", "cherche", "cherche"},
		{"no trigger falls back to prompt", "  la tour Eiffel  ", "la tour Eiffel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchQuery(tt.prompt); got != tt.want {
				t.Errorf("SearchQuery(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestFactStatement(t *testing.T) {
	tests := []struct {
		name        string
		prompt      string
		wantSubject string
		wantValue   string
		wantOK      bool
	}{
		{
			name:        "canonical apprends que",
			prompt:      "Apprends que Paris est la capitale de la France",
			wantSubject: "Paris",
			wantValue:   "la capitale de la France",
			wantOK:      true,
		},
		{
			name:        "tiens sache que variant",
			prompt:      "Tiens sache que le soleil est une étoile",
			wantSubject: "le soleil",
			wantValue:   "une étoile",
			wantOK:      true,
		},
		{
			name:        "trailing period trimmed from value",
			prompt:      "apprends que l'eau est un liquide.",
			wantSubject: "l'eau",
			wantValue:   "un liquide",
			wantOK:      true,
		},
		{
			name:        "lazy subject keeps later est in value",
			prompt:      "apprends que le chat est un animal qui est souple",
			wantSubject: "le chat",
			wantValue:   "un animal qui est souple",
			wantOK:      true,
		},
		{
			name:        "uppercase trigger and est",
			prompt:      "APPRENDS QUE Mars EST rouge",
			wantSubject: "Mars",
			wantValue:   "rouge",
			wantOK:      true,
		},
		{
			name:        "degenerate statement without est",
			prompt:      "apprends que le théorème de Pythagore",
			wantSubject: "le théorème de Pythagore",
			wantValue:   "le théorème de Pythagore",
			wantOK:      true,
		},
		{
			name:   "empty residual",
			prompt: "apprends que   ",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FactStatement(tt.prompt)
			if ok != tt.wantOK {
				t.Fatalf("FactStatement(%q) ok = %v, want %v", tt.prompt, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", got.Subject, tt.wantSubject)
			}
			if got.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", got.Value, tt.wantValue)
			}
		})
	}
}

func TestPreferenceStatement(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   Preference
		wantOK bool
	}{
		{
			name:   "mon avis with colon",
			prompt: "Mon avis : les chats sont adorables",
			want:   Preference{Category: "general", Item: "les chats sont adorables", Opinion: "les chats sont adorables"},
			wantOK: true,
		},
		{
			name:   "like",
			prompt: "J'aime le chocolat",
			want:   Preference{Category: "likes", Item: "le chocolat", Opinion: "like"},
			wantOK: true,
		},
		{
			name:   "like trailing period",
			prompt: "j'aime les croissants.",
			want:   Preference{Category: "likes", Item: "les croissants", Opinion: "like"},
			wantOK: true,
		},
		{
			name:   "dislike",
			prompt: "Je n'aime pas le brocoli",
			want:   Preference{Category: "dislikes", Item: "le brocoli", Opinion: "dislike"},
			wantOK: true,
		},
		{
			name:   "mon avis empty",
			prompt: "Mon avis :",
			wantOK: false,
		},
		{
			name:   "no pattern",
			prompt: "les pommes",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PreferenceStatement(tt.prompt)
			if ok != tt.wantOK {
				t.Fatalf("PreferenceStatement(%q) ok = %v, want %v", tt.prompt, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("PreferenceStatement(%q) = %+v, want %+v", tt.prompt, got, tt.want)
			}
		})
	}
}

// The dislike phrase textually resembles the like trigger; it must never
// be parsed as a like.
func TestDislikeNeverParsedAsLike(t *testing.T) {
	prompts := []string{
		"Je n'aime pas le brocoli",
		"je n'aime pas attendre",
		"JE N'AIME PAS les lundis.",
	}
	for _, p := range prompts {
		got, ok := PreferenceStatement(p)
		if !ok {
			t.Fatalf("PreferenceStatement(%q) did not match", p)
		}
		if got.Category != "dislikes" || got.Opinion != "dislike" {
			t.Errorf("PreferenceStatement(%q) = %+v, want dislikes/dislike", p, got)
		}
	}
}

func TestQuestionSubject(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
		wantOK bool
	}{
		{"qui est", "Qui est Paris ?", "paris", true},
		{"qu'est-ce que", "Qu'est-ce que le Louvre ?", "le louvre", true},
		{"quel est", "Quel est le sens de la vie ?!", "le sens de la vie", true},
		{"fallback whole prompt", "Paris", "paris", true},
		{"fallback trims punctuation", "la tour Eiffel...", "la tour eiffel", true},
		{"empty", "", "", false},
		{"punctuation only", " ?!. ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := QuestionSubject(tt.prompt)
			if ok != tt.wantOK {
				t.Fatalf("QuestionSubject(%q) ok = %v, want %v", tt.prompt, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("QuestionSubject(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestAfterKeyword(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		keyword string
		want    string
	}{
		{"basic", "Oublie Paris", "oublie", " Paris"},
		{"case insensitive", "OUBLIE tout ça", "oublie", " tout ça"},
		{"keyword absent", "bonjour", "oublie", ""},
		{"mon avis remainder", "Mon avis : super", "mon avis", " : super"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AfterKeyword(tt.prompt, tt.keyword); got != tt.want {
				t.Errorf("AfterKeyword(%q, %q) = %q, want %q", tt.prompt, tt.keyword, got, tt.want)
			}
		})
	}
}
