package agent

import "strings"

// Intent names the action a prompt triggers. The string value is what
// the journal records.
type Intent string

const (
	IntentSearch   Intent = "search_web"
	IntentRemember Intent = "remember_fact"
	IntentPrefer   Intent = "remember_preference"
	IntentForget   Intent = "forget_fact"
	IntentAnswer   Intent = "answer"
)

// Rule binds an intent to the keywords that trigger it. A keyword
// matches anywhere in the lowered prompt, not just at word boundaries.
type Rule struct {
	Intent   Intent
	Triggers []string
}

// DefaultRules returns the dispatch table in priority order: search
// outranks teaching, teaching outranks opinions, opinions outrank
// forgetting. Everything else is answered from memory.
func DefaultRules() []Rule {
	return []Rule{
		{Intent: IntentSearch, Triggers: []string{"cherche", "google", "web"}},
		{Intent: IntentRemember, Triggers: []string{"apprends que", "tiens sache que"}},
		{Intent: IntentPrefer, Triggers: []string{"mon avis", "j'aime", "je n'aime pas"}},
		{Intent: IntentForget, Triggers: []string{"oublie"}},
	}
}

// Classify lowers and trims the prompt, then walks the rules in order.
// The first rule with any trigger present wins; no rule means
// IntentAnswer. The lowered form is returned alongside.
func Classify(prompt string, rules []Rule) (Intent, string) {
	lowered := strings.ToLower(strings.TrimSpace(prompt))
	for _, rule := range rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lowered, trigger) {
				return rule.Intent, lowered
			}
		}
	}
	return IntentAnswer, lowered
}
