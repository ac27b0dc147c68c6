// Package parse extracts structured data from free-text prompts using
// the fixed French trigger heuristics. All functions are pure: malformed
// input yields a no-match result, never an error.
package parse

import (
	"regexp"
	"strings"
)

// Statement is a parsed fact statement.
type Statement struct {
	Subject string
	Value   string
}

// Preference is a parsed opinion statement.
type Preference struct {
	Category string
	Item     string
	Opinion  string
}

var (
	queryRe      = regexp.MustCompile(`(?i)(?:cherche|google|web)\s+(.*)`)
	factPrefixRe = regexp.MustCompile(`(?i)^(?:apprends que|tiens sache que)\s+`)
	factRe       = regexp.MustCompile(`(?i)(.+?)\s+est\s+(.+)`)
	likeRe       = regexp.MustCompile(`(?i)j'aime\s+(.+)`)
	dislikeRe    = regexp.MustCompile(`(?i)je n'aime pas\s+(.+)`)

	// Tried in order against the lowercased, punctuation-trimmed prompt.
	questionRes = []*regexp.Regexp{
		regexp.MustCompile(`qui est\s+(.+)`),
		regexp.MustCompile(`qu'est-ce que\s+(.+)`),
		regexp.MustCompile(`quel est\s+(.+)`),
	}
)

// SearchQuery extracts the query following a search trigger word, or the
// whole trimmed prompt when no trigger-plus-remainder is present.
func SearchQuery(prompt string) string {
	if m := queryRe.FindStringSubmatch(prompt); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(prompt)
}

// FactStatement parses a "<subject> est <value>" statement, after removing
// one leading teach-me trigger phrase. When no "est" split exists but the
// residual text is non-empty, the residual becomes both subject and value.
func FactStatement(prompt string) (Statement, bool) {
	cleaned := strings.TrimSpace(factPrefixRe.ReplaceAllString(prompt, ""))
	if m := factRe.FindStringSubmatch(cleaned); m != nil {
		return Statement{
			Subject: strings.TrimSpace(m[1]),
			Value:   strings.Trim(m[2], " ."),
		}, true
	}
	if cleaned != "" {
		return Statement{Subject: cleaned, Value: cleaned}, true
	}
	return Statement{}, false
}

// PreferenceStatement parses an opinion statement. Patterns are tried in
// fixed priority order: explicit "mon avis", then "j'aime", then
// "je n'aime pas". The dislike phrase gets its own pattern; the like
// pattern cannot fire on it since "j'aime" is not a substring of
// "je n'aime pas".
func PreferenceStatement(prompt string) (Preference, bool) {
	if strings.Contains(strings.ToLower(prompt), "mon avis") {
		after := strings.Trim(AfterKeyword(prompt, "mon avis"), " :")
		if after == "" {
			return Preference{}, false
		}
		return Preference{Category: "general", Item: after, Opinion: after}, true
	}
	if m := likeRe.FindStringSubmatch(prompt); m != nil {
		return Preference{Category: "likes", Item: strings.Trim(m[1], " ."), Opinion: "like"}, true
	}
	if m := dislikeRe.FindStringSubmatch(prompt); m != nil {
		return Preference{Category: "dislikes", Item: strings.Trim(m[1], " ."), Opinion: "dislike"}, true
	}
	return Preference{}, false
}

// QuestionSubject extracts what a question asks about. It lowercases the
// prompt, trims surrounding " ?!." characters, and tries the question
// patterns in order; when none match, the whole trimmed text is the
// subject. No match only when nothing remains.
func QuestionSubject(prompt string) (string, bool) {
	q := strings.Trim(strings.ToLower(prompt), " ?!.")
	for _, re := range questionRes {
		if m := re.FindStringSubmatch(q); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	if q == "" {
		return "", false
	}
	return q, true
}

// AfterKeyword returns the text following the first case-insensitive
// occurrence of keyword in prompt, original casing preserved. Empty when
// the keyword is absent.
func AfterKeyword(prompt, keyword string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
	loc := re.FindStringIndex(prompt)
	if loc == nil {
		return ""
	}
	return prompt[loc[1]:]
}
