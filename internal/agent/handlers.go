package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeanpaul/axon/internal/memory"
	"github.com/jeanpaul/axon/internal/parse"
	"github.com/jeanpaul/axon/internal/search"
)

// Outcome is what one handled prompt produced: the response lines in
// order, the action recorded in the journal, and a tag per mutated
// record ("fact:<id>" or "preference:<category>:<item>").
type Outcome struct {
	Lines   []string
	Action  Intent
	Updates []string
}

// searchOutcome stores every search result as a web-provenance fact.
// The response names the provider so a mock stays distinguishable from
// a live lookup in the transcript.
func searchOutcome(mem *memory.Memory, providerName, query string, results []search.Result) Outcome {
	out := Outcome{Action: IntentSearch}
	for _, r := range results {
		provenance := r.Provenance
		if provenance == "" {
			provenance = memory.ProvenanceWeb
		}
		var link any
		if r.URL != "" {
			link = r.URL
		}
		fact := mem.RememberFact(r.Subject, r.Summary, provenance, memory.FactDetails{
			Confidence: r.Confidence,
			Metadata:   map[string]any{"url": link, "query": query},
		})
		out.Updates = append(out.Updates, "fact:"+fact.ID)
	}
	out.Lines = append(out.Lines, fmt.Sprintf("Résultat de recherche (%s) pour '%s'.", providerName, query))
	return out
}

func rememberOutcome(mem *memory.Memory, prompt string) Outcome {
	out := Outcome{Action: IntentRemember}
	statement, ok := parse.FactStatement(prompt)
	if !ok {
		out.Lines = append(out.Lines, "Je n'ai pas réussi à comprendre le fait à mémoriser.")
		return out
	}
	fact := mem.RememberFact(statement.Subject, statement.Value, memory.ProvenanceUser, memory.FactDetails{})
	out.Lines = append(out.Lines, fmt.Sprintf("Je mémorise que %s est %s (provenance utilisateur).", fact.Subject, fact.Value))
	out.Updates = append(out.Updates, "fact:"+fact.ID)
	return out
}

func preferenceOutcome(mem *memory.Memory, prompt string) Outcome {
	out := Outcome{Action: IntentPrefer}
	pref, ok := parse.PreferenceStatement(prompt)
	if !ok {
		out.Lines = append(out.Lines, "Je n'ai pas compris la préférence à enregistrer.")
		return out
	}
	mem.RememberPreference(pref.Category, pref.Item, pref.Opinion)
	out.Lines = append(out.Lines, fmt.Sprintf("Préférence enregistrée pour %s dans %s.", pref.Item, pref.Category))
	out.Updates = append(out.Updates, "preference:"+pref.Category+":"+pref.Item)
	return out
}

func forgetOutcome(mem *memory.Memory, prompt string) Outcome {
	out := Outcome{Action: IntentForget}
	query := strings.TrimSpace(parse.AfterKeyword(prompt, "oublie"))
	if query == "" {
		out.Lines = append(out.Lines, "Précise ce que je dois oublier.")
		return out
	}
	deleted := mem.ForgetFacts(query)
	if deleted > 0 {
		out.Lines = append(out.Lines, fmt.Sprintf("%d fait(s) marqué(s) comme oublié(s) pour '%s'.", deleted, query))
	} else {
		out.Lines = append(out.Lines, "Aucun fait correspondant à oublier.")
	}
	return out
}

// answerOutcome is the fallback: reply from stored facts, one line per
// match, without mutating anything.
func answerOutcome(mem *memory.Memory, prompt string) Outcome {
	out := Outcome{Action: IntentAnswer}
	subject, ok := parse.QuestionSubject(prompt)
	if !ok {
		out.Lines = append(out.Lines, "Je suis prêt à apprendre ou à répondre selon les instructions.")
		return out
	}
	matches := mem.FindMatching(subject)
	if len(matches) == 0 {
		out.Lines = append(out.Lines, "Je n'ai aucun fait correspondant en mémoire.")
		return out
	}
	for _, fact := range matches {
		source := fact.Provenance
		if source == "" {
			source = "inconnue"
		}
		out.Lines = append(out.Lines, fmt.Sprintf("Selon %s: %s = %s [%s].",
			source, fact.Subject, fact.Value, fact.AddedAt.Format(time.RFC3339)))
	}
	return out
}
