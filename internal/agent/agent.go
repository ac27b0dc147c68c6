// Package agent implements the prompt lifecycle: classify the prompt,
// apply the matching memory transition, persist the whole state, and
// journal the interaction. Every prompt runs under the storage lock so
// concurrent processes serialize cleanly.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeanpaul/axon/internal/memory"
	"github.com/jeanpaul/axon/internal/parse"
	"github.com/jeanpaul/axon/internal/search"
	"github.com/jeanpaul/axon/internal/storage"
)

// Agent drives the classify-mutate-persist loop over one storage root.
type Agent struct {
	store  *storage.Store
	search search.Provider
	rules  []Rule
	logger *zap.Logger

	mem    *memory.Memory
	axioms string
}

// New seeds the storage layout if needed and loads the initial state.
// A nil provider falls back to the offline mock; a nil logger is
// replaced with a no-op one.
func New(store *storage.Store, provider search.Provider, logger *zap.Logger) (*Agent, error) {
	if provider == nil {
		provider = search.Offline{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Agent{
		store:  store,
		search: provider,
		rules:  DefaultRules(),
		logger: logger,
	}
	if err := store.Ensure(); err != nil {
		return nil, err
	}
	mem, err := store.LoadMemory()
	if err != nil {
		return nil, err
	}
	a.mem = mem
	axioms, err := store.LoadAxioms()
	if err != nil {
		return nil, err
	}
	a.axioms = axioms
	return a, nil
}

// Respond runs one prompt through the full lifecycle and returns the
// response lines joined with newlines. A search provider failure aborts
// before any state is written.
func (a *Agent) Respond(ctx context.Context, prompt string) (string, error) {
	intent, _ := Classify(prompt, a.rules)
	out, err := a.transact(ctx, prompt, func(mem *memory.Memory) (Outcome, error) {
		switch intent {
		case IntentSearch:
			query := parse.SearchQuery(prompt)
			results, err := a.search.Search(ctx, query)
			if err != nil {
				return Outcome{}, fmt.Errorf("web search: %w", err)
			}
			return searchOutcome(mem, a.search.Name(), query, results), nil
		case IntentRemember:
			return rememberOutcome(mem, prompt), nil
		case IntentPrefer:
			return preferenceOutcome(mem, prompt), nil
		case IntentForget:
			return forgetOutcome(mem, prompt), nil
		default:
			return answerOutcome(mem, prompt), nil
		}
	})
	if err != nil {
		return "", err
	}
	return strings.Join(out.Lines, "\n"), nil
}

// RememberFact stores one fact directly, bypassing the prompt
// heuristics. The journal records the equivalent teach phrase.
func (a *Agent) RememberFact(ctx context.Context, subject, value string) (string, error) {
	prompt := fmt.Sprintf("apprends que %s est %s", subject, value)
	out, err := a.transact(ctx, prompt, func(mem *memory.Memory) (Outcome, error) {
		fact := mem.RememberFact(subject, value, memory.ProvenanceUser, memory.FactDetails{})
		return Outcome{
			Lines:   []string{fmt.Sprintf("Je mémorise que %s est %s (provenance utilisateur).", fact.Subject, fact.Value)},
			Action:  IntentRemember,
			Updates: []string{"fact:" + fact.ID},
		}, nil
	})
	if err != nil {
		return "", err
	}
	return strings.Join(out.Lines, "\n"), nil
}

// ForgetFacts soft-deletes facts matching query directly. Same
// semantics as the "oublie" prompt form.
func (a *Agent) ForgetFacts(ctx context.Context, query string) (string, error) {
	prompt := "oublie " + query
	out, err := a.transact(ctx, prompt, func(mem *memory.Memory) (Outcome, error) {
		return forgetOutcome(mem, prompt), nil
	})
	if err != nil {
		return "", err
	}
	return strings.Join(out.Lines, "\n"), nil
}

// transact wraps one memory transition in the lock-reload-persist
// sequence. The transition only runs on freshly loaded state; on any
// error the files are left untouched.
func (a *Agent) transact(ctx context.Context, prompt string, fn func(*memory.Memory) (Outcome, error)) (Outcome, error) {
	if err := a.store.Lock(ctx); err != nil {
		return Outcome{}, err
	}
	defer func() {
		if err := a.store.Unlock(); err != nil {
			a.logger.Warn("release storage lock", zap.Error(err))
		}
	}()

	axioms, err := a.store.LoadAxioms()
	if err != nil {
		return Outcome{}, err
	}
	a.axioms = axioms

	mem, err := a.store.LoadMemory()
	if err != nil {
		return Outcome{}, err
	}
	a.mem = mem

	out, err := fn(a.mem)
	if err != nil {
		return Outcome{}, err
	}

	if err := a.store.SaveMemory(a.mem); err != nil {
		return Outcome{}, err
	}
	entry := storage.LogEntry{
		Timestamp: time.Now().UTC(),
		Prompt:    prompt,
		Response:  out.Lines,
		Actions:   []string{string(out.Action)},
		Updates:   out.Updates,
	}
	if entry.Updates == nil {
		entry.Updates = []string{}
	}
	if err := a.store.AppendLog(entry); err != nil {
		return Outcome{}, err
	}

	a.logger.Debug("prompt handled",
		zap.String("action", string(out.Action)),
		zap.Int("updates", len(entry.Updates)))
	return out, nil
}

// ShowMemory returns a deep copy of the in-memory state as of the last
// interaction. Mutating the copy never touches the agent.
func (a *Agent) ShowMemory() *memory.Memory {
	return a.mem.Clone()
}

// Axioms returns the axioms text loaded at the last interaction.
func (a *Agent) Axioms() string {
	return a.axioms
}

// Store exposes the underlying storage, for inspection commands.
func (a *Agent) Store() *storage.Store {
	return a.store
}

// ProviderName reports which search provider the agent answers
// search prompts with.
func (a *Agent) ProviderName() string {
	return a.search.Name()
}
