// Package health inspects a storage root and reports per-file findings
// for the doctor command.
package health

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeanpaul/axon/internal/memory"
	"github.com/jeanpaul/axon/internal/schema"
	"github.com/jeanpaul/axon/internal/storage"
)

// Status describes one storage file.
type Status struct {
	Name   string
	Path   string
	OK     bool
	Detail string
	Error  string
}

// Check inspects every storage file under the store's root. It never
// aborts early: each file gets its own status.
func Check(store *storage.Store) []Status {
	validator := schema.NewValidator()
	return []Status{
		checkFacts(store, validator),
		checkPreferences(store, validator),
		checkJournal(store),
		checkAxioms(store),
	}
}

// Healthy reports whether every status passed.
func Healthy(statuses []Status) bool {
	for _, s := range statuses {
		if !s.OK {
			return false
		}
	}
	return true
}

func checkFacts(store *storage.Store, validator *schema.Validator) Status {
	s := Status{Name: "facts", Path: store.FactsPath()}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		s.Error = readError(err)
		return s
	}
	if err := validator.ValidateFacts(data); err != nil {
		s.Error = err.Error()
		return s
	}
	var facts memory.Facts
	if err := json.Unmarshal(data, &facts); err != nil {
		s.Error = err.Error()
		return s
	}
	deleted := 0
	for _, fact := range facts.Items {
		if fact.Deleted {
			deleted++
		}
	}
	s.OK = true
	s.Detail = fmt.Sprintf("%d fact(s), %d deleted", len(facts.Items), deleted)
	return s
}

func checkPreferences(store *storage.Store, validator *schema.Validator) Status {
	s := Status{Name: "preferences", Path: store.PreferencesPath()}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		s.Error = readError(err)
		return s
	}
	if err := validator.ValidatePreferences(data); err != nil {
		s.Error = err.Error()
		return s
	}
	var prefs memory.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.Error = err.Error()
		return s
	}
	items := 0
	for _, block := range prefs {
		items += len(block)
	}
	s.OK = true
	s.Detail = fmt.Sprintf("%d category(ies), %d item(s)", len(prefs), items)
	return s
}

func checkJournal(store *storage.Store) Status {
	s := Status{Name: "journal", Path: store.LogsPath()}
	if _, err := os.Stat(s.Path); err != nil {
		s.Error = readError(err)
		return s
	}
	entries, err := store.TailLogs(0)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.OK = true
	s.Detail = fmt.Sprintf("%d entry(ies)", len(entries))
	return s
}

func checkAxioms(store *storage.Store) Status {
	s := Status{Name: "axioms", Path: store.AxiomsPath()}
	info, err := os.Stat(s.Path)
	if err != nil {
		s.Error = readError(err)
		return s
	}
	s.OK = true
	s.Detail = fmt.Sprintf("%d byte(s)", info.Size())
	return s
}

func readError(err error) string {
	switch {
	case os.IsNotExist(err):
		return "missing — run the agent once to seed storage"
	case os.IsPermission(err):
		return "permission denied"
	default:
		return err.Error()
	}
}
