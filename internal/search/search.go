// Package search defines the pluggable web-lookup capability. The
// default Offline provider performs no network access; DuckDuckGo is
// the live integration.
package search

import (
	"context"
	"fmt"
)

// Result is the fixed shape a provider returns. Summary becomes the
// stored fact value; a nil Confidence lets the fact store apply the
// provenance default.
type Result struct {
	Subject    string
	Summary    string
	URL        string
	Provenance string
	Confidence *float64
}

// Provider is the capability boundary for external lookups. Implementations
// must be safe for sequential reuse across prompts.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Result, error)
}

// Offline is the default provider: one placeholder record marking that
// no real lookup occurred, keeping the agent fully local.
type Offline struct{}

func (Offline) Name() string { return "mock" }

func (Offline) Search(_ context.Context, query string) ([]Result, error) {
	confidence := 0.5
	return []Result{{
		Subject:    "web_search:" + query,
		Summary:    fmt.Sprintf("Aucune recherche en ligne réelle n'a été effectuée pour '%s'.", query),
		Provenance: "web",
		Confidence: &confidence,
	}}, nil
}
