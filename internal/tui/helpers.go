package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jeanpaul/axon/internal/health"
	"github.com/jeanpaul/axon/internal/memory"
	"github.com/jeanpaul/axon/internal/storage"
)

// formatMemory renders the fact and preference state for /memory.
func formatMemory(mem *memory.Memory) string {
	var b strings.Builder

	active, deleted := 0, 0
	for _, f := range mem.Facts.Items {
		if f.Deleted {
			deleted++
		} else {
			active++
		}
	}

	b.WriteString(fmt.Sprintf("Faits : %d actif(s), %d oublié(s)\n", active, deleted))
	for _, f := range mem.Facts.Items {
		if f.Deleted {
			continue
		}
		b.WriteString(fmt.Sprintf("  • %s = %s (%s, %.2f)\n", f.Subject, truncate(f.Value, 60), f.Provenance, f.Confidence))
	}

	if len(mem.Preferences) == 0 {
		b.WriteString("Préférences : aucune")
		return b.String()
	}
	b.WriteString("Préférences :\n")
	for _, category := range slices.Sorted(maps.Keys(mem.Preferences)) {
		items := mem.Preferences[category]
		for _, name := range slices.Sorted(maps.Keys(items)) {
			b.WriteString(fmt.Sprintf("  • %s / %s : %s\n", category, name, items[name].Opinion))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatLogs renders journal entries for /logs, oldest first.
func formatLogs(entries []storage.LogEntry) string {
	if len(entries) == 0 {
		return "Journal vide."
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s  [%s]  %s\n    → %s\n",
			e.Timestamp.Local().Format("02/01 15:04:05"),
			strings.Join(e.Actions, ","),
			truncate(e.Prompt, 60),
			truncate(strings.Join(e.Response, " / "), 70)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatHealth renders storage checks for /doctor.
func formatHealth(statuses []health.Status) string {
	var b strings.Builder
	for _, st := range statuses {
		if st.OK {
			b.WriteString(fmt.Sprintf("✓ %s — %s\n", st.Name, st.Detail))
		} else {
			b.WriteString(fmt.Sprintf("✗ %s — %s (%s)\n", st.Name, st.Error, st.Path))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
