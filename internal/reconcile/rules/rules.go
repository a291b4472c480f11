// Package rules maps an outreach outcome label to its workflow consequences:
// a pipeline stage, a contact status, and a follow-up day offset.
//
// Lookup is exact-match only over a closed, curated vocabulary. This is
// deliberate: fuzzy matching belongs to identity resolution, where the input
// is free-form; outcome labels are configuration and typos there should
// surface as misses, not guesses.
package rules

import "strings"

// DefaultDayOffset is the follow-up offset applied when an outcome has no
// configured rule.
const DefaultDayOffset = 14

// Entry is one workflow rule, keyed by outcome label.
type Entry struct {
	Outcome   string `yaml:"outcome"`
	Stage     string `yaml:"stage"`
	Status    string `yaml:"status"`
	DayOffset int    `yaml:"day_offset"`
}

// Table is the injected rule set. It is read-only after construction; there
// is no process-wide rule state.
type Table struct {
	entries map[string]Entry
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewTable builds a lookup table keyed by normalized outcome. Entries
// without a positive day offset get DefaultDayOffset.
func NewTable(entries []Entry) *Table {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.DayOffset <= 0 {
			e.DayOffset = DefaultDayOffset
		}
		t.entries[normalize(e.Outcome)] = e
	}
	return t
}

// Lookup returns the rule for an outcome, matched case-insensitively and
// trimmed. A miss returns a default entry with empty stage and status and
// DefaultDayOffset; it never fails.
func (t *Table) Lookup(outcome string) Entry {
	if e, ok := t.entries[normalize(outcome)]; ok {
		return e
	}
	return Entry{DayOffset: DefaultDayOffset}
}

// Len reports the number of configured rules.
func (t *Table) Len() int {
	return len(t.entries)
}
