// Package similarity decides whether two free-form company tokens refer to
// the same name despite typos, punctuation drift, or case differences.
package similarity

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Acceptance thresholds. The dual rule keeps short strings that differ by a
// character or two while still bounding acceptance for long strings.
const (
	maxAbsoluteDistance = 3
	maxRelativeDistance = 0.25
)

// Normalize case-folds and trims a token. All comparisons in this package
// and in identity resolution operate on normalized tokens.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EditDistance returns the Levenshtein distance between the normalized
// inputs (insertion, deletion, and substitution each cost 1).
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(Normalize(a), Normalize(b))
}

// Similar reports whether a and b are close enough to be treated as the same
// company name. Empty-after-trim inputs are never similar, not even to each
// other. Equality and substring containment short-circuit before any
// distance computation.
func Similar(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return false
	}
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	d := levenshtein.ComputeDistance(a, b)
	// rune count, not byte length: the distance counts runes
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return d <= maxAbsoluteDistance || float64(d) <= maxRelativeDistance*float64(longest)
}

// Cache memoizes Similar verdicts for the duration of one reconciliation
// run. Verdicts are deterministic, so entries never invalidate. Safe for
// concurrent use by parallel per-company workers.
type Cache struct {
	mu       sync.Mutex
	verdicts map[[2]string]bool
}

func NewCache() *Cache {
	return &Cache{verdicts: make(map[[2]string]bool)}
}

func (c *Cache) Similar(a, b string) bool {
	key := [2]string{Normalize(a), Normalize(b)}
	c.mu.Lock()
	v, ok := c.verdicts[key]
	c.mu.Unlock()
	if ok {
		return v
	}
	v = Similar(a, b)
	c.mu.Lock()
	c.verdicts[key] = v
	c.mu.Unlock()
	return v
}
