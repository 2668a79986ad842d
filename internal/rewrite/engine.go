// Package rewrite replaces versioned import specifiers in source files with
// their unversioned equivalents.
//
// Apply is the pure content transform. FixFile reads one file, applies the
// table and writes the result back at most once. Run drives a whole tree.
package rewrite

import (
	"fmt"
	"strings"

	"fiximports/internal/mapping"
)

// Mode selects where in a file substitutions may happen.
type Mode string

const (
	// ModeLiteral replaces keys wherever they occur as a substring.
	ModeLiteral Mode = "literal"
	// ModeSpecifier replaces keys only inside string literals.
	ModeSpecifier Mode = "specifier"
)

// ParseMode converts a flag or config value into a Mode. Empty means literal.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLiteral:
		return ModeLiteral, nil
	case ModeSpecifier:
		return ModeSpecifier, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, ModeLiteral, ModeSpecifier)
	}
}

// Hit records how many occurrences of one key were replaced.
type Hit struct {
	Old   string
	New   string
	Count int
}

// Apply replaces, in table order, every non-overlapping occurrence of each
// pair's Old key with its New key. Hits lists the pairs that matched, in
// table order.
func Apply(content string, table mapping.Table) (string, []Hit) {
	var hits []Hit
	for _, p := range table.Pairs() {
		n := strings.Count(content, p.Old)
		if n == 0 {
			continue
		}
		content = strings.ReplaceAll(content, p.Old, p.New)
		hits = append(hits, Hit{Old: p.Old, New: p.New, Count: n})
	}
	return content, hits
}

// mergeHits folds per-segment hits into one list in table order.
func mergeHits(table mapping.Table, segments ...[]Hit) []Hit {
	counts := make(map[string]int)
	for _, seg := range segments {
		for _, h := range seg {
			counts[h.Old] += h.Count
		}
	}
	if len(counts) == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(counts))
	for _, p := range table.Pairs() {
		if n := counts[p.Old]; n > 0 {
			hits = append(hits, Hit{Old: p.Old, New: p.New, Count: n})
		}
	}
	return hits
}

func totalCount(hits []Hit) int {
	n := 0
	for _, h := range hits {
		n += h.Count
	}
	return n
}
