// Package mapping holds the ordered table of versioned import specifiers
// and the unversioned specifiers they are rewritten to.
package mapping

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"
)

// ErrInvalidTable is wrapped by every error returned from Validate.
var ErrInvalidTable = errors.New("invalid mapping table")

// versionSuffix matches what may follow the '@' in a pinned specifier.
var versionSuffix = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.+-]*$`)

// Pair maps one versioned specifier to its unversioned form.
type Pair struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Table is an ordered, immutable list of pairs. The zero value is an empty table.
type Table struct {
	pairs []Pair
}

// New builds a table from pairs, preserving their order.
func New(pairs ...Pair) Table {
	cp := make([]Pair, len(pairs))
	copy(cp, pairs)
	return Table{pairs: cp}
}

// Len returns the number of pairs.
func (t Table) Len() int {
	return len(t.pairs)
}

// Pairs returns a copy of the pairs in table order.
func (t Table) Pairs() []Pair {
	cp := make([]Pair, len(t.pairs))
	copy(cp, t.pairs)
	return cp
}

// With returns a new table with extra appended after the existing pairs.
func (t Table) With(extra ...Pair) Table {
	merged := make([]Pair, 0, len(t.pairs)+len(extra))
	merged = append(merged, t.pairs...)
	merged = append(merged, extra...)
	return Table{pairs: merged}
}

// Validate checks that every Old key is its New key plus an '@version'
// suffix, and that no Old key occurs inside another pair's Old or New key.
// The second rule is what keeps literal substring matching from rewriting
// the inside of a longer specifier.
func Validate(t Table) error {
	var errs error
	seen := make(map[string]int, len(t.pairs))

	for i, p := range t.pairs {
		if p.Old == "" || p.New == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: pair %d has an empty key", ErrInvalidTable, i))
			continue
		}
		if prev, ok := seen[p.Old]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q appears at pairs %d and %d", ErrInvalidTable, p.Old, prev, i))
			continue
		}
		seen[p.Old] = i

		version, ok := strings.CutPrefix(p.Old, p.New+"@")
		if !ok || !versionSuffix.MatchString(version) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q is not %q with a version suffix", ErrInvalidTable, p.Old, p.New))
		}
	}

	for i, p := range t.pairs {
		if p.Old == "" {
			continue
		}
		for j, q := range t.pairs {
			if i == j || p.Old == q.Old {
				continue
			}
			if strings.Contains(q.Old, p.Old) || strings.Contains(q.New, p.Old) {
				errs = multierr.Append(errs, fmt.Errorf("%w: %q collides with pair %d (%q)", ErrInvalidTable, p.Old, j, q.Old))
			}
		}
	}

	return errs
}
