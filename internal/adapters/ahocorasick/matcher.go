// Package ahocorasick provides multi-pattern string matching using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library for O(n + m + z) matching and
// implements ports.TermMatcher for the reversal-word prefilter.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/argsel/internal/ports"
)

var _ ports.TermMatcher = (*Matcher)(nil)

// Matcher finds every term of a fixed vocabulary in one pass.
// Safe for concurrent use once built.
type Matcher struct {
	automaton aho.AhoCorasick
	terms     []string
}

// NewMatcher compiles the automaton for terms. Empty terms are dropped.
func NewMatcher(terms []string) *Matcher {
	m := &Matcher{}
	for _, t := range terms {
		if t != "" {
			m.terms = append(m.terms, t)
		}
	}
	if len(m.terms) == 0 {
		return m
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	m.automaton = builder.Build(m.terms)
	return m
}

// Match returns all terms found in content. Overlapping occurrences are
// reported, so "return" yields both "ret" and "turn" when both are terms.
func (m *Matcher) Match(content string) []string {
	if len(m.terms) == 0 || content == "" {
		return nil
	}

	seen := make(map[int]bool)
	var result []string
	iter := m.automaton.IterOverlappingByte([]byte(content))
	for next := iter.Next(); next != nil; next = iter.Next() {
		idx := next.Pattern()
		if seen[idx] {
			continue
		}
		seen[idx] = true
		result = append(result, m.terms[idx])
	}
	return result
}

// Terms returns the vocabulary the automaton was built from.
func (m *Matcher) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}
