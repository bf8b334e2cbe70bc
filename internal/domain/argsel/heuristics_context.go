package argsel

import (
	"strings"
	"unicode/utf8"

	"github.com/surgebase/porter2"

	"github.com/corey/argsel/internal/ports"
)

// DefaultReversalWords mark code that swaps things on purpose.
var DefaultReversalWords = []string{
	"backward", "backwards", "complement", "endian", "flip", "inverse",
	"invert", "landscape", "opposite", "portrait", "reciprocal", "reverse",
	"reversed", "rotate", "rotated", "rotation", "swap", "swapped",
	"transpose", "transposed", "turn", "turned", "undo",
}

// reversalKeyLen is the prefix length used to prefilter reversal words.
// Inflections only change suffixes, so any form of a vocabulary word starts
// with the word's first reversalKeyLen letters.
const reversalKeyLen = 4

// ReversalKeys returns the deduplicated lowercase prefixes a TermMatcher must
// recognise to prefilter EnclosedByReverse for the given vocabulary.
func ReversalKeys(vocabulary []string) []string {
	seen := make(map[string]bool, len(vocabulary))
	var keys []string
	for _, w := range vocabulary {
		w = strings.ToLower(w)
		if utf8.RuneCountInString(w) > reversalKeyLen {
			w = string([]rune(w)[:reversalKeyLen])
		}
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		keys = append(keys, w)
	}
	return keys
}

// EnclosedByReverse vetoes when a declaration enclosing the call has a term
// from the reversal vocabulary in its name, compared after stemming so that
// "reversing" and "swaps" count. prefilter may be nil; when set it must match
// ReversalKeys(vocabulary) and lets most calls skip stemming entirely.
func EnclosedByReverse(vocabulary []string, prefilter ports.TermMatcher) Heuristic {
	words := make(map[string]bool, len(vocabulary)*2)
	for _, w := range vocabulary {
		w = strings.ToLower(w)
		words[w] = true
		words[porter2.Stem(w)] = true
	}

	return Heuristic{
		Name: HeuristicEnclosedByReverse,
		Accept: func(_ Changes, info *InvocationInfo) bool {
			ctx := info.context()
			if ctx == nil {
				return true
			}
			names := ctx.EnclosingNames()
			if len(names) == 0 {
				return true
			}
			if prefilter != nil && len(prefilter.Match(strings.ToLower(strings.Join(names, " ")))) == 0 {
				return true
			}
			for _, name := range names {
				for _, term := range SplitTerms(name) {
					if words[term] || words[porter2.Stem(term)] {
						return false
					}
				}
			}
			return true
		},
	}
}

// CreatesDuplicateCall vetoes when the proposed arguments reproduce, slot for
// slot, another invocation or declaration of the same callee nearby. Code like
// compare(a, b) next to compare(b, a) is deliberate.
func CreatesDuplicateCall() Heuristic {
	return Heuristic{
		Name: HeuristicCreatesDuplicateCall,
		Accept: func(c Changes, info *InvocationInfo) bool {
			ctx := info.context()
			if ctx == nil || c.IsEmpty() {
				return true
			}
			for _, sibling := range ctx.SiblingArguments() {
				if duplicates(c, sibling) {
					return false
				}
			}
			return true
		},
	}
}

func duplicates(c Changes, sibling []string) bool {
	for _, pair := range c.ChangedPairs {
		idx := pair.Formal.Index
		if idx >= len(sibling) || normalizeText(sibling[idx]) != normalizeText(pair.Actual.Text) {
			return false
		}
	}
	return true
}

// normalizeText drops whitespace so formatting differences do not matter.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// NameInComment vetoes when the argument written at a changed position is
// labelled with the formal's name, exactly or approximately.
func NameInComment() Heuristic {
	return Heuristic{
		Name: HeuristicNameInComment,
		Accept: func(c Changes, info *InvocationInfo) bool {
			ctx := info.context()
			if ctx == nil {
				return true
			}
			for _, pair := range c.ChangedPairs {
				m := MatchComment(ctx.ArgumentComments(pair.Formal.Index), pair.Formal.Name)
				if m.Match == ExactMatch || m.Match == ApproximateMatch {
					return false
				}
			}
			return true
		},
	}
}
