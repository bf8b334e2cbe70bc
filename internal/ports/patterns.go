package ports

// TermMatcher finds vocabulary terms in content using multi-pattern matching
// (Aho-Corasick). A single pass over the content finds every vocabulary entry
// simultaneously, regardless of vocabulary size. Used as a cheap prefilter in
// front of exact term confirmation, so false positives are acceptable and
// false negatives are not.
//
// The vocabulary is fixed at construction time. Implementations must be safe
// for concurrent use once built.
type TermMatcher interface {
	// Match returns every vocabulary entry found in content, deduplicated.
	// Returns nil if nothing matches. Content is matched as-is (caller
	// normalizes case).
	Match(content string) []string
}
