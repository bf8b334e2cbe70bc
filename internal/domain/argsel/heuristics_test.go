package argsel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/argsel/internal/ports"
)

// substringMatcher is a TermMatcher without an automaton.
type substringMatcher []string

func (m substringMatcher) Match(content string) []string {
	var out []string
	for _, k := range m {
		if strings.Contains(content, k) {
			out = append(out, k)
		}
	}
	return out
}

func withContext(ctx *fakeContext) *InvocationInfo {
	return &InvocationInfo{Context: ctx}
}

var swapSourceTarget = pairs([]float64{1, 1}, []float64{0, 0},
	pair("source", 0, "source", 1),
	pair("target", 1, "target", 0),
)

// ============================================================================
// LowInformationName
// ============================================================================

func TestLowInformationName(t *testing.T) {
	patterns, err := CompileNamePatterns(DefaultLowInformationNames)
	require.NoError(t, err)
	h := LowInformationName(patterns)

	for _, name := range []string{"x", "ab", "a1", "arg1", "value", "key", "label", "param2", "str0"} {
		c := pairs([]float64{1}, []float64{0}, pair(name, 0, "other", 1))
		assert.False(t, h.Accept(c, nil), name)
	}
	for _, name := range []string{"width", "values", "keys", "abc", "arg12", "labels"} {
		c := pairs([]float64{1}, []float64{0}, pair(name, 0, "other", 1))
		assert.True(t, h.Accept(c, nil), name)
	}
}

func TestCompileNamePatterns_Invalid(t *testing.T) {
	_, err := CompileNamePatterns([]string{"("})
	assert.Error(t, err)
}

// ============================================================================
// PenaltyThreshold
// ============================================================================

func TestPenaltyThreshold(t *testing.T) {
	h := PenaltyThreshold(0.6)
	assert.True(t, h.Accept(swapSourceTarget, nil))

	small := pairs([]float64{0.8, 0.8}, []float64{0.4, 0.4}, pair("a", 0, "b", 1), pair("b", 1, "a", 0))
	assert.False(t, h.Accept(small, nil))

	// the boundary is inclusive
	boundary := pairs([]float64{1.0}, []float64{0.4}, pair("a", 0, "b", 1))
	assert.True(t, h.Accept(boundary, nil))
}

// ============================================================================
// AssignmentBetterThanOriginal / AllAssignmentCostsBelow
// ============================================================================

func TestAssignmentBetterThanOriginal(t *testing.T) {
	h := AssignmentBetterThanOriginal()
	assert.True(t, h.Accept(pairs([]float64{2}, []float64{1}, pair("expected", 1, "x", 2)), nil))
	assert.False(t, h.Accept(pairs([]float64{1}, []float64{1}, pair("expected", 1, "x", 2)), nil))
}

func TestAllAssignmentCostsBelow(t *testing.T) {
	h := AllAssignmentCostsBelow(1.0)
	assert.True(t, h.Accept(pairs([]float64{1, 1}, []float64{0, 0.5}, pair("X", 0, "x", 1), pair("Y", 1, "y", 0)), nil))
	assert.False(t, h.Accept(pairs([]float64{1, 1}, []float64{0, 1}, pair("X", 0, "x", 1), pair("Y", 1, "y", 0)), nil))
}

// ============================================================================
// EnclosedByReverse
// ============================================================================

func TestEnclosedByReverse_Vetoes(t *testing.T) {
	h := EnclosedByReverse(DefaultReversalWords, nil)
	for _, name := range []string{"reverseList", "swapArgs", "Rotating", "flipped", "undo", "transposeMatrix", "fromLittleEndian"} {
		info := withContext(&fakeContext{enclosing: []string{name}})
		assert.False(t, h.Accept(swapSourceTarget, info), name)
	}
}

func TestEnclosedByReverse_Accepts(t *testing.T) {
	h := EnclosedByReverse(DefaultReversalWords, nil)
	for _, name := range []string{"process", "returnValue", "copyTo", "Server"} {
		info := withContext(&fakeContext{enclosing: []string{name}})
		assert.True(t, h.Accept(swapSourceTarget, info), name)
	}
}

func TestEnclosedByReverse_OuterDeclarationCounts(t *testing.T) {
	h := EnclosedByReverse(DefaultReversalWords, nil)
	info := withContext(&fakeContext{enclosing: []string{"apply", "Inverter"}})
	assert.False(t, h.Accept(swapSourceTarget, info))
}

func TestEnclosedByReverse_Prefilter(t *testing.T) {
	h := EnclosedByReverse(DefaultReversalWords, substringMatcher(ReversalKeys(DefaultReversalWords)))

	// prefilter hit confirmed by stemming
	assert.False(t, h.Accept(swapSourceTarget, withContext(&fakeContext{enclosing: []string{"reversed"}})))
	// prefilter hit ("turn" in "return") rejected on confirmation
	assert.True(t, h.Accept(swapSourceTarget, withContext(&fakeContext{enclosing: []string{"returnValue"}})))
	// prefilter miss
	assert.True(t, h.Accept(swapSourceTarget, withContext(&fakeContext{enclosing: []string{"copy"}})))
}

func TestEnclosedByReverse_NoContext(t *testing.T) {
	h := EnclosedByReverse(DefaultReversalWords, nil)
	assert.True(t, h.Accept(swapSourceTarget, nil))
	assert.True(t, h.Accept(swapSourceTarget, &InvocationInfo{}))
}

func TestReversalKeys(t *testing.T) {
	keys := ReversalKeys([]string{"Reverse", "reversed", "undo", "flip"})
	assert.Equal(t, []string{"reve", "undo", "flip"}, keys)
}

// ============================================================================
// CreatesDuplicateCall
// ============================================================================

func TestCreatesDuplicateCall_Vetoes(t *testing.T) {
	h := CreatesDuplicateCall()
	info := withContext(&fakeContext{siblings: [][]string{{"other", "thing"}, {"source", "target"}}})
	assert.False(t, h.Accept(swapSourceTarget, info))
}

func TestCreatesDuplicateCall_IgnoresWhitespace(t *testing.T) {
	h := CreatesDuplicateCall()
	c := pairs([]float64{1}, []float64{0}, pair("source", 0, "a.source", 1))
	info := withContext(&fakeContext{siblings: [][]string{{"a . source"}}})
	assert.False(t, h.Accept(c, info))
}

func TestCreatesDuplicateCall_Accepts(t *testing.T) {
	h := CreatesDuplicateCall()
	info := withContext(&fakeContext{siblings: [][]string{{"source", "other"}, {"source"}}})
	assert.True(t, h.Accept(swapSourceTarget, info))
	assert.True(t, h.Accept(swapSourceTarget, withContext(&fakeContext{})))
}

// ============================================================================
// NameInComment
// ============================================================================

func blockBefore(text string) ports.Comment {
	return ports.Comment{Text: text, Block: true, Before: true}
}

func TestNameInComment_ExactLabelVetoes(t *testing.T) {
	h := NameInComment()
	info := withContext(&fakeContext{comments: map[int][]ports.Comment{0: {blockBefore("/* source= */")}}})
	assert.False(t, h.Accept(swapSourceTarget, info))
}

func TestNameInComment_ApproximateVetoes(t *testing.T) {
	h := NameInComment()
	info := withContext(&fakeContext{comments: map[int][]ports.Comment{1: {{Text: "// the target dir"}}}})
	assert.False(t, h.Accept(swapSourceTarget, info))
}

func TestNameInComment_BadLabelAccepts(t *testing.T) {
	h := NameInComment()
	info := withContext(&fakeContext{comments: map[int][]ports.Comment{0: {blockBefore("/* other= */")}}})
	assert.True(t, h.Accept(swapSourceTarget, info))
}

func TestNameInComment_NoComments(t *testing.T) {
	assert.True(t, NameInComment().Accept(swapSourceTarget, withContext(&fakeContext{})))
}

// ============================================================================
// Pipeline
// ============================================================================

func TestPipeline_StopsAtFirstVeto(t *testing.T) {
	var ran []string
	mk := func(name string, accept bool) Heuristic {
		return Heuristic{Name: name, Accept: func(Changes, *InvocationInfo) bool {
			ran = append(ran, name)
			return accept
		}}
	}
	p := Pipeline{mk("first", true), mk("second", false), mk("third", false)}
	assert.Equal(t, "second", p.Run(swapSourceTarget, nil))
	assert.Equal(t, []string{"first", "second"}, ran)

	assert.Equal(t, "", Pipeline{mk("only", true)}.Run(swapSourceTarget, nil))
}
