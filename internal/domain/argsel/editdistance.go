package argsel

import (
	"math"
	"strings"
)

// EditCosts configures the Needleman-Wunsch edit distance. Unlike Levenshtein,
// a run of adjacent insertions or deletions costs an up-front Open plus
// Continue per character, so "Christopher" -> "Chris" is much cheaper than six
// independent deletions.
type EditCosts struct {
	Change        int  // replace one character
	Open          int  // open a gap of insertions or deletions
	Continue      int  // each character inside a gap
	CaseSensitive bool // when false, 'a' == 'A'
}

// DefaultEditCosts are the costs used by DefaultDistance.
var DefaultEditCosts = EditCosts{Change: 8, Open: 8, Continue: 1}

// unreachable seeds impossible matrix cells. Half of MaxInt32 so that adding
// a cost to it cannot overflow.
const unreachable = math.MaxInt32 / 2

// Distance returns the least-cost edit script turning source into target.
func (c EditCosts) Distance(source, target string) int {
	if !c.CaseSensitive {
		source = strings.ToLower(source)
		target = strings.ToLower(target)
	}
	src := []rune(source)
	tgt := []rune(target)

	if len(src) == 0 {
		return c.scriptCost(len(tgt))
	}
	if len(tgt) == 0 {
		return c.scriptCost(len(src))
	}

	// m ends with matched characters, d with deletions, ins with insertions.
	m := newIntMatrix(len(src)+1, len(tgt)+1)
	d := newIntMatrix(len(src)+1, len(tgt)+1)
	ins := newIntMatrix(len(src)+1, len(tgt)+1)

	for i := 1; i <= len(src); i++ {
		m[i][0] = c.scriptCost(i)
		d[i][0] = m[i][0]
		ins[i][0] = unreachable
	}
	for j := 1; j <= len(tgt); j++ {
		m[0][j] = c.scriptCost(j)
		ins[0][j] = m[0][j]
		d[0][j] = unreachable
	}

	for i := 1; i <= len(src); i++ {
		for j := 1; j <= len(tgt); j++ {
			cost := c.Change
			if src[i-1] == tgt[j-1] {
				cost = 0
			}
			m[i][j] = cost + min(m[i-1][j-1], ins[i-1][j-1], d[i-1][j-1])
			d[i][j] = min(m[i-1][j]+c.Open+c.Continue, d[i-1][j]+c.Continue)
			ins[i][j] = min(m[i][j-1]+c.Open+c.Continue, ins[i][j-1]+c.Continue)
		}
	}

	n, k := len(src), len(tgt)
	return min(m[n][k], d[n][k], ins[n][k])
}

// WorstCase returns the largest distance possible between strings of the
// given lengths: either change every overlapping character and pad the
// difference, or delete all of source and insert all of target.
func (c EditCosts) WorstCase(sourceLen, targetLen int) int {
	maxLen := max(sourceLen, targetLen)
	minLen := min(sourceLen, targetLen)

	change := c.scriptCost(maxLen-minLen) + minLen*c.Change
	blowAway := c.scriptCost(sourceLen) + c.scriptCost(targetLen)
	return min(change, blowAway)
}

// Normalized returns Distance scaled into [0, 1] by WorstCase.
// Two empty strings are at distance 0.
func (c EditCosts) Normalized(source, target string) float64 {
	sourceLen := len([]rune(source))
	targetLen := len([]rune(target))
	if sourceLen == 0 && targetLen == 0 {
		return 0
	}
	return float64(c.Distance(source, target)) / float64(c.WorstCase(sourceLen, targetLen))
}

func (c EditCosts) scriptCost(n int) int {
	if n == 0 {
		return 0
	}
	return c.Open + n*c.Continue
}

func newIntMatrix(rows, cols int) [][]int {
	backing := make([]int, rows*cols)
	out := make([][]int, rows)
	for i := range out {
		out[i] = backing[i*cols : (i+1)*cols]
	}
	return out
}
