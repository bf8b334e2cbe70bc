package argsel

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Edit replaces the byte range [Start, End) with Text. Start == End inserts.
type Edit struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Fix descriptions. Hosts that only carry a fix's description use them to
// tell the alternatives apart.
const (
	PermutationFixDescription = "Swap arguments"
	CommentFixDescription     = "Add parameter name comments"
	LabelFixDescription       = "Fix argument labels"
)

// Fix is one alternative way of resolving a finding.
type Fix struct {
	Description string `json:"description"`
	Edits       []Edit `json:"edits"`
}

// IsEmpty reports whether the fix changes nothing.
func (f Fix) IsEmpty() bool { return len(f.Edits) == 0 }

// ErrOverlappingEdits is returned by ApplyEdits when two edits touch the same bytes.
var ErrOverlappingEdits = errors.New("overlapping edits")

// CommentFix labels every changed argument with the formal it is passed to,
// leaving the call's behaviour untouched.
func CommentFix(c Changes, actuals []Parameter) Fix {
	f := Fix{Description: CommentFixDescription}
	for _, pair := range c.ChangedPairs {
		at := actuals[pair.Formal.Index]
		f.Edits = append(f.Edits, Edit{Start: at.Start, End: at.Start, Text: LabelComment(pair.Formal.Name)})
	}
	sortEdits(f.Edits)
	return f
}

// PermutationFix rewrites the changed arguments into the suggested order.
func PermutationFix(c Changes, actuals []Parameter) Fix {
	f := Fix{Description: PermutationFixDescription}
	for _, pair := range c.ChangedPairs {
		at := actuals[pair.Formal.Index]
		f.Edits = append(f.Edits, Edit{Start: at.Start, End: at.End, Text: pair.Actual.Text})
	}
	sortEdits(f.Edits)
	return f
}

// ApplyEdits applies edits to text, where base is the offset of text's first
// byte in the coordinate space the edits use.
func ApplyEdits(text string, base int, edits []Edit) (string, error) {
	sorted := append([]Edit(nil), edits...)
	sortEdits(sorted)

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, e := range sorted {
		start, end := e.Start-base, e.End-base
		if start < 0 || end > len(text) || start > end {
			return "", fmt.Errorf("edit [%d,%d) outside text [%d,%d)", e.Start, e.End, base, base+len(text))
		}
		if start < pos {
			return "", fmt.Errorf("edit [%d,%d): %w", e.Start, e.End, ErrOverlappingEdits)
		}
		b.WriteString(text[pos:start])
		b.WriteString(e.Text)
		pos = end
	}
	b.WriteString(text[pos:])
	return b.String(), nil
}

func sortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})
}

// describe builds the evidence message for a finding.
func describe(info *InvocationInfo, c Changes, actuals []Parameter, permutation Fix) string {
	var b strings.Builder
	callee := info.CalleeName
	if callee == "" {
		callee = "call"
	}
	fmt.Fprintf(&b, "arguments to %s may be in the wrong order: ", callee)
	for i, pair := range c.ChangedPairs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s got `%s`, expected `%s`",
			pair.Formal.Name, actuals[pair.Formal.Index].Text, pair.Actual.Text)
	}
	fmt.Fprintf(&b, " (cost %.2f as written, %.2f reordered)", c.TotalOriginalCost(), c.TotalAssignmentCost())
	if info.CallText != "" {
		if rewritten, err := ApplyEdits(info.CallText, info.CallStart, permutation.Edits); err == nil {
			fmt.Fprintf(&b, "; did you mean %s?", rewritten)
		}
	}
	return b.String()
}
