package argsel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corey/argsel/internal/ports"
)

// LabelledArgument is one argument of a call together with the formal it is
// passed to and the comments attached to it.
type LabelledArgument struct {
	Formal   string
	Text     string
	Start    int
	End      int
	Comments []ports.Comment
}

// LabelFinding reports /* name= */ comments that disagree with the formal
// parameter they label.
type LabelFinding struct {
	Message string
	Fix     Fix
}

// CheckLabels looks for arguments whose /* name= */ label names a different
// formal. If the label matches another argument's formal and that argument is
// labelled correctly for ours (or not labelled at all) the two arguments are
// swapped; otherwise the label is rewritten. Returns nil when every label is
// consistent.
func CheckLabels(args []LabelledArgument) *LabelFinding {
	matches := make([]MatchedComment, len(args))
	for i, a := range args {
		matches[i] = MatchComment(a.Comments, a.Formal)
	}

	var (
		edits    []Edit
		problems []string
		handled  = make(map[int]bool)
	)
	for i, a := range args {
		if matches[i].Match != BadMatch {
			continue
		}
		bad := matches[i].Comment
		problems = append(problems, fmt.Sprintf("`%s` does not match formal parameter name `%s`", bad.Text, a.Formal))
		if handled[i] {
			continue
		}
		handled[i] = true

		j := findGoodSwap(i, args)
		switch {
		case j < 0:
			edits = append(edits, Edit{Start: bad.Start, End: bad.End, Text: LabelComment(a.Formal)})
		case handled[j]:
			// Already rewritten by an earlier swap.
		case matches[j].Match == NotAnnotated:
			handled[j] = true
			edits = append(edits,
				Edit{Start: bad.Start, End: bad.End, Text: ""},
				Edit{Start: a.Start, End: a.End, Text: args[j].Text},
				Edit{Start: args[j].Start, End: args[j].End, Text: LabelComment(args[j].Formal) + a.Text},
			)
		default:
			handled[j] = true
			other := matches[j].Comment
			edits = append(edits,
				Edit{Start: bad.Start, End: bad.End, Text: other.Text},
				Edit{Start: a.Start, End: a.End, Text: args[j].Text},
				Edit{Start: other.Start, End: other.End, Text: bad.Text},
				Edit{Start: args[j].Start, End: args[j].End, Text: a.Text},
			)
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.SliceStable(edits, func(x, y int) bool { return edits[x].Start < edits[y].Start })
	return &LabelFinding{
		Message: "Parameters with incorrectly labelled arguments: " + strings.Join(problems, ", "),
		Fix:     Fix{Description: LabelFixDescription, Edits: edits},
	}
}

// findGoodSwap returns the index of an argument whose formal is named by
// source's label and whose own label (if any) names source's formal exactly.
func findGoodSwap(source int, args []LabelledArgument) int {
	for target := range args {
		if target == source {
			continue
		}
		if MatchComment(args[source].Comments, args[target].Formal).Match != ExactMatch {
			continue
		}
		switch MatchComment(args[target].Comments, args[source].Formal).Match {
		case ExactMatch, NotAnnotated:
			return target
		}
	}
	return -1
}
