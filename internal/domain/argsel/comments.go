package argsel

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/corey/argsel/internal/ports"
)

// MatchType classifies how a comment relates to a formal parameter name.
type MatchType int

const (
	NotAnnotated     MatchType = iota // no relevant comment
	ExactMatch                        // /* name= */ or a comment that is exactly the name
	ApproximateMatch                  // the name appears inside the comment
	BadMatch                          // /* other= */ names something else
)

func (m MatchType) String() string {
	switch m {
	case ExactMatch:
		return "exact"
	case ApproximateMatch:
		return "approximate"
	case BadMatch:
		return "bad"
	default:
		return "not-annotated"
	}
}

// MatchedComment is the comment that decided a MatchType.
type MatchedComment struct {
	Comment ports.Comment
	Match   MatchType
}

var (
	labelPattern = regexp.MustCompile(`^\s*([\w\d]+)\s*=\s*$`)
	wordSplit    = regexp.MustCompile(`[^a-zA-Z0-9_]+`)
)

// Comments longer than this, or with more markup characters than
// maxCommentMarkup, are treated as section dividers rather than labels.
const (
	maxCommentLen    = 50
	maxCommentMarkup = 5
	fuzzyMinLen      = 5
	fuzzySimilarity  = 0.95
)

// LabelComment renders the recommended label for a parameter.
func LabelComment(name string) string {
	return "/* " + name + "= */"
}

// CommentText returns the body of a comment without its delimiters.
func CommentText(c ports.Comment) string {
	text := strings.TrimSpace(c.Text)
	if c.Block {
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
	} else {
		text = strings.TrimPrefix(text, "//")
	}
	return strings.TrimSpace(text)
}

// MatchComment decides whether the comments attached to an argument label it
// with formal. The last block comment before the argument is checked for the
// /* name= */ form first; otherwise any comment containing the name counts as
// an approximate match, or an exact one if it is nothing but the name.
func MatchComment(comments []ports.Comment, formal string) MatchedComment {
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		if !c.Before || !c.Block {
			continue
		}
		if m := labelPattern.FindStringSubmatch(CommentText(c)); m != nil {
			if m[1] == formal {
				return MatchedComment{Comment: c, Match: ExactMatch}
			}
			return MatchedComment{Comment: c, Match: BadMatch}
		}
		break
	}

	for _, c := range comments {
		if !mentions(c, formal) {
			continue
		}
		text := strings.TrimRight(CommentText(c), "=:")
		if strings.TrimSpace(text) == formal {
			return MatchedComment{Comment: c, Match: ExactMatch}
		}
		return MatchedComment{Comment: c, Match: ApproximateMatch}
	}
	return MatchedComment{}
}

// mentions reports whether a comment contains formal as a word, or a word
// close enough to it to be a typo of it.
func mentions(c ports.Comment, formal string) bool {
	text := CommentText(c)
	if len(text) > len(formal)+5 && len(text) > maxCommentLen {
		return false
	}
	if strings.Count(text, "-")+strings.Count(text, "*")+strings.Count(text, "!")+
		strings.Count(text, "@")+strings.Count(text, "<")+strings.Count(text, ">") > maxCommentMarkup {
		return false
	}
	for _, word := range wordSplit.Split(text, -1) {
		if word == formal {
			return true
		}
		if len(word) < fuzzyMinLen || len(formal) < fuzzyMinLen {
			continue
		}
		sim, err := edlib.StringsSimilarity(strings.ToLower(word), strings.ToLower(formal), edlib.JaroWinkler)
		if err == nil && sim >= fuzzySimilarity {
			return true
		}
	}
	return false
}

// Span is the byte range of one argument, End exclusive.
type Span struct {
	Start int
	End   int
}

// AttachComments distributes the comments found inside a call's parentheses
// (and trailing on its last line) to its arguments. commas holds the offsets
// of the separating commas, including a trailing one if present. line maps an
// offset to its line number. Comments nested inside an argument are dropped.
//
// A comment that follows a comma on the same line, where the next argument
// starts on a later line, belongs to the argument before the comma:
//
//	f(width,  // in pixels
//	  height)
func AttachComments(args []Span, commas []int, comments []ports.Comment, line func(offset int) int) [][]ports.Comment {
	out := make([][]ports.Comment, len(args))
	if len(args) == 0 {
		return out
	}
	sorted := append([]int(nil), commas...)
	sort.Ints(sorted)

	for _, c := range comments {
		if nested(args, c) {
			continue
		}
		k := sort.SearchInts(sorted, c.Start) // commas before the comment
		if k >= len(args) {
			c.Before = false
			out[len(args)-1] = append(out[len(args)-1], c)
			continue
		}
		if k > 0 && line(c.Start) == line(sorted[k-1]) && line(args[k].Start) > line(c.Start) {
			c.Before = false
			out[k-1] = append(out[k-1], c)
			continue
		}
		c.Before = c.End <= args[k].Start
		out[k] = append(out[k], c)
	}
	return out
}

func nested(args []Span, c ports.Comment) bool {
	for _, a := range args {
		if c.Start >= a.Start && c.End <= a.End {
			return true
		}
	}
	return false
}
