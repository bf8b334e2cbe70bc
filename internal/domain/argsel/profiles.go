package argsel

import (
	"regexp"

	"github.com/corey/argsel/internal/ports"
)

// Check names shared by every host. They also name diagnostics, config keys
// and suppression directives.
const (
	CheckArgumentSelection = "argselection"
	CheckAssertOrder       = "assertorder"
	CheckStructOrder       = "structorder"
	CheckNamedParams       = "namedparams"
)

// Settings tunes the standard engine profiles.
type Settings struct {
	PenaltyThreshold    float64
	LowInformationNames []*regexp.Regexp
	ReversalWords       []string
	ReversalPrefilter   ports.TermMatcher // optional, built from ReversalKeys(ReversalWords)
	SyntheticNames      *regexp.Regexp

	// Assertion argument roles. Arguments whose names start with one of these
	// prefixes belong to the expected or actual formal respectively.
	ExpectedPrefixes []string
	ActualPrefixes   []string
	IsEnum           func(ports.TypeRef) bool
}

// DefaultSettings returns the settings every profile uses out of the box.
func DefaultSettings() Settings {
	patterns, err := CompileNamePatterns(DefaultLowInformationNames)
	if err != nil {
		panic(err)
	}
	return Settings{
		PenaltyThreshold:    DefaultPenaltyThreshold,
		LowInformationNames: patterns,
		ReversalWords:       DefaultReversalWords,
		SyntheticNames:      DefaultSyntheticNames,
		ExpectedPrefixes:    []string{"expected"},
		ActualPrefixes:      []string{"actual"},
	}
}

// ArgumentSelection is the general detector: name edit distance with the
// full heuristic chain.
func ArgumentSelection(s Settings) *Engine {
	return NewEngine(DefaultDistance, []Heuristic{
		LowInformationName(s.LowInformationNames),
		PenaltyThreshold(s.PenaltyThreshold),
		EnclosedByReverse(s.ReversalWords, s.ReversalPrefilter),
		CreatesDuplicateCall(),
		NameInComment(),
	}, WithSyntheticNames(s.SyntheticNames))
}

// AssertOrder detects equality assertions whose expected and actual values
// were passed the wrong way round.
func AssertOrder(s Settings) *Engine {
	return NewEngine(AssertEqualsDistance(s.IsEnum, s.ExpectedPrefixes, s.ActualPrefixes), []Heuristic{
		AssignmentBetterThanOriginal(),
		CreatesDuplicateCall(),
	}, WithSyntheticNames(s.SyntheticNames))
}

// StructOrder detects positional struct literals whose values line up with
// differently named fields. Only exact name matches may move a value.
func StructOrder(s Settings) *Engine {
	return NewEngine(ExactNameDistance, []Heuristic{
		AllAssignmentCostsBelow(1.0),
	}, WithSyntheticNames(s.SyntheticNames))
}
