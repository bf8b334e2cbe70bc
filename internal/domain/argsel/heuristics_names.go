package argsel

import (
	"fmt"
	"math"
	"regexp"
)

// Heuristic names, reported when they veto a finding.
const (
	HeuristicLowInformationName           = "low-information-name"
	HeuristicPenaltyThreshold             = "penalty-threshold"
	HeuristicEnclosedByReverse            = "enclosed-by-reverse"
	HeuristicCreatesDuplicateCall         = "creates-duplicate-call"
	HeuristicNameInComment                = "name-in-comment"
	HeuristicAssignmentBetterThanOriginal = "assignment-better-than-original"
	HeuristicAllAssignmentCostsBelow      = "all-assignment-costs-below"
)

// DefaultLowInformationNames are formal names too generic to argue about.
var DefaultLowInformationNames = []string{
	`[a-z][a-z]?[0-9]*`,
	`arg[0-9]`,
	`value`,
	`key`,
	`label`,
	`param[0-9]`,
	`str[0-9]`,
}

// DefaultPenaltyThreshold is the minimum average improvement per changed
// pair required by PenaltyThreshold.
const DefaultPenaltyThreshold = 0.6

// CompileNamePatterns anchors each pattern so it must match a whole name.
func CompileNamePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("compile name pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// LowInformationName vetoes when any changed formal has a generic name.
func LowInformationName(patterns []*regexp.Regexp) Heuristic {
	return Heuristic{
		Name: HeuristicLowInformationName,
		Accept: func(c Changes, _ *InvocationInfo) bool {
			for _, pair := range c.ChangedPairs {
				for _, re := range patterns {
					if re.MatchString(pair.Formal.Name) {
						return false
					}
				}
			}
			return true
		},
	}
}

// PenaltyThreshold vetoes unless the change improves the total cost by at
// least threshold per changed pair.
func PenaltyThreshold(threshold float64) Heuristic {
	return Heuristic{
		Name: HeuristicPenaltyThreshold,
		Accept: func(c Changes, _ *InvocationInfo) bool {
			improvement := c.TotalOriginalCost() - c.TotalAssignmentCost()
			return improvement >= threshold*float64(len(c.ChangedPairs))
		},
	}
}

// AssignmentBetterThanOriginal vetoes unless the change strictly lowers the
// total cost.
func AssignmentBetterThanOriginal() Heuristic {
	return Heuristic{
		Name: HeuristicAssignmentBetterThanOriginal,
		Accept: func(c Changes, _ *InvocationInfo) bool {
			return c.TotalAssignmentCost() < c.TotalOriginalCost()
		},
	}
}

// AllAssignmentCostsBelow vetoes unless every changed pair's new cost is
// strictly below limit.
func AllAssignmentCostsBelow(limit float64) Heuristic {
	return Heuristic{
		Name: HeuristicAllAssignmentCostsBelow,
		Accept: func(c Changes, _ *InvocationInfo) bool {
			for _, cost := range c.AssignmentCost {
				if math.IsNaN(cost) || cost >= limit {
					return false
				}
			}
			return true
		},
	}
}
