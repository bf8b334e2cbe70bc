package argsel

import (
	"math"
	"strings"

	"github.com/corey/argsel/internal/ports"
)

// DistanceFunc scores how badly an actual parameter fits a formal one.
// 0 is a perfect fit; +Inf means the pair must never be chosen.
type DistanceFunc func(formal, actual Parameter) float64

// CostMatrix holds one row per formal and one column per actual.
type CostMatrix [][]float64

// DefaultDistance compares names with the normalized Needleman-Wunsch edit
// distance of their lower_underscore forms. Null literals fit anywhere.
// Unknown names may only stay where they were written.
func DefaultDistance(formal, actual Parameter) float64 {
	if formal.IsNull() || actual.IsNull() {
		return 0
	}
	if formal.IsKnown() && actual.IsKnown() {
		return DefaultEditCosts.Normalized(LowerUnderscore(formal.Name), LowerUnderscore(actual.Name))
	}
	return identityOnly(formal, actual)
}

// ExactNameDistance is 0 when names are equal ignoring case and underscores
// and 1 otherwise. Unknown names may only stay where they were written.
func ExactNameDistance(formal, actual Parameter) float64 {
	if formal.IsNull() || actual.IsNull() {
		return 0
	}
	if !formal.IsKnown() || !actual.IsKnown() {
		return identityOnly(formal, actual)
	}
	if LowerUnderscore(formal.Name) == LowerUnderscore(actual.Name) {
		return 0
	}
	return 1
}

// AssertEqualsDistance only lets the arguments of formals named "expected"
// and "actual" move. Constants and enum values belong in expected; arguments
// whose names start with one of the role prefixes belong to that role.
// isEnum may be nil. Empty prefix lists default to the formal names themselves.
func AssertEqualsDistance(isEnum func(ports.TypeRef) bool, expectedPrefixes, actualPrefixes []string) DistanceFunc {
	if len(expectedPrefixes) == 0 {
		expectedPrefixes = []string{"expected"}
	}
	if len(actualPrefixes) == 0 {
		actualPrefixes = []string{"actual"}
	}
	literalLike := func(p Parameter) bool {
		return p.Constant || (isEnum != nil && p.Type != nil && isEnum(p.Type))
	}

	return func(formal, actual Parameter) float64 {
		switch formal.Name {
		case "expected":
			if literalLike(actual) || hasAnyPrefix(actual.Name, expectedPrefixes) {
				return 0
			}
			return 1
		case "actual":
			if literalLike(actual) {
				return 1
			}
			if hasAnyPrefix(actual.Name, actualPrefixes) {
				return 0
			}
			return 1
		default:
			return identityOnly(formal, actual)
		}
	}
}

// BuildCostMatrix scores every (formal, actual) pair. Alternative cells whose
// actual is not assignable to the formal are +Inf before any distance is
// computed. ok is false when no alternative cell is assignable, in which case
// there is nothing to solve.
func BuildCostMatrix(formals, actuals []Parameter, distance DistanceFunc, oracle ports.TypeOracle) (m CostMatrix, ok bool) {
	m = make(CostMatrix, len(formals))
	for i, formal := range formals {
		m[i] = make([]float64, len(actuals))
		for j, actual := range actuals {
			if i == j || oracle == nil || oracle.IsAssignable(actual.Type, formal.Type) {
				if i != j {
					ok = true
				}
				continue
			}
			m[i][j] = math.Inf(1)
		}
	}
	if !ok {
		return nil, false
	}

	for i, formal := range formals {
		for j, actual := range actuals {
			if math.IsInf(m[i][j], 1) {
				continue
			}
			m[i][j] = distance(formal, actual)
		}
	}
	return m, true
}

func identityOnly(formal, actual Parameter) float64 {
	if formal.Index == actual.Index {
		return 0
	}
	return math.Inf(1)
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
