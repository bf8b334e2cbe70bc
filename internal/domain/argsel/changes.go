package argsel

// ParameterPair matches one formal with the actual proposed for it.
type ParameterPair struct {
	Formal Parameter
	Actual Parameter
}

// IsAlternative reports whether the actual was written at a different position.
func (p ParameterPair) IsAlternative() bool {
	return p.Formal.Index != p.Actual.Index
}

// Changes describes the formals whose argument the solver would replace.
// The three slices are index-aligned. Empty Changes means no defect.
type Changes struct {
	OriginalCost   []float64
	AssignmentCost []float64
	ChangedPairs   []ParameterPair
}

// IsEmpty reports whether nothing would change.
func (c Changes) IsEmpty() bool { return len(c.ChangedPairs) == 0 }

// TotalOriginalCost sums the cost of the changed formals as written.
func (c Changes) TotalOriginalCost() float64 { return sum(c.OriginalCost) }

// TotalAssignmentCost sums the cost of the changed formals after the change.
func (c Changes) TotalAssignmentCost() float64 { return sum(c.AssignmentCost) }

// ExtractChanges collects every formal whose assigned actual differs from
// the one written at its position.
func ExtractChanges(m CostMatrix, assignment []int, formals, actuals []Parameter) Changes {
	var c Changes
	for i, j := range assignment {
		if i == j {
			continue
		}
		c.OriginalCost = append(c.OriginalCost, m[i][i])
		c.AssignmentCost = append(c.AssignmentCost, m[i][j])
		c.ChangedPairs = append(c.ChangedPairs, ParameterPair{Formal: formals[i], Actual: actuals[j]})
	}
	return c
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
