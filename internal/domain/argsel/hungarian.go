package argsel

import "math"

// tieTolerance absorbs float noise when comparing assignment totals.
const tieTolerance = 1e-9

// Solve runs the Hungarian algorithm and returns, for each row, the column it
// is assigned to, minimizing the total cost. The matrix must have at least as
// many columns as rows; Solve returns nil otherwise.
//
// +Inf cells are replaced by a finite penalty larger than any all-finite
// assignment, so they are only chosen when no finite assignment exists.
// Runs in O(n²m).
func Solve(m CostMatrix) []int {
	n := len(m)
	if n == 0 {
		return nil
	}
	cols := len(m[0])
	if cols < n {
		return nil
	}

	penalty := 1.0
	for _, row := range m {
		for _, c := range row {
			if !math.IsInf(c, 0) && !math.IsNaN(c) {
				penalty += math.Abs(c)
			}
		}
	}
	cost := func(i, j int) float64 {
		c := m[i][j]
		if math.IsInf(c, 0) || math.IsNaN(c) {
			return penalty
		}
		return c
	}

	// Potentials and matching are 1-indexed; column 0 is a virtual source.
	u := make([]float64, n+1)
	v := make([]float64, cols+1)
	p := make([]int, cols+1)
	way := make([]int, cols+1)
	minv := make([]float64, cols+1)
	used := make([]bool, cols+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = math.Inf(1)
			used[j] = false
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= cols; j++ {
				if used[j] {
					continue
				}
				cur := cost(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= cols; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= cols; j++ {
		if p[j] != 0 {
			assignment[p[j]-1] = j - 1
		}
	}
	return assignment
}

// BestAssignment solves m and falls back to the identity assignment when the
// solution uses an infinite cell or does not strictly beat the arguments as
// written. Ties therefore always keep the written order.
func BestAssignment(m CostMatrix) []int {
	identity := make([]int, len(m))
	for i := range identity {
		identity[i] = i
	}
	assignment := Solve(m)
	if assignment == nil {
		return identity
	}
	for i, j := range assignment {
		if math.IsInf(m[i][j], 0) || math.IsNaN(m[i][j]) {
			return identity
		}
	}
	if total(m, assignment) >= total(m, identity)-tieTolerance {
		return identity
	}
	return assignment
}

func total(m CostMatrix, assignment []int) float64 {
	var sum float64
	for i, j := range assignment {
		if j >= len(m[i]) {
			return math.Inf(1)
		}
		sum += m[i][j]
	}
	return sum
}
