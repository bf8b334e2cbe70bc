package argsel

// Heuristic is one veto in the pipeline. Accept returns false to suppress the
// finding. Heuristics must not depend on each other's results.
type Heuristic struct {
	Name   string
	Accept func(c Changes, info *InvocationInfo) bool
}

// Pipeline runs heuristics in order and stops at the first veto.
type Pipeline []Heuristic

// Run returns the name of the heuristic that vetoed c, or "" when every
// heuristic accepted it.
func (p Pipeline) Run(c Changes, info *InvocationInfo) string {
	for _, h := range p {
		if !h.Accept(c, info) {
			return h.Name
		}
	}
	return ""
}
