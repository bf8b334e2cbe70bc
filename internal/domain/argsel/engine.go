package argsel

import (
	"regexp"

	"github.com/corey/argsel/internal/ports"
)

// InvocationInfo is everything a host knows about one call site.
type InvocationInfo struct {
	Node       any    // host call-site node, opaque to the engine
	Callee     any    // host callee symbol, opaque to the engine
	CalleeName string // used in messages
	CallText   string // source text of the whole call
	CallStart  int    // offset of CallText in the file

	Formals  []Formal
	Variadic bool // the last formal absorbs any number of trailing arguments
	Args     []Expr

	// EnclosingType is the simple name of the type whose code contains the
	// call; self-references resolve to it.
	EnclosingType string

	Context ports.CallContext
}

func (info *InvocationInfo) context() ports.CallContext {
	if info == nil {
		return nil
	}
	return info.Context
}

// Finding is a defect that survived the heuristic pipeline.
type Finding struct {
	Changes        Changes
	Message        string
	CommentFix     Fix
	PermutationFix Fix
}

// Evaluation records how the engine reached its verdict on one call site.
type Evaluation struct {
	Formals  []Parameter
	Actuals  []Parameter
	Costs    CostMatrix
	Changes  Changes
	VetoedBy string   // heuristic name, "" when none vetoed
	Finding  *Finding // nil when there is no defect
}

// Engine is one configured detector: a distance function plus a heuristic
// pipeline. It holds no per-call state.
type Engine struct {
	distance   DistanceFunc
	heuristics Pipeline
	synthetic  *regexp.Regexp
}

// Option configures an Engine.
type Option func(*Engine)

// WithSyntheticNames overrides DefaultSyntheticNames. nil disables the check.
func WithSyntheticNames(re *regexp.Regexp) Option {
	return func(e *Engine) { e.synthetic = re }
}

// NewEngine creates an engine from a distance function and heuristics,
// which run in the order given.
func NewEngine(distance DistanceFunc, heuristics []Heuristic, opts ...Option) *Engine {
	e := &Engine{
		distance:   distance,
		heuristics: Pipeline(heuristics),
		synthetic:  DefaultSyntheticNames,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check returns the finding for a call site, or nil if there is none.
func (e *Engine) Check(info *InvocationInfo) *Finding {
	return e.Evaluate(info).Finding
}

// FindChanges computes the changes the solver proposes for a call site
// without running the heuristic pipeline.
func (e *Engine) FindChanges(info *InvocationInfo) Changes {
	return e.prepare(info).Changes
}

// Evaluate runs the full pipeline and reports every intermediate result.
func (e *Engine) Evaluate(info *InvocationInfo) Evaluation {
	ev := e.prepare(info)
	if ev.Changes.IsEmpty() {
		return ev
	}
	if vetoed := e.heuristics.Run(ev.Changes, info); vetoed != "" {
		ev.VetoedBy = vetoed
		return ev
	}
	permutation := PermutationFix(ev.Changes, ev.Actuals)
	ev.Finding = &Finding{
		Changes:        ev.Changes,
		Message:        describe(info, ev.Changes, ev.Actuals, permutation),
		CommentFix:     CommentFix(ev.Changes, ev.Actuals),
		PermutationFix: permutation,
	}
	return ev
}

func (e *Engine) prepare(info *InvocationInfo) Evaluation {
	var ev Evaluation
	if info == nil {
		return ev
	}
	formals := FormalParameters(info.Formals, e.synthetic)
	args := info.Args
	if info.Variadic && len(formals) > 0 {
		formals = formals[:len(formals)-1]
	}
	if len(args) < len(formals) {
		return ev
	}
	args = args[:len(formals)]
	if len(formals) <= 1 {
		return ev
	}

	ev.Formals = formals
	ev.Actuals = ActualParameters(args, info.EnclosingType)

	var oracle ports.TypeOracle
	if info.Context != nil {
		oracle = info.Context
	}
	costs, ok := BuildCostMatrix(ev.Formals, ev.Actuals, e.distance, oracle)
	if !ok {
		return ev
	}
	ev.Costs = costs
	ev.Changes = ExtractChanges(costs, BestAssignment(costs), ev.Formals, ev.Actuals)
	return ev
}
