package solver

import (
	"container/heap"
	"context"
	"math"
	"time"
)

// Status is the outcome of a SolveMIP call, mirroring spec's solver status
// mapping table.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusTimedOut
	StatusSolverError
)

// Options configures a single SolveMIP call.
type Options struct {
	// TimeLimit is the solver's own wall-clock budget (default 30s per
	// spec §4.4). Reaching it with a feasible incumbent yields Optimal
	// with GapExceeded set; reaching it with none yields TimedOut.
	TimeLimit time.Duration
	// MIPGap is accepted but not enforced as an early-stop tolerance by
	// this implementation beyond exact optimality; kept for interface
	// fidelity with spec's configured-gap solver.
	MIPGap float64
	// IntegerTolerance is the max distance from {0,1} a binary primal may
	// have before being rounded; spec fixes this at 1e-6.
	IntegerTolerance float64
}

// DefaultOptions returns spec's defaults: 30s time limit, 1e-4 MIP gap,
// 1e-6 integer tolerance.
func DefaultOptions() Options {
	return Options{TimeLimit: 30 * time.Second, MIPGap: 1e-4, IntegerTolerance: 1e-6}
}

// Result is the Solver Driver's outcome for one model.
type Result struct {
	Status      Status
	Objective   float64
	Primals     []float64
	GapExceeded bool
	Reason      string
	// SolveMs is set by Driver.Run, not by Solve itself.
	SolveMs int64
}

type node struct {
	model *Model
	bound float64
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].bound < h[j].bound }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Solve runs branch-and-bound over model's binary variables, each node's
// relaxation solved by solveLP. Wall-clock budget and ctx cancellation are
// enforced around this loop only — the caller is expected to have already
// built the model before invoking Solve, per spec's "the only blocking
// operation is the solver call" rule.
func Solve(ctx context.Context, model *Model, opts Options) Result {
	start := time.Now()
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = DefaultOptions().TimeLimit
	}
	if opts.IntegerTolerance <= 0 {
		opts.IntegerTolerance = 1e-6
	}

	root := solveLP(model)
	switch root.status {
	case lpInfeasible:
		return Result{Status: StatusInfeasible}
	case lpDidNotConverge:
		return Result{Status: StatusSolverError, Reason: "LP relaxation did not converge"}
	case lpUnbounded:
		return Result{Status: StatusSolverError, Reason: "LP relaxation unbounded"}
	}

	intVars := make([]int, 0)
	for i, isInt := range model.Integer {
		if isInt {
			intVars = append(intVars, i)
		}
	}

	if allIntegral(root.x, intVars, opts.IntegerTolerance) {
		primals, ok := roundBinaries(root.x, intVars, opts.IntegerTolerance)
		if !ok {
			return Result{Status: StatusSolverError, Reason: "non-integral binary"}
		}
		return Result{Status: StatusOptimal, Objective: root.objective, Primals: primals}
	}

	h := &nodeHeap{{model: model, bound: root.objective}}
	heap.Init(h)

	incumbentObj := math.Inf(1)
	var incumbent []float64
	timedOutByCtx := false

	for h.Len() > 0 {
		if ctx.Err() != nil {
			timedOutByCtx = true
			break
		}
		if time.Since(start) > opts.TimeLimit {
			break
		}

		n := heap.Pop(h).(*node)
		if n.bound >= incumbentObj-1e-9 {
			// Every remaining node (ascending bound order) is no better.
			break
		}

		res := solveLP(n.model)
		if res.status != lpOptimal {
			continue
		}
		if res.objective >= incumbentObj-1e-9 {
			continue
		}

		if allIntegral(res.x, intVars, opts.IntegerTolerance) {
			primals, ok := roundBinaries(res.x, intVars, opts.IntegerTolerance)
			if !ok {
				continue
			}
			incumbentObj = res.objective
			incumbent = primals
			continue
		}

		branchVar := mostFractional(res.x, intVars, opts.IntegerTolerance)
		zero := n.model.Clone()
		zero.Upper[branchVar] = 0
		one := n.model.Clone()
		one.Lower[branchVar] = 1

		heap.Push(h, &node{model: zero, bound: res.objective})
		heap.Push(h, &node{model: one, bound: res.objective})

		if time.Since(start) > opts.TimeLimit {
			break
		}
	}

	if timedOutByCtx {
		return Result{Status: StatusTimedOut, Reason: "cancelled by caller"}
	}
	if incumbent == nil {
		if time.Since(start) > opts.TimeLimit {
			return Result{Status: StatusTimedOut, Reason: "time limit reached with no incumbent"}
		}
		return Result{Status: StatusInfeasible}
	}
	if time.Since(start) > opts.TimeLimit {
		return Result{Status: StatusOptimal, Objective: incumbentObj, Primals: incumbent, GapExceeded: true}
	}
	return Result{Status: StatusOptimal, Objective: incumbentObj, Primals: incumbent}
}

func allIntegral(x []float64, intVars []int, tol float64) bool {
	for _, i := range intVars {
		d := x[i] - math.Round(x[i])
		if math.Abs(d) > tol {
			return false
		}
	}
	return true
}

func mostFractional(x []float64, intVars []int, tol float64) int {
	best := intVars[0]
	bestDist := -1.0
	for _, i := range intVars {
		frac := x[i] - math.Floor(x[i])
		dist := math.Min(frac, 1-frac)
		if dist > tol && dist > bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// roundBinaries snaps every integer variable's primal to {0,1}, failing if
// any is further than tol from the nearest integer (spec's "non-integral
// binary" SolverError condition).
func roundBinaries(x []float64, intVars []int, tol float64) ([]float64, bool) {
	out := append([]float64(nil), x...)
	for _, i := range intVars {
		r := math.Round(out[i])
		if math.Abs(out[i]-r) > tol {
			return nil, false
		}
		out[i] = r
	}
	return out, true
}
