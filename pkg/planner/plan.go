package planner

import (
	"context"

	"github.com/google/uuid"

	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/planner/solver"
)

// Planner is the stateless optimization core: assemble -> build -> solve
// -> project, one call per PlanRequest, no shared mutable state across
// calls — the direct analogue of the teacher's *Engine (same pattern: a
// small struct of collaborators, context-aware methods, one explosion/one
// solve per call). A Planner is safe for concurrent use provided the
// caller bounds concurrent Plan calls (see PlanningOrchestrator).
type Planner struct {
	Assembler *Assembler
	Driver    *solver.Driver
}

// NewPlanner wires a Planner from an Assembler and solver Options.
func NewPlanner(assembler *Assembler, opts solver.Options) *Planner {
	return &Planner{Assembler: assembler, Driver: solver.NewDriver(opts)}
}

// Plan assembles, builds, solves and projects req into a PlanResult. A
// non-nil error means planning never reached a solver outcome at all
// (InvalidInput, PersistenceError while fetching repository data, or
// CorrectionPreconditionFailed); Infeasible, TimedOut, SolverError and
// Optimal are all reported as PlanResult.Status with a nil error, since
// all four are audit-worthy outcomes a caller may persist.
func (p *Planner) Plan(ctx context.Context, req *entities.PlanRequest) (*entities.PlanResult, error) {
	params, err := p.Assembler.AssembleParameters(ctx, req)
	if err != nil {
		return nil, err
	}

	resultID := uuid.New()
	if params.Mode == entities.ModeBaseline {
		model, bv, _ := BuildBaselineModel(params)
		res := p.Driver.Run(ctx, model)
		return baselineResult(req.ID, resultID, params, bv, res), nil
	}

	model, vm, _ := BuildAdvancedModel(params)
	res := p.Driver.Run(ctx, model)
	return advancedResult(req.ID, resultID, params, vm, res), nil
}

func advancedResult(requestID, resultID uuid.UUID, params *Parameters, vm *varMap, res solver.Result) *entities.PlanResult {
	out := &entities.PlanResult{ID: resultID, RequestID: requestID, SolveMs: res.SolveMs}
	switch res.Status {
	case solver.StatusOptimal:
		orders, inventory := ProjectAdvanced(params, vm, res.Primals)
		objective := ObjectiveFromOrders(orders).Add(CorrectionCostFromPrimals(params, vm, res.Primals)).Round(2)
		out.Status = entities.Optimal
		out.Objective = objective
		out.GapExceeded = res.GapExceeded
		out.Orders = orders
		out.Inventory = inventory
	case solver.StatusInfeasible:
		out.Status = entities.Infeasible
	case solver.StatusTimedOut:
		out.Status = entities.TimedOut
	default:
		out.Status = entities.SolverError
		out.FailureReason = res.Reason
	}
	return out
}

func baselineResult(requestID, resultID uuid.UUID, params *Parameters, bv *baselineVarMap, res solver.Result) *entities.PlanResult {
	out := &entities.PlanResult{ID: resultID, RequestID: requestID, SolveMs: res.SolveMs}
	switch res.Status {
	case solver.StatusOptimal:
		orders, inventory := orderIntentsFromBaseline(params, bv, res.Primals)
		out.Status = entities.Optimal
		out.Objective = ObjectiveFromOrders(orders).Round(2)
		out.GapExceeded = res.GapExceeded
		out.Orders = orders
		out.Inventory = inventory
	case solver.StatusInfeasible:
		out.Status = entities.Infeasible
	case solver.StatusTimedOut:
		out.Status = entities.TimedOut
	default:
		out.Status = entities.SolverError
		out.FailureReason = res.Reason
	}
	return out
}
