// Package services holds the application layer that coordinates the
// optimization core (pkg/planner) with its repository collaborators.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/domain/repositories"
	"github.com/coffeeplan/core/pkg/planner"
	"github.com/coffeeplan/core/pkg/planner/solver"
)

// PlanningOrchestrator assembles a PlanRequest into a PlanResult via
// pkg/planner and persists it transactionally, the direct analogue of the
// teacher's orchestration.PlanningOrchestrator (same role: wire the
// optimization core to its repositories, one RunCompletePlanning-shaped
// entrypoint per use case) with a concurrency gate spec.md §5 requires
// and the teacher's orchestrator does not, because the teacher never runs
// more than one MRP explosion concurrently per process.
type PlanningOrchestrator struct {
	planner *planner.Planner
	plans   repositories.PlanResultStore
	log     *slog.Logger

	sem *semaphore.Weighted
}

// NewPlanningOrchestrator wires an orchestrator bounding concurrent
// Plan/Replan calls at maxConcurrentPlans.
func NewPlanningOrchestrator(
	offices repositories.OfficeRepository,
	distributors repositories.DistributorRepository,
	plans repositories.PlanResultStore,
	solverOpts solver.Options,
	maxConcurrentPlans int64,
	log *slog.Logger,
) *PlanningOrchestrator {
	if log == nil {
		log = slog.Default()
	}
	assembler := planner.NewAssembler(offices, distributors, plans)
	return &PlanningOrchestrator{
		planner: planner.NewPlanner(assembler, solverOpts),
		plans:   plans,
		log:     log,
		sem:     semaphore.NewWeighted(maxConcurrentPlans),
	}
}

// Plan acquires a concurrency slot, runs the full assemble->build->solve
// ->project pipeline, and persists the outcome: Save for Optimal,
// SaveFailed for everything else audit-worthy. Every non-InvalidInput
// outcome is logged with the full request before being returned, per
// spec.md §7's propagation policy.
func (o *PlanningOrchestrator) Plan(ctx context.Context, req *entities.PlanRequest) (*entities.PlanResult, error) {
	if err := o.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquiring planning slot: %w", err)
	}
	defer o.sem.Release(1)

	result, err := o.planner.Plan(ctx, req)
	if err != nil {
		if pe, ok := err.(*planner.PlanningError); ok && pe.Kind != planner.InvalidInput {
			o.log.Error("plan assembly failed", "request_id", req.ID, "kind", pe.Kind.String(), "err", err, "request", req)
		}
		return nil, err
	}

	if result.Status != entities.Optimal {
		o.log.Warn("plan did not solve to optimality", "request_id", req.ID, "status", result.Status.String(), "reason", result.FailureReason, "request", req)
		if saveErr := o.plans.SaveFailed(ctx, result); saveErr != nil {
			o.log.Error("saving failed plan result", "request_id", req.ID, "err", saveErr, "request", req)
			return nil, planner.NewPersistenceError("saving failed plan result", saveErr)
		}
		return result, nil
	}

	if saveErr := o.plans.Save(ctx, result); saveErr != nil {
		o.log.Error("saving plan result", "request_id", req.ID, "err", saveErr, "request", req)
		return nil, planner.NewPersistenceError("saving plan result", saveErr)
	}
	return result, nil
}

// Replan is Plan under a different name for callers that want to make the
// correction-mode intent explicit at the call site; req.IsCorrection
// drives the actual behavior difference inside the planning core.
func (o *PlanningOrchestrator) Replan(ctx context.Context, req *entities.PlanRequest) (*entities.PlanResult, error) {
	return o.Plan(ctx, req)
}
