package main

import (
	"context"
	"fmt"

	services "github.com/coffeeplan/core/pkg/application/services"
	"github.com/coffeeplan/core/pkg/config"
	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/infrastructure/repositories/jsonfile"
	"github.com/coffeeplan/core/pkg/infrastructure/repositories/memory"
	"github.com/coffeeplan/core/pkg/planner/solver"
)

// runScenario loads the scenario file at path, seeds the in-memory
// repositories from it, and runs its embedded PlanRequest through a
// PlanningOrchestrator, printing the PlanResult in the requested format.
func runScenario(ctx context.Context, scenarioPath, outputFormat string) error {
	scenario, err := jsonfile.NewLoader().LoadScenario(scenarioPath)
	if err != nil {
		return err
	}

	offices := memory.NewOfficeRepository()
	for _, o := range scenario.Offices {
		offices.Seed(o)
	}
	distributors := memory.NewDistributorRepository()
	for _, d := range scenario.Distributors {
		distributors.Seed(d)
	}
	plans := memory.NewPlanResultStore()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	orchestrator := services.NewPlanningOrchestrator(
		offices, distributors, plans,
		solver.Options{TimeLimit: cfg.SolverTimeLimit, MIPGap: cfg.MIPGap, IntegerTolerance: cfg.IntegerTolerance},
		cfg.MaxConcurrentPlans,
		cfg.NewLogger(),
	)

	result, err := orchestrator.Plan(ctx, &scenario.Request)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	return printResult(result, outputFormat)
}

// seedPriorPlan loads an already-solved PlanResult into store, the
// fixture a correction demo run needs so its PriorPlanRef resolves.
func seedPriorPlan(store *memory.PlanResultStore, prior *entities.PlanResult) {
	if prior.Status == entities.Optimal {
		_ = store.Save(context.Background(), prior)
		return
	}
	_ = store.SaveFailed(context.Background(), prior)
}
