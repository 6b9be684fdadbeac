package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	services "github.com/coffeeplan/core/pkg/application/services"
	"github.com/coffeeplan/core/pkg/config"
	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/infrastructure/repositories/memory"
	"github.com/coffeeplan/core/pkg/planner/solver"
)

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a built-in baseline, advanced, and correction scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), format)
		},
	}
}

// runDemo exercises all three planning paths against a small built-in
// scenario: a single-office baseline plan, a two-office/two-distributor
// advanced plan, and a correction run against the advanced plan's result.
// This is the analogue of the teacher's cmd/mrp demo scenarios under
// example/, rebuilt against the in-memory repositories instead of CSV
// fixtures.
func runDemo(ctx context.Context, outputFormat string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	solverOpts := solver.Options{TimeLimit: cfg.SolverTimeLimit, MIPGap: cfg.MIPGap, IntegerTolerance: cfg.IntegerTolerance}

	offices := memory.NewOfficeRepository()
	distributors := memory.NewDistributorRepository()
	for _, o := range demoOffices() {
		offices.Seed(o)
	}
	for _, d := range demoDistributors(demoHorizonDays) {
		distributors.Seed(d)
	}
	plans := memory.NewPlanResultStore()

	orchestrator := services.NewPlanningOrchestrator(offices, distributors, plans, solverOpts, cfg.MaxConcurrentPlans, cfg.NewLogger())

	fmt.Println("=== baseline plan ===")
	baselineResult, err := orchestrator.Plan(ctx, demoBaselineRequest())
	if err != nil {
		return fmt.Errorf("baseline plan failed: %w", err)
	}
	if err := printResult(baselineResult, outputFormat); err != nil {
		return err
	}

	fmt.Println("\n=== advanced plan ===")
	advancedReq := demoAdvancedRequest()
	advancedResult, err := orchestrator.Plan(ctx, advancedReq)
	if err != nil {
		return fmt.Errorf("advanced plan failed: %w", err)
	}
	if err := printResult(advancedResult, outputFormat); err != nil {
		return err
	}

	if advancedResult.Status != entities.Optimal {
		fmt.Println("\nskipping correction demo: advanced plan did not solve to optimality")
		return nil
	}

	fmt.Println("\n=== correction replan ===")
	correctionReq := demoCorrectionRequest(advancedReq, advancedResult.ID)
	correctionResult, err := orchestrator.Replan(ctx, correctionReq)
	if err != nil {
		return fmt.Errorf("correction replan failed: %w", err)
	}
	return printResult(correctionResult, outputFormat)
}

const demoHorizonDays = 7

func demoOffices() []entities.Office {
	return []entities.Office{
		{ID: "hq", CapacityKg: 500, DailyLossFraction: 0.02, Active: true},
		{ID: "branch", CapacityKg: 300, DailyLossFraction: 0.03, Active: true},
	}
}

// demoDistributors builds two tiered distributors, Acme (3 tiers) and
// Bravo (2 tiers, padded by the Assembler to Acme's L at assembly time),
// each serving both demo offices with distinct lead times and prices.
func demoDistributors(t int) []entities.Distributor {
	acme := entities.Distributor{
		ID: "acme",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{
			"hq":     decimal.NewFromFloat(40),
			"branch": decimal.NewFromFloat(55),
		},
		LeadTimeDays: map[entities.OfficeID]int{"hq": 1, "branch": 2},
		SupplyCapKg:  constantDailySeries(t, 400),
		Thresholds:   []float64{0, 100, 250},
		UnitPrice:    tieredPriceSeries(t, []float64{28, 24, 20}),
	}
	bravo := entities.Distributor{
		ID: "bravo",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{
			"hq":     decimal.NewFromFloat(35),
			"branch": decimal.NewFromFloat(35),
		},
		LeadTimeDays: map[entities.OfficeID]int{"hq": 2, "branch": 1},
		SupplyCapKg:  constantDailySeries(t, 250),
		Thresholds:   []float64{0, 150},
		UnitPrice:    tieredPriceSeries(t, []float64{26, 22}),
	}
	return []entities.Distributor{acme, bravo}
}

func constantDailySeries(t int, v float64) []float64 {
	series := make([]float64, t)
	for i := range series {
		series[i] = v
	}
	return series
}

func tieredPriceSeries(t int, tierPricesPLNPerKg []float64) [][]decimal.Decimal {
	rows := make([][]decimal.Decimal, t)
	for day := range rows {
		row := make([]decimal.Decimal, len(tierPricesPLNPerKg))
		for l, p := range tierPricesPLNPerKg {
			row[l] = decimal.NewFromFloat(p)
		}
		rows[day] = row
	}
	return rows
}

func demoDemand() []entities.DemandInput {
	workers := []int{40, 42, 38, 45, 50, 0, 0}
	conferences := []int{1, 0, 2, 0, 1, 0, 0}
	return []entities.DemandInput{
		{Office: "hq", WorkersDaily: workers, ConferencesDaily: conferences},
		{Office: "branch", WorkersDaily: []int{20, 22, 18, 24, 25, 0, 0}, ConferencesDaily: []int{0, 1, 0, 0, 1, 0, 0}},
	}
}

func demoBaselineRequest() *entities.PlanRequest {
	return &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        demoHorizonDays,
		Mode:               entities.ModeBaseline,
		OfficeIDs:          []entities.OfficeID{"hq"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 20},
		Demand:             []entities.DemandInput{demoDemand()[0]},
		Baseline: &entities.BaselineParams{
			PurchaseCostsPLNPerKgDaily: []decimal.Decimal{
				decimal.NewFromFloat(30), decimal.NewFromFloat(30), decimal.NewFromFloat(29),
				decimal.NewFromFloat(29), decimal.NewFromFloat(28), decimal.NewFromFloat(28), decimal.NewFromFloat(28),
			},
			TransportCostPLN:  decimal.NewFromFloat(45),
			DailyLossFraction: 0.02,
			StorageCapacityKg: 500,
		},
	}
}

func demoAdvancedRequest() *entities.PlanRequest {
	return &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        demoHorizonDays,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq", "branch"},
		DistributorIDs:     []entities.DistributorID{"acme", "bravo"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 20, "branch": 10},
		Demand:             demoDemand(),
	}
}

// demoCorrectionRequest builds a replanning request for the same offices
// and distributors, pointing at priorResultID, with a modest per-kg
// correction cost and cap everywhere.
func demoCorrectionRequest(base *entities.PlanRequest, priorResultID uuid.UUID) *entities.PlanRequest {
	costPerKg := map[entities.CorrectionKey]decimal.Decimal{}
	maxCorrection := map[entities.CorrectionKey]float64{}
	for _, d := range []entities.DistributorID{"acme", "bravo"} {
		for _, b := range base.OfficeIDs {
			for t := 0; t < demoHorizonDays; t++ {
				key := entities.CorrectionKey{Distributor: d, Office: b, Day: t}
				costPerKg[key] = decimal.NewFromFloat(2)
				maxCorrection[key] = 50
			}
		}
	}

	req := *base
	req.ID = uuid.New()
	req.IsCorrection = true
	req.Correction = &entities.CorrectionParams{
		PriorPlanRef:    priorResultID,
		CostPerKg:       costPerKg,
		MaxCorrectionKg: maxCorrection,
	}
	return &req
}
