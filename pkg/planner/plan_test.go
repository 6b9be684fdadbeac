package planner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/infrastructure/repositories/memory"
	"github.com/coffeeplan/core/pkg/planner/solver"
)

func testSolverOptions() solver.Options {
	return solver.Options{TimeLimit: 5 * time.Second, MIPGap: 1e-4, IntegerTolerance: 1e-6}
}

func TestPlanBaselineModeReturnsOptimalResult(t *testing.T) {
	offices := memory.NewOfficeRepository()
	distributors := memory.NewDistributorRepository()
	plans := memory.NewPlanResultStore()
	p := NewPlanner(NewAssembler(offices, distributors, plans), testSolverOptions())

	req := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        3,
		Mode:               entities.ModeBaseline,
		OfficeIDs:          []entities.OfficeID{"hq"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 5},
		Demand: []entities.DemandInput{
			{Office: "hq", WorkersDaily: []int{10, 10, 10}, ConferencesDaily: []int{0, 0, 0}},
		},
		Baseline: &entities.BaselineParams{
			PurchaseCostsPLNPerKgDaily: []decimal.Decimal{
				decimal.NewFromInt(30), decimal.NewFromInt(28), decimal.NewFromInt(29),
			},
			TransportCostPLN:  decimal.NewFromInt(40),
			DailyLossFraction: 0,
			StorageCapacityKg: 100,
		},
	}

	result, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, entities.Optimal, result.Status)
	assert.True(t, result.Objective.IsPositive())
	assert.NotEmpty(t, result.Orders)
	assert.Len(t, result.Inventory, 3)
	for _, snap := range result.Inventory {
		assert.LessOrEqual(t, snap.Level, 100.0)
		assert.GreaterOrEqual(t, snap.Level, 0.0)
	}
}

func TestPlanAdvancedModeResolvesTieredOrder(t *testing.T) {
	offices := memory.NewOfficeRepository()
	offices.Seed(entities.Office{ID: "hq", CapacityKg: 200, DailyLossFraction: 0, Active: true})

	distributors := memory.NewDistributorRepository()
	distributors.Seed(entities.Distributor{
		ID:                "acme",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{"hq": decimal.NewFromInt(10)},
		LeadTimeDays:      map[entities.OfficeID]int{"hq": 0},
		SupplyCapKg:       []float64{200, 200},
		Thresholds:        []float64{0, 30},
		UnitPrice: [][]decimal.Decimal{
			{decimal.NewFromInt(20), decimal.NewFromInt(15)},
			{decimal.NewFromInt(20), decimal.NewFromInt(15)},
		},
	})
	plans := memory.NewPlanResultStore()
	p := NewPlanner(NewAssembler(offices, distributors, plans), testSolverOptions())

	req := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        2,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq"},
		DistributorIDs:     []entities.DistributorID{"acme"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 0},
		Demand: []entities.DemandInput{
			{Office: "hq", WorkersDaily: []int{40, 0}, ConferencesDaily: []int{0, 0}},
		},
	}

	result, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, entities.Optimal, result.Status)
	require.NotEmpty(t, result.Orders)
	assert.Equal(t, entities.DistributorID("acme"), result.Orders[0].Distributor)
	// demand on day 0 is 40*0.25=10kg, below the tier-1 threshold of 30kg,
	// so the achieved tier should be 0.
	assert.Equal(t, 0, result.Orders[0].Tier)
}

func TestPlanAdvancedModeResolvesTopTierOrder(t *testing.T) {
	offices := memory.NewOfficeRepository()
	offices.Seed(entities.Office{ID: "hq", CapacityKg: 500, DailyLossFraction: 0, Active: true})

	distributors := memory.NewDistributorRepository()
	distributors.Seed(entities.Distributor{
		ID:                "acme",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{"hq": decimal.NewFromInt(10)},
		LeadTimeDays:      map[entities.OfficeID]int{"hq": 0},
		SupplyCapKg:       []float64{500},
		Thresholds:        []float64{0, 30, 50},
		UnitPrice: [][]decimal.Decimal{
			{decimal.NewFromInt(20), decimal.NewFromInt(15), decimal.NewFromInt(10)},
		},
	})
	plans := memory.NewPlanResultStore()
	p := NewPlanner(NewAssembler(offices, distributors, plans), testSolverOptions())

	req := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        1,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq"},
		DistributorIDs:     []entities.DistributorID{"acme"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 0},
		// 240 workers * 0.25 kg/worker/day = 60kg, past Q_2=50 so the
		// order must land in tier 2.
		Demand: []entities.DemandInput{{Office: "hq", WorkersDaily: []int{240}, ConferencesDaily: []int{0}}},
	}

	result, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, entities.Optimal, result.Status)
	require.Len(t, result.Orders, 1)

	order := result.Orders[0]
	assert.Equal(t, 2, order.Tier)
	assert.True(t, decimal.NewFromInt(10).Equal(order.UnitPrice))
	assert.InDelta(t, 60, order.QtyKg, 1e-6)
	assert.True(t, result.Objective.Equal(ObjectiveFromOrders(result.Orders)))
}

func TestPlanAdvancedModePaddedShortDistributorDoesNotSkipLowerTiers(t *testing.T) {
	offices := memory.NewOfficeRepository()
	offices.Seed(entities.Office{ID: "hq", CapacityKg: 1000, DailyLossFraction: 0, Active: true})

	distributors := memory.NewDistributorRepository()
	// bravo has only one tier above tier 0; wide has two, so the shared L
	// across the request is 2 and bravo's real last tier gets padded.
	distributors.Seed(entities.Distributor{
		ID:                "bravo",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{"hq": decimal.NewFromInt(0)},
		LeadTimeDays:      map[entities.OfficeID]int{"hq": 0},
		SupplyCapKg:       []float64{1000},
		Thresholds:        []float64{0, 150},
		UnitPrice:         [][]decimal.Decimal{{decimal.NewFromInt(26), decimal.NewFromInt(22)}},
	})
	// wide never actually supplies anything (SupplyCapKg is 0); it exists
	// only to force the shared L up to 2.
	distributors.Seed(entities.Distributor{
		ID:                "wide",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{"hq": decimal.NewFromInt(0)},
		LeadTimeDays:      map[entities.OfficeID]int{"hq": 0},
		SupplyCapKg:       []float64{0},
		Thresholds:        []float64{0, 10, 20},
		UnitPrice: [][]decimal.Decimal{
			{decimal.NewFromInt(100), decimal.NewFromInt(100), decimal.NewFromInt(100)},
		},
	})
	plans := memory.NewPlanResultStore()
	p := NewPlanner(NewAssembler(offices, distributors, plans), testSolverOptions())

	req := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        1,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq"},
		DistributorIDs:     []entities.DistributorID{"bravo", "wide"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 0},
		// 200 workers * 0.25 kg/worker/day = 50kg, well below bravo's own
		// Q_1=150, so the order must stay in tier 0 at bravo's tier-0
		// price rather than being able to reach the padded top tier's
		// discounted price for free.
		Demand: []entities.DemandInput{{Office: "hq", WorkersDaily: []int{200}, ConferencesDaily: []int{0}}},
	}

	result, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, entities.Optimal, result.Status)

	var bravoOrder *entities.OrderIntent
	for i := range result.Orders {
		if result.Orders[i].Distributor == "bravo" {
			bravoOrder = &result.Orders[i]
		}
	}
	require.NotNil(t, bravoOrder, "expected an order placed with bravo")
	assert.Equal(t, 0, bravoOrder.Tier)
	assert.True(t, decimal.NewFromInt(26).Equal(bravoOrder.UnitPrice), "sub-threshold order must be charged bravo's tier-0 price, not its padded discount")
}

func TestPlanInvalidInputReturnsError(t *testing.T) {
	offices := memory.NewOfficeRepository()
	distributors := memory.NewDistributorRepository()
	plans := memory.NewPlanResultStore()
	p := NewPlanner(NewAssembler(offices, distributors, plans), testSolverOptions())

	req := &entities.PlanRequest{
		ID:          uuid.New(),
		HorizonDays: 0, // violates gte=1
		Mode:        entities.ModeBaseline,
		OfficeIDs:   []entities.OfficeID{"hq"},
	}

	_, err := p.Plan(context.Background(), req)
	require.Error(t, err)
	planningErr, ok := err.(*PlanningError)
	require.True(t, ok)
	assert.Equal(t, InvalidInput, planningErr.Kind)
}

func TestPlanCorrectionModeSolvesAgainstStoredPriorPlan(t *testing.T) {
	offices := memory.NewOfficeRepository()
	offices.Seed(entities.Office{ID: "hq", CapacityKg: 200, DailyLossFraction: 0, Active: true})

	distributors := memory.NewDistributorRepository()
	distributors.Seed(entities.Distributor{
		ID:                "acme",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{"hq": decimal.NewFromInt(10)},
		LeadTimeDays:      map[entities.OfficeID]int{"hq": 0},
		SupplyCapKg:       []float64{200},
		Thresholds:        []float64{0},
		UnitPrice:         [][]decimal.Decimal{{decimal.NewFromInt(20)}},
	})
	plans := memory.NewPlanResultStore()
	assembler := NewAssembler(offices, distributors, plans)
	p := NewPlanner(assembler, testSolverOptions())

	priorReq := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        1,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq"},
		DistributorIDs:     []entities.DistributorID{"acme"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 0},
		Demand:             []entities.DemandInput{{Office: "hq", WorkersDaily: []int{40}, ConferencesDaily: []int{0}}},
	}
	priorResult, err := p.Plan(context.Background(), priorReq)
	require.NoError(t, err)
	require.Equal(t, entities.Optimal, priorResult.Status)
	require.NoError(t, plans.Save(context.Background(), priorResult))

	correctionReq := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        1,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq"},
		DistributorIDs:     []entities.DistributorID{"acme"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 0},
		Demand:             []entities.DemandInput{{Office: "hq", WorkersDaily: []int{40}, ConferencesDaily: []int{0}}},
		IsCorrection:       true,
		Correction: &entities.CorrectionParams{
			PriorPlanRef: priorResult.ID,
			CostPerKg: map[entities.CorrectionKey]decimal.Decimal{
				{Distributor: "acme", Office: "hq", Day: 0}: decimal.NewFromInt(1),
			},
			MaxCorrectionKg: map[entities.CorrectionKey]float64{
				{Distributor: "acme", Office: "hq", Day: 0}: 50,
			},
		},
	}

	result, err := p.Plan(context.Background(), correctionReq)
	require.NoError(t, err)
	require.Equal(t, entities.Optimal, result.Status)
}

// TestPlanCorrectionModeReproducingATieredPriorOrderHasNoSpuriousCost
// exercises correction mode against a prior order that reached tier 1, so
// the prior-order decomposition (resolveCorrection) has more than one
// nonzero bucket to reconstruct. Re-solving the identical request in
// correction mode must reproduce the same (d,b,t,l) buckets and so settle
// at zero correction cost; reconstructing the whole prior quantity into a
// single tier bucket (rather than the full x^0..x^tier decomposition)
// would force large spurious r+/r- corrections even though the plan is
// unchanged.
func TestPlanCorrectionModeReproducingATieredPriorOrderHasNoSpuriousCost(t *testing.T) {
	offices := memory.NewOfficeRepository()
	offices.Seed(entities.Office{ID: "hq", CapacityKg: 200, DailyLossFraction: 0, Active: true})

	distributors := memory.NewDistributorRepository()
	distributors.Seed(entities.Distributor{
		ID:                "acme",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{"hq": decimal.NewFromInt(10)},
		LeadTimeDays:      map[entities.OfficeID]int{"hq": 0},
		SupplyCapKg:       []float64{200},
		Thresholds:        []float64{0, 20, 40},
		UnitPrice: [][]decimal.Decimal{
			{decimal.NewFromInt(20), decimal.NewFromInt(15), decimal.NewFromInt(10)},
		},
	})
	plans := memory.NewPlanResultStore()
	assembler := NewAssembler(offices, distributors, plans)
	p := NewPlanner(assembler, testSolverOptions())

	// 120 workers * 0.25 kg/worker/day = 30kg: x^0=20 (tier 0 filled),
	// x^1=10 (tier 1, the remainder), achieved tier 1.
	priorReq := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        1,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq"},
		DistributorIDs:     []entities.DistributorID{"acme"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 0},
		Demand:             []entities.DemandInput{{Office: "hq", WorkersDaily: []int{120}, ConferencesDaily: []int{0}}},
	}
	priorResult, err := p.Plan(context.Background(), priorReq)
	require.NoError(t, err)
	require.Equal(t, entities.Optimal, priorResult.Status)
	require.Len(t, priorResult.Orders, 1)
	require.Equal(t, 1, priorResult.Orders[0].Tier)
	require.NoError(t, plans.Save(context.Background(), priorResult))

	correctionReq := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        1,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq"},
		DistributorIDs:     []entities.DistributorID{"acme"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 0},
		Demand:             []entities.DemandInput{{Office: "hq", WorkersDaily: []int{120}, ConferencesDaily: []int{0}}},
		IsCorrection:       true,
		Correction: &entities.CorrectionParams{
			PriorPlanRef: priorResult.ID,
			CostPerKg: map[entities.CorrectionKey]decimal.Decimal{
				{Distributor: "acme", Office: "hq", Day: 0}: decimal.NewFromInt(1),
			},
			MaxCorrectionKg: map[entities.CorrectionKey]float64{
				{Distributor: "acme", Office: "hq", Day: 0}: 100,
			},
		},
	}

	result, err := p.Plan(context.Background(), correctionReq)
	require.NoError(t, err)
	require.Equal(t, entities.Optimal, result.Status)
	assert.InDelta(t, priorResult.Objective.InexactFloat64(), result.Objective.InexactFloat64(), 0.5)
}

func TestPlanCorrectionModeFailsWhenPriorPlanMissing(t *testing.T) {
	offices := memory.NewOfficeRepository()
	offices.Seed(entities.Office{ID: "hq", CapacityKg: 200, DailyLossFraction: 0, Active: true})
	distributors := memory.NewDistributorRepository()
	distributors.Seed(entities.Distributor{
		ID:                "acme",
		FixedDeliveryCost: map[entities.OfficeID]decimal.Decimal{"hq": decimal.NewFromInt(10)},
		LeadTimeDays:      map[entities.OfficeID]int{"hq": 0},
		SupplyCapKg:       []float64{200},
		Thresholds:        []float64{0},
		UnitPrice:         [][]decimal.Decimal{{decimal.NewFromInt(20)}},
	})
	plans := memory.NewPlanResultStore()
	p := NewPlanner(NewAssembler(offices, distributors, plans), testSolverOptions())

	req := &entities.PlanRequest{
		ID:                 uuid.New(),
		HorizonDays:        1,
		Mode:               entities.ModeAdvanced,
		OfficeIDs:          []entities.OfficeID{"hq"},
		DistributorIDs:     []entities.DistributorID{"acme"},
		InitialInventoryKg: map[entities.OfficeID]float64{"hq": 0},
		Demand:             []entities.DemandInput{{Office: "hq", WorkersDaily: []int{40}, ConferencesDaily: []int{0}}},
		IsCorrection:       true,
		Correction: &entities.CorrectionParams{
			PriorPlanRef: uuid.New(),
		},
	}

	_, err := p.Plan(context.Background(), req)
	require.Error(t, err)
	planningErr, ok := err.(*PlanningError)
	require.True(t, ok)
	assert.Equal(t, CorrectionPreconditionFailed, planningErr.Kind)
}
