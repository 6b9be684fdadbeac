package planner

import (
	"github.com/shopspring/decimal"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// Parameters is the assembled, validated input the MILP Builder consumes.
// It is the output of AssembleParameters: every array here is already
// length-checked against T and every cross-field invariant already holds.
type Parameters struct {
	Mode entities.PlanMode
	T    int

	Offices      []entities.OfficeID
	Distributors []entities.DistributorID

	// L is the unified tier count: max_d L_d, per the accepted resolution
	// of spec's open question (a). Zero in baseline mode.
	L int

	CapacityKg         map[entities.OfficeID]float64
	LossFraction       map[entities.OfficeID]float64
	InitialInventoryKg map[entities.OfficeID]float64
	// DemandKg is D_{b,t}, produced by the Demand Estimator, length T per
	// office.
	DemandKg map[entities.OfficeID][]float64

	// FixedDeliveryCost is Cfix_{d,b}.
	FixedDeliveryCost map[entities.OrderKey]decimal.Decimal
	// LeadTimeDays is X_{d,b}, aligned at the shared L via the d-b pair.
	LeadTimeDays map[entities.OrderKey]int
	// SupplyCapKg is S_{d,t}, length T per distributor.
	SupplyCapKg map[entities.DistributorID][]float64
	// Thresholds is Q_0..Q_L per distributor, continued with strictly
	// increasing buckets at the last real price when a distributor's own
	// L_d < L.
	Thresholds map[entities.DistributorID][]float64
	// UnitPrice is P_{d,t,l}: UnitPrice[d][t][l].
	UnitPrice map[entities.DistributorID][][]decimal.Decimal

	// BigM is max_{d,t} S_{d,t}, the supply-linked activation constant.
	BigM float64

	// HistoricalArrivals is kg arriving during the horizon from placement
	// days tau<0, keyed by (d,b,t) where t is the arrival day (tau+X_{d,b}),
	// already restricted to t in [0,T).
	HistoricalArrivals map[entities.OrderKey]float64

	IsCorrection bool
	// PriorKor is x^kor_{d,b,t,l}, resolved from the prior plan's
	// OrderIntents; entries absent default to 0.
	PriorKor map[entities.OrderKey]float64
	// CorrectionCostPerKg is K_{d,b,t}.
	CorrectionCostPerKg map[entities.CorrectionKey]decimal.Decimal
	// MaxCorrectionKg is R^max_{d,b,t}.
	MaxCorrectionKg map[entities.CorrectionKey]float64

	// Baseline-only fields, set iff Mode == ModeBaseline.
	BaselineOffice        entities.OfficeID
	BaselineUnitPricePLN  []decimal.Decimal // length T
	BaselineTransportCost decimal.Decimal
}

// distributorOfficeKey helps address LeadTimeDays/FixedDeliveryCost, which
// have no tier or day component; Tier and Day are left zero.
func distributorOfficeKey(d entities.DistributorID, b entities.OfficeID) entities.OrderKey {
	return entities.OrderKey{Distributor: d, Office: b}
}
