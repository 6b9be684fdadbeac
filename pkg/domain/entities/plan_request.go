package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanMode selects which MILP Builder path a PlanRequest is routed through.
type PlanMode int

const (
	// ModeBaseline is the single-office, single-implicit-supplier, no-tier
	// fast path kept for the legacy endpoint.
	ModeBaseline PlanMode = iota
	// ModeAdvanced is the multi-distributor, multi-building, tiered path.
	ModeAdvanced
)

func (m PlanMode) String() string {
	switch m {
	case ModeBaseline:
		return "baseline"
	case ModeAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

func (m PlanMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PlanMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "baseline":
		*m = ModeBaseline
	case "advanced":
		*m = ModeAdvanced
	default:
		return fmt.Errorf("unknown plan mode %q", s)
	}
	return nil
}

// BaselineParams carries the legacy endpoint's inline tariff, the self
// contained data the baseline path needs instead of a persisted
// Distributor/Office lookup.
type BaselineParams struct {
	// PurchaseCostsPLNPerKgDaily is the flat per-day price array, length T.
	PurchaseCostsPLNPerKgDaily []decimal.Decimal `json:"purchase_costs_pln_per_kg_daily"`
	TransportCostPLN           decimal.Decimal   `json:"transport_cost_pln"`
	DailyLossFraction          float64           `json:"daily_loss_fraction"`
	StorageCapacityKg          float64           `json:"storage_capacity_kg"`
}

// CorrectionParams carries the bounded, priced adjustment inputs for a
// replanning request. Present only when PlanRequest.IsCorrection is true.
type CorrectionParams struct {
	// PriorPlanRef must resolve, via the PlanResultStore repository, to an
	// owned prior plan with the same office set and an overlapping horizon.
	PriorPlanRef uuid.UUID `json:"prior_plan_ref"`

	// CostPerKg is K_{d,b,t}, the per-kg correction cost coefficient.
	CostPerKg map[CorrectionKey]decimal.Decimal `json:"cost_per_kg"`

	// MaxCorrectionKg is R^max_{d,b,t}, the correction cap.
	MaxCorrectionKg map[CorrectionKey]float64 `json:"max_correction_kg"`
}

// PlanRequest is the caller's request for a single plan. It yields exactly
// one PlanResult.
type PlanRequest struct {
	ID uuid.UUID `json:"id"`

	HorizonStart time.Time `json:"horizon_start"`
	HorizonDays  int       `json:"horizon_days" validate:"gte=1,lte=30"` // T, 1..30

	Mode PlanMode `json:"mode"`

	// OfficeIDs is the office set: one id in baseline mode, one or more in
	// advanced mode.
	OfficeIDs []OfficeID `json:"office_ids" validate:"required,min=1"`
	// DistributorIDs is empty in baseline mode.
	DistributorIDs []DistributorID `json:"distributor_ids,omitempty"`

	// InitialInventoryKg is I0_b, keyed by office.
	InitialInventoryKg map[OfficeID]float64 `json:"initial_inventory_kg"`

	// Demand carries one DemandInput per office in OfficeIDs.
	Demand []DemandInput `json:"demand"`

	// HistoricalOrders are already-delivered prior commitments placed
	// before the horizon (Day < 0), supplied so Arrivals_{b,t} can account
	// for deliveries in flight when the horizon opens. Advanced mode only.
	HistoricalOrders []PriorPlanOrder `json:"historical_orders,omitempty"`

	Baseline *BaselineParams `json:"baseline,omitempty"`

	IsCorrection bool              `json:"is_correction_mode"`
	Correction   *CorrectionParams `json:"correction,omitempty"`
}
