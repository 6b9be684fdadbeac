package entities

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanStatus is the outcome of a solver invocation, mapped from the
// underlying solver's native status.
type PlanStatus int

const (
	Optimal PlanStatus = iota
	Infeasible
	TimedOut
	SolverError
)

func (s PlanStatus) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case TimedOut:
		return "TimedOut"
	case SolverError:
		return "SolverError"
	default:
		return "Unknown"
	}
}

// PlanResult is the durable outcome of one PlanRequest. Orders and
// Inventory are populated iff Status == Optimal.
type PlanResult struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"request_id"`

	Status PlanStatus `json:"status"`

	// Objective is the total cost in PLN, rounded to two decimals.
	Objective decimal.Decimal `json:"objective"`
	SolveMs   int64           `json:"solve_ms"`

	// GapExceeded is set when the solver hit its time limit with a feasible
	// incumbent: reported as Optimal but with a gap above the configured
	// target.
	GapExceeded bool `json:"gap_exceeded"`

	// FailureReason carries the solver-provided reason when Status is
	// SolverError.
	FailureReason string `json:"failure_reason,omitempty"`

	Orders    []OrderIntent       `json:"orders,omitempty"`
	Inventory []InventorySnapshot `json:"inventory,omitempty"`
}

// MarshalJSON renders Status as its string name rather than its ordinal,
// so CLI JSON output reads "Optimal" instead of "0".
func (r PlanResult) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID            uuid.UUID           `json:"id"`
		RequestID     uuid.UUID           `json:"request_id"`
		Status        string              `json:"status"`
		Objective     decimal.Decimal     `json:"objective"`
		SolveMs       int64               `json:"solve_ms"`
		GapExceeded   bool                `json:"gap_exceeded"`
		FailureReason string              `json:"failure_reason,omitempty"`
		Orders        []OrderIntent       `json:"orders,omitempty"`
		Inventory     []InventorySnapshot `json:"inventory,omitempty"`
	}
	return json.Marshal(alias{
		ID:            r.ID,
		RequestID:     r.RequestID,
		Status:        r.Status.String(),
		Objective:     r.Objective,
		SolveMs:       r.SolveMs,
		GapExceeded:   r.GapExceeded,
		FailureReason: r.FailureReason,
		Orders:        r.Orders,
		Inventory:     r.Inventory,
	})
}
