package entities

import "github.com/google/uuid"

// PriorPlanOrder is the committed (d,b,t) order a prior PlanResult placed:
// the tier it achieved and the total kg across every bucket up to and
// including that tier. Correction mode reconstructs the individual
// per-tier buckets x^kor_{d,b,t,l} from Tier and QtyKg (every bucket below
// Tier was necessarily filled to its full width, and Tier absorbs the
// remainder); entries for distributors/offices/days absent from this list
// default to zero.
type PriorPlanOrder struct {
	PlanResultID uuid.UUID     `json:"plan_result_id"`
	Distributor  DistributorID `json:"distributor_id"`
	Office       OfficeID      `json:"office_id"`
	Day          int           `json:"day"`
	Tier         int           `json:"tier"`
	QtyKg        float64       `json:"qty_kg"`
}
