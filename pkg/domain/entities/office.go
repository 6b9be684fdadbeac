package entities

// OfficeID uniquely identifies an Office.
type OfficeID string

// Office is a building the plan procures coffee for.
//
// Mutable only by the admin flow the persistence collaborator owns; the
// planner treats every Office it is handed as a read-only snapshot.
type Office struct {
	ID OfficeID `json:"id"`

	// CapacityKg is the warehouse ceiling Vmax_b. Must be > 0.
	CapacityKg float64 `json:"capacity_kg"`

	// DailyLossFraction is alpha_b, the fraction of end-of-day inventory
	// lost to spoilage overnight. Must be in [0,1].
	DailyLossFraction float64 `json:"daily_loss_fraction"`

	Active bool `json:"active"`
}
