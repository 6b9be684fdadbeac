package entities

import "github.com/shopspring/decimal"

// DistributorID uniquely identifies a Distributor.
type DistributorID string

// Distributor is a coffee supplier with per-office delivery economics and
// volume-tiered, day-varying pricing.
//
// Tier l=0 covers kg below Thresholds[1]; tiers l=1..L cover the bracket
// between Thresholds[l] and Thresholds[l+1] (the last tier is open-ended).
// Thresholds[0] is always 0.
type Distributor struct {
	ID DistributorID `json:"id"`

	// FixedDeliveryCost is Cfix_{d,b}, keyed by office, charged once per
	// day an order is placed with this distributor for that office.
	FixedDeliveryCost map[OfficeID]decimal.Decimal `json:"fixed_delivery_cost"`

	// LeadTimeDays is X_{d,b}, keyed by office, in integer days >= 0.
	LeadTimeDays map[OfficeID]int `json:"lead_time_days"`

	// SupplyCapKg is S_{d,t}, the distributor-wide daily supply ceiling,
	// one entry per planning day.
	SupplyCapKg []float64 `json:"supply_cap_kg"`

	// Thresholds is Q_0=0 < Q_1 < ... < Q_L, the cumulative kg boundaries
	// of the tier ladder. len(Thresholds) == L+1.
	Thresholds []float64 `json:"thresholds"`

	// UnitPrice is P_{d,t,l}: UnitPrice[t][l] is the PLN/kg price of tier
	// l on planning day t. len(UnitPrice) == T, len(UnitPrice[t]) == L+1.
	UnitPrice [][]decimal.Decimal `json:"unit_price"`
}

// TierCount returns L, the number of tiers above tier 0.
func (d Distributor) TierCount() int {
	if len(d.Thresholds) == 0 {
		return 0
	}
	return len(d.Thresholds) - 1
}
