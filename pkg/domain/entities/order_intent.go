package entities

import "github.com/shopspring/decimal"

// OrderIntent is one emitted order: qty_kg is always > 0. Emitted once per
// (distributor, office, placement day) whenever total ordered quantity
// exceeds the ordering epsilon.
type OrderIntent struct {
	Office       OfficeID      `json:"office_id"`
	Distributor  DistributorID `json:"distributor_id"`
	PlacementDay int           `json:"placement_day"`
	DeliveryDay  int           `json:"delivery_day"` // PlacementDay + lead time

	QtyKg float64 `json:"qty_kg"`

	// Tier is the achieved tier: the largest l with y^thr_{d,b,t,l}=1, or 0
	// if none reached.
	Tier int `json:"tier"`
	// UnitPrice is the price of the achieved Tier.
	UnitPrice decimal.Decimal `json:"unit_price"`
	// TransportCost is Cfix_{d,b}, charged because an order was placed.
	TransportCost decimal.Decimal `json:"transport_cost"`
	// Total is QtyKg*UnitPrice + TransportCost.
	Total decimal.Decimal `json:"total"`
}
