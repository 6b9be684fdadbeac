package planner

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// orderEpsilonKg is the minimum order quantity that counts as "an order
// was placed" for projection purposes (spec's epsilon = 1e-6 kg).
const orderEpsilonKg = 1e-6

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// ProjectAdvanced turns a solved advanced model's primal values into the
// durable OrderIntent/InventorySnapshot shape, grounded on
// original_source's optimization.py:_create_orders_from_result and
// _create_inventory_snapshots, rewritten as pure functions over a primal
// slice instead of methods bound to an async database session.
func ProjectAdvanced(p *Parameters, vm *varMap, primals []float64) ([]entities.OrderIntent, []entities.InventorySnapshot) {
	var orders []entities.OrderIntent

	for _, d := range p.Distributors {
		for _, b := range p.Offices {
			cfix := p.FixedDeliveryCost[distributorOfficeKey(d, b)]
			lead := p.LeadTimeDays[distributorOfficeKey(d, b)]
			for t := 0; t < p.T; t++ {
				qtyVars := vm.totalOrderQtyVars(d, b, t, p.L)
				total := 0.0
				for _, idx := range qtyVars {
					total += primals[idx]
				}
				if total <= orderEpsilonKg {
					continue
				}

				tier := 0
				for l := p.L; l >= 1; l-- {
					if primals[vm.yThr[entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l}]] > 0.5 {
						tier = l
						break
					}
				}
				unitPrice := p.UnitPrice[d][t][tier]
				qtyDec := decimalFromFloat(total)
				orders = append(orders, entities.OrderIntent{
					Office:        b,
					Distributor:   d,
					PlacementDay:  t,
					DeliveryDay:   t + lead,
					QtyKg:         total,
					Tier:          tier,
					UnitPrice:     unitPrice,
					TransportCost: cfix,
					Total:         unitPrice.Mul(qtyDec).Add(cfix),
				})
			}
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		a, c := orders[i], orders[j]
		if a.PlacementDay != c.PlacementDay {
			return a.PlacementDay < c.PlacementDay
		}
		if a.Distributor != c.Distributor {
			return a.Distributor < c.Distributor
		}
		if a.Office != c.Office {
			return a.Office < c.Office
		}
		return a.Tier < c.Tier
	})

	var inventory []entities.InventorySnapshot
	for _, b := range p.Offices {
		alpha := p.LossFraction[b]
		prevLevel := p.InitialInventoryKg[b]
		for t := 0; t < p.T; t++ {
			level := primals[vm.inv[invKey(b, t)]]

			deliveries := 0.0
			for _, d := range p.Distributors {
				lead := p.LeadTimeDays[distributorOfficeKey(d, b)]
				tau := t - lead
				if tau >= 0 && tau < p.T {
					for _, idx := range vm.totalOrderQtyVars(d, b, tau, p.L) {
						deliveries += primals[idx]
					}
				}
				deliveries += p.HistoricalArrivals[entities.OrderKey{Distributor: d, Office: b, Day: t}]
			}

			inventory = append(inventory, entities.InventorySnapshot{
				Office:             b,
				Day:                t,
				Level:              level,
				DemandFulfilled:    p.DemandKg[b][t],
				Loss:               alpha * prevLevel,
				DeliveriesReceived: deliveries,
				IsProjected:        true,
			})
			prevLevel = level
		}
	}

	return orders, inventory
}

// ObjectiveFromOrders recomputes PlanResult.Objective as the sum of every
// OrderIntent's Total, the authoritative decimal computation — the
// solver's own float objective is used only to drive the search, per the
// representation decision that money is converted to decimal.Decimal
// exactly at this boundary. Correction-mode cost is added separately by
// the caller from the primal r+/r- values, which are not carried on
// OrderIntent.
func ObjectiveFromOrders(orders []entities.OrderIntent) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total.Round(2)
}

// CorrectionCostFromPrimals sums K_{d,b,t} * (r+ + r-) across every
// tier, the objective's correction term (spec §4.3), computed in decimal
// from the solver's primal r+/r- values.
func CorrectionCostFromPrimals(p *Parameters, vm *varMap, primals []float64) decimal.Decimal {
	if !p.IsCorrection {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, d := range p.Distributors {
		for _, b := range p.Offices {
			for t := 0; t < p.T; t++ {
				k := p.CorrectionCostPerKg[entities.CorrectionKey{Distributor: d, Office: b, Day: t}]
				sum := 0.0
				for l := 0; l <= p.L; l++ {
					kk := entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l}
					sum += primals[vm.rPlus[kk]] + primals[vm.rMin[kk]]
				}
				total = total.Add(k.Mul(decimalFromFloat(sum)))
			}
		}
	}
	return total
}
