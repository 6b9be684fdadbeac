package planner

import (
	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/planner/solver"
)

// baselineBigM matches original_source's SolverInput.M default: a
// constant far above any realistic single-day order quantity, used only
// to link x_t to the binary order indicator.
const baselineBigM = 1e5

// baselineVarMap is the reverse lookup for the restricted single-office,
// single-implicit-supplier model: three dense arrays of length T.
type baselineVarMap struct {
	x []int
	i []int
	y []int
}

// BuildBaselineModel constructs the restriction |B|=|D|=1, L=0, X=0, no
// correction: the simpler fast path spec keeps for the legacy endpoint.
// Grounded directly on original_source's solver.py:solve, generalizing its
// docplex model into a hand-built solver.Model the same way
// BuildAdvancedModel generalizes solver_v2.py.
func BuildBaselineModel(p *Parameters) (*solver.Model, *baselineVarMap, error) {
	T := p.T
	bv := &baselineVarMap{x: make([]int, T), i: make([]int, T), y: make([]int, T)}

	m := solver.NewModel(3 * T)
	idx := 0
	for t := 0; t < T; t++ {
		bv.x[t] = idx
		idx++
	}
	for t := 0; t < T; t++ {
		bv.i[t] = idx
		idx++
	}
	for t := 0; t < T; t++ {
		bv.y[t] = idx
		idx++
	}

	b := p.BaselineOffice
	alpha := p.LossFraction[b]
	capacityKg := p.CapacityKg[b]
	initial := p.InitialInventoryKg[b]
	demand := p.DemandKg[b]
	transport := p.BaselineTransportCost.InexactFloat64()

	for t := 0; t < T; t++ {
		m.Objective[bv.x[t]] = p.BaselineUnitPricePLN[t].InexactFloat64()
		m.Objective[bv.y[t]] = transport
		m.SetBinary(bv.y[t])
	}

	for t := 0; t < T; t++ {
		row := m.NewRow()
		row[bv.i[t]] = 1
		row[bv.x[t]] = -1
		rhs := -demand[t]
		if t == 0 {
			rhs += (1 - alpha) * initial
		} else {
			row[bv.i[t-1]] = -(1 - alpha)
		}
		m.AddRow(row, solver.EQ, rhs)
	}

	for t := 0; t < T; t++ {
		row := m.NewRow()
		row[bv.i[t]] = 1
		m.AddRow(row, solver.LE, capacityKg)
	}

	for t := 0; t < T; t++ {
		row := m.NewRow()
		row[bv.x[t]] = 1
		row[bv.y[t]] = -baselineBigM
		m.AddRow(row, solver.LE, 0)
	}

	return m, bv, nil
}

// orderIntentsFromBaseline projects a baseline solve's primal values into
// the same OrderIntent/InventorySnapshot shape the advanced path emits, so
// a single Projector output type serves both paths.
func orderIntentsFromBaseline(p *Parameters, bv *baselineVarMap, primals []float64) ([]entities.OrderIntent, []entities.InventorySnapshot) {
	b := p.BaselineOffice
	alpha := p.LossFraction[b]
	var orders []entities.OrderIntent
	var inventory []entities.InventorySnapshot

	prevLevel := p.InitialInventoryKg[b]
	for t := 0; t < p.T; t++ {
		qty := primals[bv.x[t]]
		if qty > orderEpsilonKg {
			orders = append(orders, entities.OrderIntent{
				Office:        b,
				PlacementDay:  t,
				DeliveryDay:   t,
				QtyKg:         qty,
				Tier:          0,
				UnitPrice:     p.BaselineUnitPricePLN[t],
				TransportCost: p.BaselineTransportCost,
				Total:         p.BaselineUnitPricePLN[t].Mul(decimalFromFloat(qty)).Add(p.BaselineTransportCost),
			})
		}
		level := primals[bv.i[t]]
		inventory = append(inventory, entities.InventorySnapshot{
			Office:             b,
			Day:                t,
			Level:              level,
			DemandFulfilled:    p.DemandKg[b][t],
			Loss:               alpha * prevLevel,
			DeliveriesReceived: qty,
			IsProjected:        true,
		})
		prevLevel = level
	}
	return orders, inventory
}
