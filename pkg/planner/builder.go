package planner

import (
	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/planner/solver"
)

// BuildAdvancedModel constructs the multi-distributor, multi-office,
// tiered-pricing MILP described in spec §4.3 from assembled Parameters.
// It is the advanced counterpart to BuildBaselineModel, grounded on the
// docplex model in original_source's solver_v2.py/solver_v2_correction.py:
// this function plays the role docplex.mp.model.Model plays there, hand
// built the way the teacher hand-builds domain structures rather than
// reaching for a modelling framework.
func BuildAdvancedModel(p *Parameters) (*solver.Model, *varMap, error) {
	D, B, T, L := p.Distributors, p.Offices, p.T, p.L
	vm := newVarMap()

	for _, b := range B {
		for t := 0; t < T; t++ {
			vm.alloc(kindInventory, invKey(b, t))
		}
	}
	for _, d := range D {
		for _, b := range B {
			for t := 0; t < T; t++ {
				vm.alloc(kindX0, entities.OrderKey{Distributor: d, Office: b, Day: t})
				vm.alloc(kindYOrd, entities.OrderKey{Distributor: d, Office: b, Day: t})
				for l := 1; l <= L; l++ {
					vm.alloc(kindXl, entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l})
					vm.alloc(kindYThr, entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l})
				}
				if p.IsCorrection {
					for k := 0; k <= L; k++ {
						vm.alloc(kindRPlus, entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: k})
						vm.alloc(kindRMinus, entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: k})
					}
				}
			}
		}
	}

	m := solver.NewModel(len(vm.roles))
	for _, d := range D {
		for _, b := range B {
			cfix := p.FixedDeliveryCost[distributorOfficeKey(d, b)].InexactFloat64()
			for t := 0; t < T; t++ {
				key := entities.OrderKey{Distributor: d, Office: b, Day: t}
				m.Objective[vm.x0[key]] = p.UnitPrice[d][t][0].InexactFloat64()
				m.Objective[vm.yOrd[key]] = cfix
				m.SetBinary(vm.yOrd[key])
				for l := 1; l <= L; l++ {
					lk := entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l}
					m.Objective[vm.xl[lk]] = p.UnitPrice[d][t][l].InexactFloat64()
					m.SetBinary(vm.yThr[lk])
				}
			}
		}
	}

	if p.IsCorrection {
		for _, d := range D {
			for _, b := range B {
				for t := 0; t < T; t++ {
					ck := entities.CorrectionKey{Distributor: d, Office: b, Day: t}
					cost := p.CorrectionCostPerKg[ck].InexactFloat64()
					for k := 0; k <= L; k++ {
						kk := entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: k}
						m.Objective[vm.rPlus[kk]] = cost
						m.Objective[vm.rMin[kk]] = cost
					}
				}
			}
		}
	}

	addInventoryIdentity(m, p, vm)
	addCapacity(m, p, vm)
	addOrderPlacementLinking(m, p, vm)
	addSupplyCap(m, p, vm)
	addTierPartitionAndActivation(m, p, vm)
	if p.IsCorrection {
		addCorrectionConstraints(m, p, vm)
	}

	return m, vm, nil
}

func addInventoryIdentity(m *solver.Model, p *Parameters, vm *varMap) {
	for _, b := range p.Offices {
		alpha := p.LossFraction[b]
		for t := 0; t < p.T; t++ {
			row := m.NewRow()
			row[vm.inv[invKey(b, t)]] = 1
			rhs := -p.DemandKg[b][t]
			if t == 0 {
				rhs += (1 - alpha) * p.InitialInventoryKg[b]
			} else {
				row[vm.inv[invKey(b, t-1)]] = -(1 - alpha)
			}
			for _, d := range p.Distributors {
				lead := p.LeadTimeDays[distributorOfficeKey(d, b)]
				tau := t - lead
				if tau >= 0 && tau < p.T {
					for _, idx := range vm.totalOrderQtyVars(d, b, tau, p.L) {
						row[idx] -= 1
					}
				}
				rhs += p.HistoricalArrivals[entities.OrderKey{Distributor: d, Office: b, Day: t}]
			}
			m.AddRow(row, solver.EQ, rhs)
		}
	}
}

func addCapacity(m *solver.Model, p *Parameters, vm *varMap) {
	for _, b := range p.Offices {
		capacityKg := p.CapacityKg[b]
		for t := 0; t < p.T; t++ {
			row := m.NewRow()
			row[vm.inv[invKey(b, t)]] = 1
			m.AddRow(row, solver.LE, capacityKg)
		}
	}
}

func addOrderPlacementLinking(m *solver.Model, p *Parameters, vm *varMap) {
	for _, d := range p.Distributors {
		for _, b := range p.Offices {
			for t := 0; t < p.T; t++ {
				key := entities.OrderKey{Distributor: d, Office: b, Day: t}
				supply := p.SupplyCapKg[d][t]

				row := m.NewRow()
				row[vm.x0[key]] = 1
				row[vm.yOrd[key]] = -supply
				m.AddRow(row, solver.LE, 0)

				for l := 1; l <= p.L; l++ {
					lk := entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l}
					link := m.NewRow()
					link[vm.yThr[lk]] = 1
					link[vm.yOrd[key]] = -1
					m.AddRow(link, solver.LE, 0)
				}
			}
		}
	}
}

func addSupplyCap(m *solver.Model, p *Parameters, vm *varMap) {
	for _, d := range p.Distributors {
		for t := 0; t < p.T; t++ {
			row := m.NewRow()
			for _, b := range p.Offices {
				for _, idx := range vm.totalOrderQtyVars(d, b, t, p.L) {
					row[idx] += 1
				}
			}
			m.AddRow(row, solver.LE, p.SupplyCapKg[d][t])
		}
	}
}

func addTierPartitionAndActivation(m *solver.Model, p *Parameters, vm *varMap) {
	for _, d := range p.Distributors {
		thresholds := p.Thresholds[d]
		for _, b := range p.Offices {
			for t := 0; t < p.T; t++ {
				key := entities.OrderKey{Distributor: d, Office: b, Day: t}

				if p.L >= 1 {
					q1 := thresholds[1]
					cap0 := m.NewRow()
					cap0[vm.x0[key]] = 1
					m.AddRow(cap0, solver.LE, q1)

					firstTier := entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: 1}
					stair0 := m.NewRow()
					stair0[vm.x0[key]] = 1
					stair0[vm.yThr[firstTier]] = -q1
					m.AddRow(stair0, solver.GE, 0)
				}

				for l := 1; l <= p.L; l++ {
					lk := entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l}
					capRow := m.NewRow()
					capRow[vm.xl[lk]] = 1
					if l < p.L {
						width := thresholds[l+1] - thresholds[l]
						capRow[vm.yThr[lk]] = -width
						m.AddRow(capRow, solver.LE, 0)

						nextTier := entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l + 1}
						stair := m.NewRow()
						stair[vm.xl[lk]] = 1
						stair[vm.yThr[nextTier]] = -width
						m.AddRow(stair, solver.GE, 0)
					} else {
						capRow[vm.yThr[lk]] = -p.BigM
						m.AddRow(capRow, solver.LE, 0)
					}
				}
			}
		}
	}
}

func addCorrectionConstraints(m *solver.Model, p *Parameters, vm *varMap) {
	for _, d := range p.Distributors {
		for _, b := range p.Offices {
			for t := 0; t < p.T; t++ {
				ck := entities.CorrectionKey{Distributor: d, Office: b, Day: t}
				capRow := m.NewRow()
				for k := 0; k <= p.L; k++ {
					kk := entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: k}

					var xIdx int
					if k == 0 {
						xIdx = vm.x0[entities.OrderKey{Distributor: d, Office: b, Day: t}]
					} else {
						xIdx = vm.xl[kk]
					}
					link := m.NewRow()
					link[xIdx] = 1
					link[vm.rPlus[kk]] = -1
					link[vm.rMin[kk]] = 1
					m.AddRow(link, solver.EQ, p.PriorKor[kk])

					capRow[vm.rPlus[kk]] += 1
					capRow[vm.rMin[kk]] += 1
				}
				m.AddRow(capRow, solver.LE, p.MaxCorrectionKg[ck])
			}
		}
	}
}
