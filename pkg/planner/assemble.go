package planner

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/domain/repositories"
	"github.com/coffeeplan/core/pkg/domain/services"
)

// Assembler gathers and validates PlanRequest inputs into the Parameters
// the MILP Builder consumes. It holds no per-call state: a single
// Assembler is safe to reuse across concurrent AssembleParameters calls.
type Assembler struct {
	Offices      repositories.OfficeRepository
	Distributors repositories.DistributorRepository
	Plans        repositories.PlanResultStore
	Estimator    services.DemandEstimator

	validator *structValidator
}

// NewAssembler wires an Assembler against its repository collaborators,
// using the spec's default DemandEstimator.
func NewAssembler(offices repositories.OfficeRepository, distributors repositories.DistributorRepository, plans repositories.PlanResultStore) *Assembler {
	return &Assembler{
		Offices:      offices,
		Distributors: distributors,
		Plans:        plans,
		Estimator:    services.NewDemandEstimator(),
		validator:    newStructValidator(),
	}
}

// AssembleParameters validates req and resolves it, together with external
// fetches, into Parameters. Returns an InvalidInput PlanningError on any
// schema/cross-field violation, or CorrectionPreconditionFailed if a
// correction's prior plan cannot be resolved.
func (a *Assembler) AssembleParameters(ctx context.Context, req *entities.PlanRequest) (*Parameters, error) {
	if err := a.validator.validateStruct(req); err != nil {
		return nil, err
	}
	T := req.HorizonDays

	if len(req.Demand) != len(req.OfficeIDs) {
		return nil, NewInvalidInput("demand", "one DemandInput is required per office")
	}
	demandByOffice := make(map[entities.OfficeID]entities.DemandInput, len(req.Demand))
	for _, d := range req.Demand {
		if len(d.WorkersDaily) != T {
			return nil, NewInvalidInput("demand.workers_daily", fmt.Sprintf("length %d != horizon %d", len(d.WorkersDaily), T))
		}
		if len(d.ConferencesDaily) != T {
			return nil, NewInvalidInput("demand.conferences_daily", fmt.Sprintf("length %d != horizon %d", len(d.ConferencesDaily), T))
		}
		for _, w := range d.WorkersDaily {
			if w < 0 {
				return nil, NewInvalidInput("demand.workers_daily", "negative worker count")
			}
		}
		for _, c := range d.ConferencesDaily {
			if c < 0 {
				return nil, NewInvalidInput("demand.conferences_daily", "negative conference count")
			}
		}
		demandByOffice[d.Office] = d
	}

	initial := make(map[entities.OfficeID]float64, len(req.OfficeIDs))
	for _, id := range req.OfficeIDs {
		v, ok := req.InitialInventoryKg[id]
		if !ok {
			return nil, NewInvalidInput("initial_inventory_kg", fmt.Sprintf("missing entry for office %s", id))
		}
		if v < 0 {
			return nil, NewInvalidInput("initial_inventory_kg", "must be >= 0")
		}
		initial[id] = v
	}

	demandKg := make(map[entities.OfficeID][]float64, len(req.OfficeIDs))
	for _, id := range req.OfficeIDs {
		demandKg[id] = a.Estimator.Estimate(demandByOffice[id])
	}

	if req.Mode == entities.ModeBaseline {
		return a.assembleBaseline(req, T, demandKg, initial)
	}
	return a.assembleAdvanced(ctx, req, T, demandKg, initial)
}

func (a *Assembler) assembleBaseline(req *entities.PlanRequest, T int, demandKg map[entities.OfficeID][]float64, initial map[entities.OfficeID]float64) (*Parameters, error) {
	if len(req.OfficeIDs) != 1 {
		return nil, NewInvalidInput("office_id", "baseline mode requires exactly one office")
	}
	if req.Baseline == nil {
		return nil, NewInvalidInput("baseline", "baseline parameters are required in baseline mode")
	}
	b := req.Baseline
	if len(b.PurchaseCostsPLNPerKgDaily) != T {
		return nil, NewInvalidInput("purchase_costs_pln_per_kg_daily", fmt.Sprintf("length %d != horizon %d", len(b.PurchaseCostsPLNPerKgDaily), T))
	}
	for _, p := range b.PurchaseCostsPLNPerKgDaily {
		if p.IsNegative() {
			return nil, NewInvalidInput("purchase_costs_pln_per_kg_daily", "must be >= 0")
		}
	}
	if b.TransportCostPLN.IsNegative() {
		return nil, NewInvalidInput("transport_cost_pln", "must be >= 0")
	}
	if b.DailyLossFraction < 0 || b.DailyLossFraction > 1 {
		return nil, NewInvalidInput("daily_loss_fraction", "must be in [0,1]")
	}
	if b.StorageCapacityKg <= 0 {
		return nil, NewInvalidInput("storage_capacity_kg", "must be > 0")
	}

	office := req.OfficeIDs[0]
	return &Parameters{
		Mode:                  req.Mode,
		T:                     T,
		Offices:               req.OfficeIDs,
		CapacityKg:            map[entities.OfficeID]float64{office: b.StorageCapacityKg},
		LossFraction:          map[entities.OfficeID]float64{office: b.DailyLossFraction},
		InitialInventoryKg:    initial,
		DemandKg:              demandKg,
		BaselineOffice:        office,
		BaselineUnitPricePLN:  b.PurchaseCostsPLNPerKgDaily,
		BaselineTransportCost: b.TransportCostPLN,
	}, nil
}

func (a *Assembler) assembleAdvanced(ctx context.Context, req *entities.PlanRequest, T int, demandKg map[entities.OfficeID][]float64, initial map[entities.OfficeID]float64) (*Parameters, error) {
	if len(req.DistributorIDs) == 0 {
		return nil, NewInvalidInput("distributor_ids", "advanced mode requires at least one distributor")
	}

	offices, err := a.Offices.GetOffices(ctx, req.OfficeIDs)
	if err != nil {
		return nil, NewPersistenceError("fetching offices", err)
	}
	capacity := make(map[entities.OfficeID]float64, len(offices))
	loss := make(map[entities.OfficeID]float64, len(offices))
	for _, o := range offices {
		if o.CapacityKg <= 0 {
			return nil, NewInvalidInput("office.capacity_kg", fmt.Sprintf("office %s: must be > 0", o.ID))
		}
		if o.DailyLossFraction < 0 || o.DailyLossFraction > 1 {
			return nil, NewInvalidInput("office.daily_loss_fraction", fmt.Sprintf("office %s: must be in [0,1]", o.ID))
		}
		capacity[o.ID] = o.CapacityKg
		loss[o.ID] = o.DailyLossFraction
	}
	if len(capacity) != len(req.OfficeIDs) {
		return nil, NewInvalidInput("office_ids", "one or more offices could not be resolved")
	}

	dists, err := a.Distributors.GetDistributors(ctx, req.DistributorIDs)
	if err != nil {
		return nil, NewPersistenceError("fetching distributors", err)
	}
	if len(dists) != len(req.DistributorIDs) {
		return nil, NewInvalidInput("distributor_ids", "one or more distributors could not be resolved")
	}

	L := 0
	for _, d := range dists {
		if err := validateDistributor(d, T); err != nil {
			return nil, err
		}
		if tiers := d.TierCount(); tiers > L {
			L = tiers
		}
	}

	fixedCost := make(map[entities.OrderKey]decimal.Decimal)
	leadTime := make(map[entities.OrderKey]int)
	supplyCap := make(map[entities.DistributorID][]float64, len(dists))
	thresholds := make(map[entities.DistributorID][]float64, len(dists))
	unitPrice := make(map[entities.DistributorID][][]decimal.Decimal, len(dists))
	bigM := 0.0

	for _, d := range dists {
		for _, b := range req.OfficeIDs {
			lt, ok := d.LeadTimeDays[b]
			if !ok {
				return nil, NewInvalidInput("lead_time_days", fmt.Sprintf("distributor %s does not serve office %s", d.ID, b))
			}
			cf, ok := d.FixedDeliveryCost[b]
			if !ok {
				return nil, NewInvalidInput("fixed_delivery_cost", fmt.Sprintf("distributor %s does not serve office %s", d.ID, b))
			}
			key := distributorOfficeKey(d.ID, b)
			leadTime[key] = lt
			fixedCost[key] = cf
		}
		supplyCap[d.ID] = d.SupplyCapKg
		for _, s := range d.SupplyCapKg {
			if s > bigM {
				bigM = s
			}
		}
		thresholds[d.ID], unitPrice[d.ID] = padTiers(d, L)
	}

	historical, err := resolveHistoricalArrivals(req.HistoricalOrders, leadTime, T)
	if err != nil {
		return nil, err
	}

	params := &Parameters{
		Mode:               req.Mode,
		T:                  T,
		Offices:            req.OfficeIDs,
		Distributors:       req.DistributorIDs,
		L:                  L,
		CapacityKg:         capacity,
		LossFraction:       loss,
		InitialInventoryKg: initial,
		DemandKg:           demandKg,
		FixedDeliveryCost:  fixedCost,
		LeadTimeDays:       leadTime,
		SupplyCapKg:        supplyCap,
		Thresholds:         thresholds,
		UnitPrice:          unitPrice,
		BigM:               bigM,
		HistoricalArrivals: historical,
	}

	if req.IsCorrection {
		if err := a.resolveCorrection(ctx, req, params); err != nil {
			return nil, err
		}
	}

	return params, nil
}

func validateDistributor(d *entities.Distributor, T int) error {
	if len(d.Thresholds) == 0 || d.Thresholds[0] != 0 {
		return NewInvalidInput("thresholds", fmt.Sprintf("distributor %s: Q_0 must be 0", d.ID))
	}
	for i := 1; i < len(d.Thresholds); i++ {
		if d.Thresholds[i] <= d.Thresholds[i-1] {
			return NewInvalidInput("thresholds", fmt.Sprintf("distributor %s: thresholds must be strictly increasing", d.ID))
		}
	}
	if len(d.SupplyCapKg) != T {
		return NewInvalidInput("supply_cap_kg", fmt.Sprintf("distributor %s: length %d != horizon %d", d.ID, len(d.SupplyCapKg), T))
	}
	for _, s := range d.SupplyCapKg {
		if s < 0 {
			return NewInvalidInput("supply_cap_kg", fmt.Sprintf("distributor %s: must be >= 0", d.ID))
		}
	}
	if len(d.UnitPrice) != T {
		return NewInvalidInput("unit_price", fmt.Sprintf("distributor %s: length %d != horizon %d", d.ID, len(d.UnitPrice), T))
	}
	for t, row := range d.UnitPrice {
		if len(row) != len(d.Thresholds) {
			return NewInvalidInput("unit_price", fmt.Sprintf("distributor %s day %d: expected %d tier prices, got %d", d.ID, t, len(d.Thresholds), len(row)))
		}
		for _, p := range row {
			if p.IsNegative() {
				return NewInvalidInput("unit_price", fmt.Sprintf("distributor %s day %d: price must be >= 0", d.ID, t))
			}
		}
	}
	for _, cf := range d.FixedDeliveryCost {
		if cf.IsNegative() {
			return NewInvalidInput("fixed_delivery_cost", fmt.Sprintf("distributor %s: must be >= 0", d.ID))
		}
	}
	for _, lt := range d.LeadTimeDays {
		if lt < 0 {
			return NewInvalidInput("lead_time_days", fmt.Sprintf("distributor %s: must be >= 0", d.ID))
		}
	}
	return nil
}

// padTiers extends a distributor's tier ladder to the shared L. Its real
// last tier (open-ended in the distributor's own ladder) stops being the
// open end once L exceeds the distributor's own tier count, so it is
// continued as ordinary staircase buckets, all priced at the
// distributor's own last-tier price, with strictly increasing thresholds;
// a zero-width bucket here would let the builder's cascading activation
// chain (addTierPartitionAndActivation) skip straight to the new shared
// top tier without filling the real thresholds below it.
func padTiers(d *entities.Distributor, L int) ([]float64, [][]decimal.Decimal) {
	ownL := d.TierCount()
	thresholds := make([]float64, L+1)
	copy(thresholds, d.Thresholds)
	if ownL < L {
		step := maxSupplyCap(d.SupplyCapKg)
		for l := ownL + 1; l <= L; l++ {
			thresholds[l] = thresholds[l-1] + step
		}
	}

	prices := make([][]decimal.Decimal, len(d.UnitPrice))
	for t, row := range d.UnitPrice {
		padded := make([]decimal.Decimal, L+1)
		copy(padded, row)
		lastPrice := row[len(row)-1]
		for l := ownL + 1; l <= L; l++ {
			padded[l] = lastPrice
		}
		prices[t] = padded
	}
	return thresholds, prices
}

// maxSupplyCap returns the largest daily supply cap in caps, or 1 if caps
// is empty or all-zero. Used to size padded staircase buckets large enough
// that no achievable single-tier order quantity could ever saturate one,
// without tying the bucket width to the shared BigM (not yet known at the
// point padTiers runs).
func maxSupplyCap(caps []float64) float64 {
	largest := 0.0
	for _, c := range caps {
		if c > largest {
			largest = c
		}
	}
	if largest <= 0 {
		return 1
	}
	return largest
}

// resolveHistoricalArrivals restricts historical commitments to the ones
// landing inside the horizon: all tau<0 with tau+X_{d,b} in [0,T).
func resolveHistoricalArrivals(historical []entities.PriorPlanOrder, leadTime map[entities.OrderKey]int, T int) (map[entities.OrderKey]float64, error) {
	arrivals := make(map[entities.OrderKey]float64)
	for _, h := range historical {
		if h.Day >= 0 {
			return nil, NewInvalidInput("historical_orders", "placement day must be negative (tau<0)")
		}
		lt, ok := leadTime[distributorOfficeKey(h.Distributor, h.Office)]
		if !ok {
			continue
		}
		arrivalDay := h.Day + lt
		if arrivalDay < 0 || arrivalDay >= T {
			continue
		}
		key := entities.OrderKey{Distributor: h.Distributor, Office: h.Office, Day: arrivalDay}
		arrivals[key] += h.QtyKg
	}
	return arrivals, nil
}

func (a *Assembler) resolveCorrection(ctx context.Context, req *entities.PlanRequest, params *Parameters) error {
	if req.Correction == nil {
		return NewInvalidInput("correction", "correction parameters are required when is_correction_mode is set")
	}
	priorOrders, priorOffices, err := a.Plans.GetPriorOrders(ctx, req.Correction.PriorPlanRef)
	if err != nil {
		return NewCorrectionPreconditionFailed(fmt.Sprintf("prior plan %s not found: %v", req.Correction.PriorPlanRef, err))
	}
	if !sameOfficeSet(priorOffices, req.OfficeIDs) {
		return NewCorrectionPreconditionFailed("prior plan's office set does not match this request")
	}

	priorKor := make(map[entities.OrderKey]float64, len(priorOrders))
	for _, p := range priorOrders {
		thresholds, ok := params.Thresholds[p.Distributor]
		if !ok {
			return NewCorrectionPreconditionFailed(fmt.Sprintf("prior order references distributor %s not present in this request", p.Distributor))
		}
		if p.Tier < 0 || p.Tier >= len(thresholds) {
			return NewCorrectionPreconditionFailed(fmt.Sprintf("prior order tier %d out of range for distributor %s", p.Tier, p.Distributor))
		}
		for l, qty := range decomposeTierBuckets(p.Tier, p.QtyKg, thresholds) {
			priorKor[entities.OrderKey{Distributor: p.Distributor, Office: p.Office, Day: p.Day, Tier: l}] = qty
		}
	}

	costPerKg := make(map[entities.CorrectionKey]decimal.Decimal, len(req.Correction.CostPerKg))
	for k, v := range req.Correction.CostPerKg {
		if v.IsNegative() {
			return NewInvalidInput("correction.cost_per_kg", "must be >= 0")
		}
		costPerKg[k] = v
	}
	maxCorrection := make(map[entities.CorrectionKey]float64, len(req.Correction.MaxCorrectionKg))
	for k, v := range req.Correction.MaxCorrectionKg {
		if v < 0 {
			return NewInvalidInput("correction.max_correction_kg", "must be >= 0")
		}
		maxCorrection[k] = v
	}

	params.IsCorrection = true
	params.PriorKor = priorKor
	params.CorrectionCostPerKg = costPerKg
	params.MaxCorrectionKg = maxCorrection
	return nil
}

// decomposeTierBuckets splits a prior order's achieved tier and total kg
// back into the incremental per-tier buckets x^0..x^tier the builder's own
// staircase (addTierPartitionAndActivation) requires: every tier below the
// achieved one was necessarily filled to its full width (constraint 6),
// and the achieved tier absorbs whatever remains. Tiers above the achieved
// one are left absent, defaulting to zero via the caller's map.
func decomposeTierBuckets(tier int, qtyKg float64, thresholds []float64) map[int]float64 {
	buckets := make(map[int]float64, tier+1)
	for l := 0; l < tier; l++ {
		buckets[l] = thresholds[l+1] - thresholds[l]
	}
	buckets[tier] = qtyKg - thresholds[tier]
	return buckets
}

func sameOfficeSet(a, b []entities.OfficeID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[entities.OfficeID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
