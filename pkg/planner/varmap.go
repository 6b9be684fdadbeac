package planner

import "github.com/coffeeplan/core/pkg/domain/entities"

// varKind tags what a solver variable represents, so the projector can
// read primal values back out of the flat Primals slice without having to
// re-derive index arithmetic.
type varKind int

const (
	kindX0 varKind = iota
	kindXl
	kindInventory
	kindYOrd
	kindYThr
	kindRPlus
	kindRMinus
)

// varRole is the reverse-lookup entry for one solver variable: what kind
// of decision it is and which (d,b,t,l) (or (b,t) for inventory) it
// belongs to.
type varRole struct {
	kind varKind
	key  entities.OrderKey
}

// varMap is the bidirectional index the Builder populates while
// allocating variables and the Projector consumes while reading back
// primal values. Forward maps are used for constraint-coefficient lookups;
// roles is the dense reverse lookup by variable index.
type varMap struct {
	x0    map[entities.OrderKey]int // key.Tier == 0, unused
	xl    map[entities.OrderKey]int // key.Tier in 1..L
	inv   map[entities.OrderKey]int // key.Tier == 0, Distributor == "" (office,day only)
	yOrd  map[entities.OrderKey]int
	yThr  map[entities.OrderKey]int
	rPlus map[entities.OrderKey]int // key.Tier in 0..L
	rMin  map[entities.OrderKey]int

	roles []varRole
}

func newVarMap() *varMap {
	return &varMap{
		x0:    make(map[entities.OrderKey]int),
		xl:    make(map[entities.OrderKey]int),
		inv:   make(map[entities.OrderKey]int),
		yOrd:  make(map[entities.OrderKey]int),
		yThr:  make(map[entities.OrderKey]int),
		rPlus: make(map[entities.OrderKey]int),
		rMin:  make(map[entities.OrderKey]int),
	}
}

func (v *varMap) alloc(kind varKind, key entities.OrderKey) int {
	idx := len(v.roles)
	v.roles = append(v.roles, varRole{kind: kind, key: key})
	switch kind {
	case kindX0:
		v.x0[key] = idx
	case kindXl:
		v.xl[key] = idx
	case kindInventory:
		v.inv[key] = idx
	case kindYOrd:
		v.yOrd[key] = idx
	case kindYThr:
		v.yThr[key] = idx
	case kindRPlus:
		v.rPlus[key] = idx
	case kindRMinus:
		v.rMin[key] = idx
	}
	return idx
}

func invKey(b entities.OfficeID, t int) entities.OrderKey {
	return entities.OrderKey{Office: b, Day: t}
}

// totalOrderQtyVars returns X0+sum(Xl) lookups used repeatedly while
// building inventory-identity and supply-cap rows and while projecting:
// the set of variable indices contributing to X_{d,b,t}, tier by tier,
// tier 0 first.
func (v *varMap) totalOrderQtyVars(d entities.DistributorID, b entities.OfficeID, t, L int) []int {
	idxs := make([]int, 0, L+1)
	if i, ok := v.x0[entities.OrderKey{Distributor: d, Office: b, Day: t}]; ok {
		idxs = append(idxs, i)
	}
	for l := 1; l <= L; l++ {
		if i, ok := v.xl[entities.OrderKey{Distributor: d, Office: b, Day: t, Tier: l}]; ok {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
