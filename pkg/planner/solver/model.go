// Package solver implements the (Model) -> (Status, Objective, Primals)
// interface spec calls the Solver Driver: a branch-and-bound MIP solver
// over a from-scratch Big-M primal simplex LP relaxation (variable bounds
// are added as ordinary rows). No MILP/LP
// package appears anywhere in the retrieved corpus, so this is hand-rolled
// in the same spirit as the rest of the corpus hand-rolls its domain
// algorithms rather than reaching for an algorithms package.
package solver

import "math"

// Sense is a constraint's relational operator.
type Sense int

const (
	LE Sense = iota
	GE
	EQ
)

// Row is one linear constraint: Coeffs . x <sense> RHS.
type Row struct {
	Coeffs []float64
	Sense  Sense
	RHS    float64
}

// Model is a dense-array MILP: NumVars decision variables, a linear
// objective to minimize, a set of linear constraint Rows, and per-variable
// bounds. Integer[i] marks a variable as binary; only Lower/Upper in
// {0,1} combinations are meaningful for those, the way the Builder uses
// them (bounds tightened by branching, never genuinely integer-ranged).
type Model struct {
	NumVars   int
	Objective []float64
	Rows      []Row
	Lower     []float64
	Upper     []float64
	Integer   []bool
	// VarNames is optional, for diagnostics only (SolverError messages).
	VarNames []string
}

// NewModel allocates a Model with n variables, all bounded [0,+Inf),
// continuous, zero objective coefficients.
func NewModel(n int) *Model {
	m := &Model{
		NumVars:   n,
		Objective: make([]float64, n),
		Lower:     make([]float64, n),
		Upper:     make([]float64, n),
		Integer:   make([]bool, n),
		VarNames:  make([]string, n),
	}
	for i := range m.Upper {
		m.Upper[i] = math.Inf(1)
	}
	return m
}

// AddRow appends a constraint. coeffs must have length NumVars.
func (m *Model) AddRow(coeffs []float64, sense Sense, rhs float64) {
	m.Rows = append(m.Rows, Row{Coeffs: coeffs, Sense: sense, RHS: rhs})
}

// SetBinary marks variable i as a 0/1 decision variable.
func (m *Model) SetBinary(i int) {
	m.Integer[i] = true
	m.Lower[i] = 0
	m.Upper[i] = 1
}

// Clone deep-copies the model; branch-and-bound tightens bounds on the
// clone without disturbing the parent node's model.
func (m *Model) Clone() *Model {
	c := &Model{
		NumVars:   m.NumVars,
		Objective: append([]float64(nil), m.Objective...),
		Lower:     append([]float64(nil), m.Lower...),
		Upper:     append([]float64(nil), m.Upper...),
		Integer:   append([]bool(nil), m.Integer...),
		VarNames:  m.VarNames,
		Rows:      make([]Row, len(m.Rows)),
	}
	for i, r := range m.Rows {
		c.Rows[i] = Row{Coeffs: r.Coeffs, Sense: r.Sense, RHS: r.RHS}
	}
	return c
}

// NewRow builds a zero-filled coefficient row of the model's width, for
// callers that set a handful of entries by index.
func (m *Model) NewRow() []float64 {
	return make([]float64, m.NumVars)
}
