package solver

import "math"

const (
	lpEps       = 1e-9
	lpBigMScale = 1e7
)

type lpStatus int

const (
	lpOptimal lpStatus = iota
	lpInfeasible
	lpUnbounded
	lpDidNotConverge
)

type lpResult struct {
	status    lpStatus
	objective float64
	x         []float64
}

// solveLP solves the LP relaxation of model (Integer flags ignored) with a
// Big-M primal simplex over a dense tableau. Variables are handled via
// shift-to-zero-lower-bound plus an explicit upper-bound row per finite
// Upper[i] — a bounded-variable tableau is not implemented; bounds are
// ordinary rows instead, per design.
func solveLP(model *Model) lpResult {
	n := model.NumVars

	// Shift x_i = lower_i + x'_i, x'_i >= 0. Every row's RHS is adjusted by
	// the lower-bound contribution; upper bounds become Upper[i]-Lower[i].
	shift := make([]float64, n)
	copy(shift, model.Lower)

	rows := make([]Row, 0, len(model.Rows)+n)
	for _, r := range model.Rows {
		adj := r.RHS
		for j, c := range r.Coeffs {
			if c != 0 && shift[j] != 0 {
				adj -= c * shift[j]
			}
		}
		rows = append(rows, Row{Coeffs: r.Coeffs, Sense: r.Sense, RHS: adj})
	}
	for i := 0; i < n; i++ {
		if !math.IsInf(model.Upper[i], 1) {
			width := model.Upper[i] - shift[i]
			if width < -lpEps {
				return lpResult{status: lpInfeasible}
			}
			if width < 0 {
				width = 0
			}
			row := make([]float64, n)
			row[i] = 1
			rows = append(rows, Row{Coeffs: row, Sense: LE, RHS: width})
		}
	}

	tab, basis, artificialCols, totalCols, bigM := buildTableau(n, model.Objective, rows)
	status := runSimplex(tab, basis, totalCols)

	if status == lpDidNotConverge {
		return lpResult{status: lpDidNotConverge}
	}

	m := len(rows)
	xPrime := make([]float64, n)
	for i := 0; i < m; i++ {
		if basis[i] < n {
			xPrime[basis[i]] = tab.b[i]
		}
	}
	for _, col := range artificialCols {
		val := 0.0
		for i := 0; i < m; i++ {
			if basis[i] == col {
				val = tab.b[i]
				break
			}
		}
		if val > 1e-6 {
			return lpResult{status: lpInfeasible}
		}
	}

	// The builders give continuous variables no finite upper bound, so
	// unboundedness is not excluded structurally; runSimplex flags it when
	// an improving column has no leaving row.
	if status == lpUnbounded {
		return lpResult{status: lpUnbounded}
	}
	_ = bigM

	x := make([]float64, n)
	obj := 0.0
	for i := 0; i < n; i++ {
		x[i] = xPrime[i] + shift[i]
		obj += model.Objective[i] * x[i]
	}
	return lpResult{status: lpOptimal, objective: obj, x: x}
}

// tableau is the dense simplex working state: m rows over totalCols
// structural+slack+surplus+artificial columns, plus the reduced-cost row.
type tableau struct {
	a  [][]float64 // m x totalCols
	b  []float64   // m
	rc []float64   // totalCols, reduced cost row
}

// buildTableau normalizes RHS>=0 (flipping sense/sign where needed) and
// appends one slack, one surplus+artificial, or one artificial column per
// row depending on its sense, per the standard Big-M construction.
func buildTableau(n int, objective []float64, rows []Row) (*tableau, []int, []int, int, float64) {
	m := len(rows)

	maxCost := 1.0
	for _, c := range objective {
		if math.Abs(c) > maxCost {
			maxCost = math.Abs(c)
		}
	}
	bigM := maxCost * lpBigMScale

	type colMeta struct {
		cost float64
	}
	cols := make([]colMeta, n)
	for i, c := range objective {
		cols[i].cost = c
	}

	normalized := make([]Row, m)
	for i, r := range rows {
		coeffs := r.Coeffs
		rhs := r.RHS
		sense := r.Sense
		if rhs < 0 {
			flipped := make([]float64, n)
			for j, c := range coeffs {
				flipped[j] = -c
			}
			coeffs = flipped
			rhs = -rhs
			switch sense {
			case LE:
				sense = GE
			case GE:
				sense = LE
			}
		}
		normalized[i] = Row{Coeffs: coeffs, Sense: sense, RHS: rhs}
	}

	basis := make([]int, m)
	var artificialCols []int
	extraCols := make([][]float64, 0, m)

	for i, r := range normalized {
		switch r.Sense {
		case LE:
			col := make([]float64, m)
			col[i] = 1
			extraCols = append(extraCols, col)
			cols = append(cols, colMeta{cost: 0})
			basis[i] = n + len(extraCols) - 1
		case GE:
			surplus := make([]float64, m)
			surplus[i] = -1
			extraCols = append(extraCols, surplus)
			cols = append(cols, colMeta{cost: 0})

			art := make([]float64, m)
			art[i] = 1
			extraCols = append(extraCols, art)
			cols = append(cols, colMeta{cost: bigM})
			artIdx := n + len(extraCols) - 1
			artificialCols = append(artificialCols, artIdx)
			basis[i] = artIdx
		case EQ:
			art := make([]float64, m)
			art[i] = 1
			extraCols = append(extraCols, art)
			cols = append(cols, colMeta{cost: bigM})
			artIdx := n + len(extraCols) - 1
			artificialCols = append(artificialCols, artIdx)
			basis[i] = artIdx
		}
	}

	totalCols := n + len(extraCols)
	a := make([][]float64, m)
	for i := range a {
		row := make([]float64, totalCols)
		copy(row, normalized[i].Coeffs)
		for k, col := range extraCols {
			row[n+k] = col[i]
		}
		a[i] = row
	}
	b := make([]float64, m)
	for i, r := range normalized {
		b[i] = r.RHS
	}

	costs := make([]float64, totalCols)
	for j, c := range cols {
		costs[j] = c.cost
	}

	rc := make([]float64, totalCols)
	for j := 0; j < totalCols; j++ {
		z := 0.0
		for i := 0; i < m; i++ {
			z += costs[basis[i]] * a[i][j]
		}
		rc[j] = costs[j] - z
	}

	return &tableau{a: a, b: b, rc: rc}, basis, artificialCols, totalCols, bigM
}

// runSimplex performs primal simplex pivots on t in place until optimal,
// unbounded, or an iteration cap (anti-cycling backstop) is hit.
func runSimplex(t *tableau, basis []int, totalCols int) lpStatus {
	m := len(t.b)
	maxIter := 500 * (m + totalCols + 1)

	for iter := 0; iter < maxIter; iter++ {
		pivotCol := -1
		best := -lpEps
		for j := 0; j < totalCols; j++ {
			if t.rc[j] < best {
				best = t.rc[j]
				pivotCol = j
			}
		}
		if pivotCol == -1 {
			return lpOptimal
		}

		pivotRow := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			if t.a[i][pivotCol] > lpEps {
				ratio := t.b[i] / t.a[i][pivotCol]
				if ratio < bestRatio-lpEps || (ratio < bestRatio+lpEps && (pivotRow == -1 || basis[i] < basis[pivotRow])) {
					bestRatio = ratio
					pivotRow = i
				}
			}
		}
		if pivotRow == -1 {
			return lpUnbounded
		}

		pivot(t, basis, pivotRow, pivotCol)
	}
	return lpDidNotConverge
}

// pivot performs a Gauss-Jordan elimination around t.a[row][col], updating
// the basis and the reduced-cost row in place.
func pivot(t *tableau, basis []int, row, col int) {
	m := len(t.b)
	totalCols := len(t.rc)
	pv := t.a[row][col]

	for j := 0; j < totalCols; j++ {
		t.a[row][j] /= pv
	}
	t.b[row] /= pv

	for i := 0; i < m; i++ {
		if i == row {
			continue
		}
		factor := t.a[i][col]
		if factor == 0 {
			continue
		}
		for j := 0; j < totalCols; j++ {
			t.a[i][j] -= factor * t.a[row][j]
		}
		t.b[i] -= factor * t.b[row]
	}

	factor := t.rc[col]
	if factor != 0 {
		for j := 0; j < totalCols; j++ {
			t.rc[j] -= factor * t.a[row][j]
		}
	}

	basis[row] = col
}
