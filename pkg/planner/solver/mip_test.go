package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveLPOnlyModel(t *testing.T) {
	// minimize x+y subject to x+y >= 10, x,y in [0, 100]. Optimal objective
	// is 10, achieved anywhere on the x+y=10 line.
	m := NewModel(2)
	m.Objective[0] = 1
	m.Objective[1] = 1
	m.Upper[0] = 100
	m.Upper[1] = 100
	m.AddRow([]float64{1, 1}, GE, 10)

	res := Solve(context.Background(), m, DefaultOptions())

	require.Equal(t, StatusOptimal, res.Status)
	assert.InDelta(t, 10, res.Objective, 1e-6)
	assert.InDelta(t, 10, res.Primals[0]+res.Primals[1], 1e-6)
}

func TestSolveLPInfeasibleModel(t *testing.T) {
	// x <= 5 and x >= 10 simultaneously cannot hold.
	m := NewModel(1)
	m.Objective[0] = 1
	m.Upper[0] = 5
	m.AddRow([]float64{1}, GE, 10)

	res := Solve(context.Background(), m, DefaultOptions())
	assert.Equal(t, StatusInfeasible, res.Status)
}

func TestSolveBinaryKnapsack(t *testing.T) {
	// Two items: item0 value 3 weight 2, item1 value 5 weight 3, capacity 3.
	// Picking item1 alone (value 5) beats item0 alone (value 3) and both
	// items exceed capacity, so the optimum is x0=0, x1=1.
	m := NewModel(2)
	m.Objective[0] = -3
	m.Objective[1] = -5
	m.SetBinary(0)
	m.SetBinary(1)
	m.AddRow([]float64{2, 3}, LE, 3)

	res := Solve(context.Background(), m, Options{TimeLimit: 2 * time.Second, IntegerTolerance: 1e-6})

	require.Equal(t, StatusOptimal, res.Status)
	assert.InDelta(t, -5, res.Objective, 1e-6)
	assert.InDelta(t, 0, res.Primals[0], 1e-6)
	assert.InDelta(t, 1, res.Primals[1], 1e-6)
}

func TestSolveBinaryKnapsackBothItemsFit(t *testing.T) {
	// Capacity now fits both items, so the optimum takes both: value 8.
	m := NewModel(2)
	m.Objective[0] = -3
	m.Objective[1] = -5
	m.SetBinary(0)
	m.SetBinary(1)
	m.AddRow([]float64{2, 3}, LE, 5)

	res := Solve(context.Background(), m, Options{TimeLimit: 2 * time.Second, IntegerTolerance: 1e-6})

	require.Equal(t, StatusOptimal, res.Status)
	assert.InDelta(t, -8, res.Objective, 1e-6)
	assert.InDelta(t, 1, res.Primals[0], 1e-6)
	assert.InDelta(t, 1, res.Primals[1], 1e-6)
}

func TestSolveRespectsContextCancellation(t *testing.T) {
	m := NewModel(1)
	m.Objective[0] = -1
	m.SetBinary(0)
	m.AddRow([]float64{1}, LE, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Solve(ctx, m, DefaultOptions())
	assert.Contains(t, []Status{StatusOptimal, StatusTimedOut}, res.Status)
}
