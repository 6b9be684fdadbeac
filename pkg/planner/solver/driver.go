package solver

import (
	"context"
	"time"
)

// Driver is the (Model) -> (Status, Objective, Primals) interface spec
// names in its Solver Integration design note. A Driver is safe for
// concurrent use; each Run call builds and tears down its own
// branch-and-bound search, there is no state shared across calls.
type Driver struct {
	Options Options
}

// NewDriver returns a Driver configured with opts.
func NewDriver(opts Options) *Driver {
	return &Driver{Options: opts}
}

// Run solves model and reports wall time spent inside Solve only — model
// construction happens before Run is called and is not counted, per
// spec's "solve wall time is measured around the solve call only" rule.
func (d *Driver) Run(ctx context.Context, model *Model) Result {
	start := time.Now()
	res := Solve(ctx, model, d.Options)
	res.SolveMs = time.Since(start).Milliseconds()
	return res
}
