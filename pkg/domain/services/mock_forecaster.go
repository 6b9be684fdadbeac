package services

import (
	"math/rand"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// MockForecaster produces demo demand figures with bounded multiplicative
// noise. It is NON-REPRODUCIBLE: two calls with the same input can return
// different results. Neither PlanningOrchestrator nor the CLI calls this
// type.
type MockForecaster struct {
	Estimator DemandEstimator
	// NoiseBand is the +/- fraction of noise applied, 0.20 by default.
	NoiseBand float64
}

// NewMockForecaster returns a forecaster with the spec's default +/-20%
// noise band over the default DemandEstimator.
func NewMockForecaster() MockForecaster {
	return MockForecaster{Estimator: NewDemandEstimator(), NoiseBand: 0.20}
}

// Forecast returns a noisy variant of the deterministic estimate. Never
// call this from the planning pipeline.
func (f MockForecaster) Forecast(input entities.DemandInput) []float64 {
	base := f.Estimator.Estimate(input)
	noisy := make([]float64, len(base))
	for i, v := range base {
		// rand.Float64 in [0,1) -> [-NoiseBand, +NoiseBand]
		jitter := (rand.Float64()*2 - 1) * f.NoiseBand
		noisy[i] = v * (1 + jitter)
	}
	return noisy
}
