package services

import (
	"math"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// DemandEstimator turns headcount and conference load into expected
// kilograms of coffee consumption. It is pure and side-effect-free: the
// same inputs always yield identical floats, by design of the planning
// path (see spec §4.1) — no randomness belongs here.
type DemandEstimator struct {
	// KgPerWorkerPerDay is rho, the baseline per-worker daily consumption.
	KgPerWorkerPerDay float64
	// ConferenceMultiplier is mu, applied once per scheduled conference.
	ConferenceMultiplier float64
}

// NewDemandEstimator returns an estimator with the spec's defaults
// (rho=0.25 kg/worker/day, mu=1.2).
func NewDemandEstimator() DemandEstimator {
	return DemandEstimator{KgPerWorkerPerDay: 0.25, ConferenceMultiplier: 1.2}
}

// Estimate computes D_{b,t} = w_{b,t} * rho * mu^{c_{b,t}} for every day of
// the input. The returned slice has the same length as input.WorkersDaily.
func (e DemandEstimator) Estimate(input entities.DemandInput) []float64 {
	demand := make([]float64, len(input.WorkersDaily))
	for t, workers := range input.WorkersDaily {
		conferences := 0
		if t < len(input.ConferencesDaily) {
			conferences = input.ConferencesDaily[t]
		}
		demand[t] = float64(workers) * e.KgPerWorkerPerDay * math.Pow(e.ConferenceMultiplier, float64(conferences))
	}
	return demand
}
