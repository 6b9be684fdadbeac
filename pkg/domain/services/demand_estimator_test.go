package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

func TestDemandEstimatorEstimate(t *testing.T) {
	e := NewDemandEstimator()

	input := entities.DemandInput{
		Office:           "hq",
		WorkersDaily:     []int{40, 40, 0},
		ConferencesDaily: []int{0, 2, 0},
	}

	got := e.Estimate(input)
	want := []float64{
		40 * e.KgPerWorkerPerDay,
		40 * e.KgPerWorkerPerDay * math.Pow(e.ConferenceMultiplier, 2),
		0,
	}

	assert.Len(t, got, 3)
	for i, w := range want {
		assert.InDelta(t, w, got[i], 1e-9, "day %d", i)
	}
}

func TestDemandEstimatorMissingConferenceEntryTreatedAsZero(t *testing.T) {
	e := NewDemandEstimator()
	input := entities.DemandInput{Office: "hq", WorkersDaily: []int{10}, ConferencesDaily: []int{}}

	got := e.Estimate(input)
	assert.InDelta(t, 10*e.KgPerWorkerPerDay, got[0], 1e-9)
}
