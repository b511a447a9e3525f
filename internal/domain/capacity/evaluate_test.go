package capacity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/havkom/fishops-bot/internal/domain/capacity"
)

func TestEvaluateZeroLimitYieldsZeroPercent(t *testing.T) {
	ev := capacity.Evaluate(capacity.DailyCapacity{
		DailyLimitTons:  0,
		TotalBookedTons: 42,
	})
	assert.Equal(t, 0.0, ev.UsagePercent)
	assert.Equal(t, capacity.StatusNormal, ev.Status)
}

func TestEvaluateZeroValueSnapshot(t *testing.T) {
	ev := capacity.Evaluate(capacity.DailyCapacity{})
	assert.Equal(t, 0.0, ev.UsagePercent)
	assert.Equal(t, capacity.StatusNormal, ev.Status)
	assert.Equal(t, 0.0, ev.RemainingTons)
}

func TestEvaluateBandBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		booked float64
		limit  float64
		pct    float64
		status capacity.Status
	}{
		{"just below warning", 79.999, 100, 79.999, capacity.StatusNormal},
		{"warning lower bound", 80, 100, 80, capacity.StatusWarning},
		{"inside warning", 99.5, 100, 99.5, capacity.StatusWarning},
		{"danger lower bound", 100, 100, 100, capacity.StatusDanger},
		{"overbooked", 150, 100, 150, capacity.StatusDanger},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := capacity.Evaluate(capacity.DailyCapacity{
				DailyLimitTons:  tc.limit,
				TotalBookedTons: tc.booked,
			})
			assert.InDelta(t, tc.pct, ev.UsagePercent, 1e-9)
			assert.Equal(t, tc.status, ev.Status)
		})
	}
}

func TestEvaluateScenarioWarningDay(t *testing.T) {
	ev := capacity.Evaluate(capacity.DailyCapacity{
		DailyLimitTons:  100,
		TotalBookedTons: 85,
	})
	assert.InDelta(t, 85, ev.UsagePercent, 1e-9)
	assert.Equal(t, capacity.StatusWarning, ev.Status)
}

func TestEvaluatePassesRemainingThroughUnmodified(t *testing.T) {
	ev := capacity.Evaluate(capacity.DailyCapacity{
		DailyLimitTons:         100,
		TotalBookedTons:        110,
		RemainingCapacityTons:  -10,
		RemainingCapacityBoxes: -400,
	})
	// Negative remaining is the overflow state and must survive untouched.
	assert.Equal(t, -10.0, ev.RemainingTons)
	assert.Equal(t, -400.0, ev.RemainingBoxes)
	assert.Equal(t, capacity.StatusDanger, ev.Status)
}

func TestEvaluateDoesNotDeriveBoxesFromTons(t *testing.T) {
	ev := capacity.Evaluate(capacity.DailyCapacity{
		DailyLimitTons:         10,
		TotalBookedTons:        5,
		RemainingCapacityTons:  5,
		RemainingCapacityBoxes: 123,
	})
	assert.Equal(t, 123.0, ev.RemainingBoxes)
}
