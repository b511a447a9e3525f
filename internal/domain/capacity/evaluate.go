package capacity

// Status is the three-level utilization band shown on the capacity screen.
type Status string

const (
	StatusNormal  Status = "normal"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// Band lower bounds, inclusive.
const (
	warningThresholdPct = 80
	dangerThresholdPct  = 100
)

// Evaluation is the derived view of one day's capacity.
type Evaluation struct {
	UsagePercent   float64
	Status         Status
	RemainingBoxes float64
	RemainingTons  float64
}

// Evaluate computes utilization and status for a capacity snapshot. A zero ton
// limit yields 0%, never NaN or Inf. Remaining figures pass through untouched:
// received vs booked accounting is asymmetric and only the backend has the
// full picture, so recomputing limit-booked here would be wrong. Remaining may
// be negative; callers render the magnitude with an explicit over indicator.
func Evaluate(c DailyCapacity) Evaluation {
	usage := 0.0
	if c.DailyLimitTons > 0 {
		usage = c.TotalBookedTons / c.DailyLimitTons * 100
	}

	status := StatusNormal
	switch {
	case usage >= dangerThresholdPct:
		status = StatusDanger
	case usage >= warningThresholdPct:
		status = StatusWarning
	}

	return Evaluation{
		UsagePercent:   usage,
		Status:         status,
		RemainingBoxes: c.RemainingCapacityBoxes,
		RemainingTons:  c.RemainingCapacityTons,
	}
}
