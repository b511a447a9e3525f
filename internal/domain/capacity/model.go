package capacity

// DailyCapacity is the per-date capacity snapshot served by the backend. The
// client never mutates it; any booking/receive mutation makes it stale and the
// screen refetches. Box and ton figures are sourced independently by the
// backend (no fixed kg-per-box ratio), so neither is ever derived from the
// other here.
type DailyCapacity struct {
	Date                   string  `json:"date"`
	DailyLimitBoxes        float64 `json:"daily_limit_boxes"`
	DailyLimitTons         float64 `json:"daily_limit_tons"`
	BookedBoxes            float64 `json:"booked_boxes"`
	BookedTons             float64 `json:"booked_tons"`
	ReceivedBoxes          float64 `json:"received_boxes"`
	ReceivedTons           float64 `json:"received_tons"`
	RemainingCapacityBoxes float64 `json:"remaining_capacity_boxes"`
	RemainingCapacityTons  float64 `json:"remaining_capacity_tons"`
	TotalBookedTons        float64 `json:"total_booked_tons"`
	AllowOverride          bool    `json:"allow_override"`
}

// DailyLimitRequest sets the box/ton ceiling for one date. AllowOverride lets
// the backend accept bookings past the limit for that day.
type DailyLimitRequest struct {
	Date          string  `json:"date"`
	BoxLimit      float64 `json:"box_limit"`
	TonLimit      float64 `json:"ton_limit"`
	AllowOverride bool    `json:"allow_override"`
}
