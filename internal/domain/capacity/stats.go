package capacity

// RangeStats is the read-only aggregate the backend computes over a date
// range. The client never derives any of these numbers itself, it only
// formats them (screen text or spreadsheet cells).
type RangeStats struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`

	TotalBookings     int `json:"total_bookings"`
	CompletedBookings int `json:"completed_bookings"`
	RejectedBookings  int `json:"rejected_bookings"`

	CompletionRatePct float64 `json:"completion_rate"`
	RejectionRatePct  float64 `json:"rejection_rate"`

	TotalBookedTons   float64 `json:"total_booked_tons"`
	TotalReceivedTons float64 `json:"total_received_tons"`

	AverageUtilizationPct float64 `json:"average_utilization_percent"`
	UtilizationVariance   float64 `json:"utilization_variance"`
	PeakHour              int     `json:"peak_hour"`

	Days []DayStats `json:"days"`
}

// DayStats is one bucket of the range, already aggregated server-side.
type DayStats struct {
	Date           string  `json:"date"`
	Bookings       int     `json:"bookings"`
	BookedTons     float64 `json:"booked_tons"`
	ReceivedTons   float64 `json:"received_tons"`
	UtilizationPct float64 `json:"utilization_percent"`
}
