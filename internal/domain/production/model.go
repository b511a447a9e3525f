package production

// Shift is a production time window, tracked server-side.
type Shift struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

// Run is an active or finished production execution within a shift. Its state
// machine lives entirely on the backend; the client renders and selects.
type Run struct {
	ID          int64  `json:"id"`
	ShiftID     int64  `json:"shift_id"`
	ProductType string `json:"product_type"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at"`
	FinishedAt  string `json:"finished_at,omitempty"`
}

// OutputRow is one line of the bulk output entry screen.
type OutputRow struct {
	ProductType string  `json:"product_type"`
	Grade       string  `json:"grade"`
	Boxes       int     `json:"boxes"`
	WeightKg    float64 `json:"weight_kg"`
}

// OutputRequest posts a run's outputs in one batch.
type OutputRequest struct {
	RunID int64       `json:"run_id"`
	Rows  []OutputRow `json:"rows"`
}
