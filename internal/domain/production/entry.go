package production

import "fmt"

// Entry accumulates bulk output rows for one run before submission. Like every
// form here it is in-memory only; cancelling the dialog discards it.
type Entry struct {
	RunID int64
	Rows  []OutputRow
}

// Add appends a row.
func (e *Entry) Add(r OutputRow) {
	e.Rows = append(e.Rows, r)
}

// RemoveLast drops the most recently added row, if any.
func (e *Entry) RemoveLast() {
	if n := len(e.Rows); n > 0 {
		e.Rows = e.Rows[:n-1]
	}
}

// Validate returns one message per offending row index; an empty map means the
// entry can be submitted. Rules are per-row and independent.
func (e *Entry) Validate() map[int]string {
	errs := map[int]string{}
	for i, r := range e.Rows {
		switch {
		case r.ProductType == "":
			errs[i] = "product type is required"
		case r.Boxes <= 0:
			errs[i] = "box count must be greater than zero"
		case r.WeightKg <= 0:
			errs[i] = "weight must be greater than zero"
		}
	}
	return errs
}

// BuildRequest turns the entry into the wire request, refusing incomplete
// input the same way the purchase wizard does.
func (e *Entry) BuildRequest() (OutputRequest, error) {
	if e.RunID == 0 {
		return OutputRequest{}, fmt.Errorf("no production run selected")
	}
	if len(e.Rows) == 0 {
		return OutputRequest{}, fmt.Errorf("no output rows entered")
	}
	if errs := e.Validate(); len(errs) > 0 {
		return OutputRequest{}, fmt.Errorf("%d output row(s) are invalid", len(errs))
	}
	return OutputRequest{RunID: e.RunID, Rows: e.Rows}, nil
}
