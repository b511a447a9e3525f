package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havkom/fishops-bot/internal/domain/production"
)

func TestEntryValidateFlagsOffendingRows(t *testing.T) {
	e := production.Entry{RunID: 3}
	e.Add(production.OutputRow{ProductType: "fillet", Grade: "A", Boxes: 10, WeightKg: 250})
	e.Add(production.OutputRow{ProductType: "", Boxes: 5, WeightKg: 100})
	e.Add(production.OutputRow{ProductType: "fillet", Grade: "B", Boxes: 0, WeightKg: 40})

	errs := e.Validate()
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, 1)
	assert.Contains(t, errs, 2)
}

func TestEntryBuildRequest(t *testing.T) {
	e := production.Entry{RunID: 3}
	e.Add(production.OutputRow{ProductType: "fillet", Grade: "A", Boxes: 10, WeightKg: 250})

	req, err := e.BuildRequest()
	require.NoError(t, err)
	assert.Equal(t, int64(3), req.RunID)
	assert.Len(t, req.Rows, 1)
}

func TestEntryBuildRequestRejectsEmptyAndInvalid(t *testing.T) {
	e := production.Entry{RunID: 3}
	_, err := e.BuildRequest()
	assert.Error(t, err)

	e.Add(production.OutputRow{ProductType: "fillet", Boxes: 10})
	_, err = e.BuildRequest()
	assert.Error(t, err)
}

func TestEntryRemoveLast(t *testing.T) {
	e := production.Entry{RunID: 1}
	e.RemoveLast() // empty is fine
	e.Add(production.OutputRow{ProductType: "fillet", Boxes: 1, WeightKg: 20})
	e.RemoveLast()
	assert.Empty(t, e.Rows)
}
