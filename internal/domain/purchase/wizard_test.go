package purchase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havkom/fishops-bot/internal/domain/purchase"
)

func filledForm() *purchase.Form {
	f := purchase.NewForm()
	f.SupplierID = 12
	f.VehicleReg = "KA-4411"
	f.DeliveryDate = "2026-09-01"
	f.Items = []purchase.Item{{
		ProductType: "mackerel",
		SizeGrade:   "M",
		Boxes:       40,
		WeightKg:    800,
		UnitPrice:   decimal.NewFromFloat(2.50),
	}}
	return f
}

func TestSupplierStepCompletePredicate(t *testing.T) {
	f := purchase.NewForm()
	assert.False(t, f.StepComplete(purchase.StepSupplier))

	f.SupplierID = 5
	assert.True(t, f.StepComplete(purchase.StepSupplier))

	manual := purchase.NewForm()
	manual.ContactName = "A. Haugen"
	assert.False(t, manual.StepComplete(purchase.StepSupplier))
	manual.ContactPhone = "+47 400 00 000"
	assert.True(t, manual.StepComplete(purchase.StepSupplier))
}

func TestNextRejectsIncompleteStep(t *testing.T) {
	f := purchase.NewForm()
	assert.False(t, f.Next())
	assert.Equal(t, purchase.StepSupplier, f.Step)
}

func TestNextAdvancesThroughAllSteps(t *testing.T) {
	f := filledForm()
	assert.True(t, f.Next())
	assert.Equal(t, purchase.StepDetails, f.Step)
	assert.True(t, f.Next())
	assert.Equal(t, purchase.StepItems, f.Step)
	assert.True(t, f.Next())
	assert.Equal(t, purchase.StepReview, f.Step)
	// Review is the last step.
	assert.False(t, f.Next())
}

func TestPrevAlwaysPermitted(t *testing.T) {
	f := purchase.NewForm()
	f.Jump(purchase.StepItems)
	assert.True(t, f.Prev())
	assert.Equal(t, purchase.StepDetails, f.Step)
}

func TestJumpDoesNotBypassSubmitGate(t *testing.T) {
	f := purchase.NewForm()
	f.Jump(purchase.StepReview)
	assert.Equal(t, purchase.StepReview, f.Step)
	assert.False(t, f.StepComplete(purchase.StepReview))

	_, err := f.BuildRequest()
	assert.ErrorIs(t, err, purchase.ErrIncomplete)
}

func TestBuildRequestRegisteredSupplier(t *testing.T) {
	f := filledForm()
	req, err := f.BuildRequest()
	require.NoError(t, err)
	assert.Equal(t, int64(12), req.SupplierID)
	assert.Empty(t, req.ContactName)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "mackerel", req.Items[0].ProductType)
}

func TestBuildRequestManualContact(t *testing.T) {
	f := filledForm()
	f.SupplierID = 0
	f.ContactName = "A. Haugen"
	f.ContactPhone = "+47 400 00 000"
	req, err := f.BuildRequest()
	require.NoError(t, err)
	assert.Zero(t, req.SupplierID)
	assert.Equal(t, "A. Haugen", req.ContactName)
}

func TestTotalAmount(t *testing.T) {
	f := filledForm()
	f.Items = append(f.Items, purchase.Item{
		ProductType: "cod",
		Boxes:       10,
		WeightKg:    200,
		UnitPrice:   decimal.NewFromInt(4),
	})
	// 800*2.50 + 200*4 = 2800
	assert.True(t, f.TotalAmount().Equal(decimal.NewFromInt(2800)))
}

func TestPaymentProgress(t *testing.T) {
	p := purchase.Progress(decimal.NewFromInt(700), decimal.NewFromInt(2800))
	assert.InDelta(t, 25, p.Percent, 1e-9)
	assert.True(t, p.Remaining.Equal(decimal.NewFromInt(2100)))
}

func TestPaymentProgressZeroTotal(t *testing.T) {
	p := purchase.Progress(decimal.NewFromInt(50), decimal.Zero)
	assert.Equal(t, 0.0, p.Percent)
	assert.True(t, p.Remaining.IsZero())
}

func TestPaymentProgressOverpaymentClamped(t *testing.T) {
	p := purchase.Progress(decimal.NewFromInt(3000), decimal.NewFromInt(2800))
	assert.Equal(t, 100.0, p.Percent)
	assert.True(t, p.Remaining.IsZero())
}
