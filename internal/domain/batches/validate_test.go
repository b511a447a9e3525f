package batches_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/havkom/fishops-bot/internal/domain/batches"
)

func batch500(warehouse int64) *batches.BatchStock {
	return &batches.BatchStock{
		ID:          7,
		BatchCode:   "B-2026-0042",
		WarehouseID: warehouse,
		ProductType: "herring",
		Quantity:    500,
		Unit:        "kg",
		Status:      "available",
	}
}

func TestValidateTransferValid(t *testing.T) {
	errs := batches.ValidateTransfer(batches.TransferInput{
		SourceWarehouseID:      1,
		DestinationWarehouseID: 2,
		Batch:                  batch500(1),
		Quantity:               500,
	})
	assert.Empty(t, errs)
}

func TestValidateTransferInsufficientStock(t *testing.T) {
	errs := batches.ValidateTransfer(batches.TransferInput{
		SourceWarehouseID:      1,
		DestinationWarehouseID: 2,
		Batch:                  batch500(1),
		Quantity:               501,
	})
	assert.Contains(t, errs, batches.FieldQuantity)
	assert.Len(t, errs, 1)
}

func TestValidateTransferSelfTransferAlwaysRejected(t *testing.T) {
	// Every other field valid: the destination error must still appear.
	errs := batches.ValidateTransfer(batches.TransferInput{
		SourceWarehouseID:      1,
		DestinationWarehouseID: 1,
		Batch:                  batch500(1),
		Quantity:               100,
	})
	assert.Contains(t, errs, batches.FieldDestinationWarehouse)
	assert.Len(t, errs, 1)
}

func TestValidateTransferReportsAllProblemsAtOnce(t *testing.T) {
	errs := batches.ValidateTransfer(batches.TransferInput{})
	assert.Contains(t, errs, batches.FieldSourceWarehouse)
	assert.Contains(t, errs, batches.FieldBatch)
	assert.Contains(t, errs, batches.FieldDestinationWarehouse)
	assert.Contains(t, errs, batches.FieldQuantity)
}

func TestValidateTransferIdempotent(t *testing.T) {
	in := batches.TransferInput{
		SourceWarehouseID:      3,
		DestinationWarehouseID: 3,
		Batch:                  batch500(3),
		Quantity:               -1,
	}
	first := batches.ValidateTransfer(in)
	second := batches.ValidateTransfer(in)
	assert.Equal(t, first, second)
}

func TestValidateAdjustmentSubtractionChecksStock(t *testing.T) {
	errs := batches.ValidateAdjustment(batches.AdjustmentInput{
		WarehouseID: 1,
		Batch:       batch500(1),
		Type:        batches.AdjustmentSubtraction,
		Quantity:    501,
		Reason:      "damaged crates",
	})
	assert.Contains(t, errs, batches.FieldQuantity)
}

func TestValidateAdjustmentAdditionHasNoUpperBound(t *testing.T) {
	errs := batches.ValidateAdjustment(batches.AdjustmentInput{
		WarehouseID: 1,
		Batch:       batch500(1),
		Type:        batches.AdjustmentAddition,
		Quantity:    10000,
		Reason:      "recount after intake",
	})
	assert.Empty(t, errs)
}

func TestValidateAdjustmentRequiresReason(t *testing.T) {
	errs := batches.ValidateAdjustment(batches.AdjustmentInput{
		WarehouseID: 1,
		Batch:       batch500(1),
		Type:        batches.AdjustmentSubtraction,
		Quantity:    10,
	})
	assert.Contains(t, errs, batches.FieldReason)
	assert.Len(t, errs, 1)
}

func TestValidateAdjustmentUnknownType(t *testing.T) {
	errs := batches.ValidateAdjustment(batches.AdjustmentInput{
		WarehouseID: 1,
		Batch:       batch500(1),
		Type:        batches.AdjustmentType("recount"),
		Quantity:    10,
		Reason:      "x",
	})
	assert.Contains(t, errs, batches.FieldAdjustmentType)
}
