package batches

// FieldErrors maps a form field to a human message. An empty map means the
// input is admissible. The caller keeps submit disabled while non-empty and
// clears a field's entry as soon as the user edits that field.
type FieldErrors map[string]string

// Field keys used by the screens.
const (
	FieldSourceWarehouse      = "sourceWarehouse"
	FieldDestinationWarehouse = "destinationWarehouse"
	FieldBatch                = "batch"
	FieldQuantity             = "quantity"
	FieldReason               = "reason"
	FieldAdjustmentType       = "adjustmentType"
)

// TransferInput is what the transfer wizard has gathered so far. Batch is the
// snapshot most recently fetched for the source warehouse, or nil if none is
// selected yet.
type TransferInput struct {
	SourceWarehouseID      int64
	DestinationWarehouseID int64
	Batch                  *BatchStock
	Quantity               float64
}

// ValidateTransfer checks a transfer before submission. Every rule is
// evaluated independently so the screen can show all problems at once; nothing
// short-circuits. This is a UX pre-check only — the backend re-validates and
// may still reject on concurrent stock changes.
func ValidateTransfer(in TransferInput) FieldErrors {
	errs := FieldErrors{}

	if in.SourceWarehouseID == 0 {
		errs[FieldSourceWarehouse] = "select a source warehouse"
	}
	if in.Batch == nil {
		errs[FieldBatch] = "select a batch from the source warehouse"
	}
	switch {
	case in.DestinationWarehouseID == 0:
		errs[FieldDestinationWarehouse] = "select a destination warehouse"
	case in.DestinationWarehouseID == in.SourceWarehouseID:
		errs[FieldDestinationWarehouse] = "destination must differ from the source warehouse"
	}
	switch {
	case in.Quantity <= 0:
		errs[FieldQuantity] = "enter a quantity greater than zero"
	case in.Batch != nil && in.Quantity > in.Batch.Quantity:
		errs[FieldQuantity] = "quantity exceeds the batch's available stock"
	}

	return errs
}

// AdjustmentInput is what the adjustment wizard has gathered so far.
type AdjustmentInput struct {
	WarehouseID int64
	Batch       *BatchStock
	Type        AdjustmentType
	Quantity    float64
	Reason      string
}

// ValidateAdjustment checks a manual correction before submission. The
// stock-sufficiency rule only applies to subtractions; additions have no upper
// bound.
func ValidateAdjustment(in AdjustmentInput) FieldErrors {
	errs := FieldErrors{}

	if in.WarehouseID == 0 {
		errs[FieldSourceWarehouse] = "select a warehouse"
	}
	if in.Batch == nil {
		errs[FieldBatch] = "select a batch"
	}
	if in.Type != AdjustmentAddition && in.Type != AdjustmentSubtraction {
		errs[FieldAdjustmentType] = "choose addition or subtraction"
	}
	if in.Reason == "" {
		errs[FieldReason] = "a reason is required for adjustments"
	}
	switch {
	case in.Quantity <= 0:
		errs[FieldQuantity] = "enter a quantity greater than zero"
	case in.Type == AdjustmentSubtraction && in.Batch != nil && in.Quantity > in.Batch.Quantity:
		errs[FieldQuantity] = "cannot subtract more than the recorded stock"
	}

	return errs
}
