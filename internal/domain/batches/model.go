package batches

// BatchStock is the read-only snapshot of one batch's on-hand quantity in a
// single warehouse. A batch belongs to exactly one warehouse at a time.
type BatchStock struct {
	ID          int64   `json:"id"`
	BatchCode   string  `json:"batch_code"`
	WarehouseID int64   `json:"warehouse_id"`
	ProductType string  `json:"product_type"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Status      string  `json:"status"`
}

// TransferRequest moves quantity of a batch between two warehouses. The
// backend performs the paired ledger writes atomically; the client only names
// the two warehouses.
type TransferRequest struct {
	BatchID         int64   `json:"batch_id"`
	FromWarehouseID int64   `json:"from_warehouse_id"`
	ToWarehouseID   int64   `json:"to_warehouse_id"`
	Quantity        float64 `json:"quantity"`
	Notes           string  `json:"notes,omitempty"`
}

// TransferResult is the backend's confirmation of a completed transfer.
type TransferResult struct {
	TransferReference   string  `json:"transfer_reference"`
	QuantityTransferred float64 `json:"quantity_transferred"`
	NewWarehouseID      int64   `json:"new_warehouse_id"`
	NewWarehouseName    string  `json:"new_warehouse_name"`
}

// AdjustmentType tags a manual stock correction.
type AdjustmentType string

const (
	AdjustmentAddition    AdjustmentType = "addition"
	AdjustmentSubtraction AdjustmentType = "subtraction"
)

// AdjustmentRequest corrects a batch's recorded quantity with a reason.
type AdjustmentRequest struct {
	BatchID     int64          `json:"batch_id"`
	WarehouseID int64          `json:"warehouse_id"`
	Type        AdjustmentType `json:"adjustment_type"`
	Quantity    float64        `json:"quantity"`
	Reason      string         `json:"reason"`
	Notes       string         `json:"notes,omitempty"`
}

// AdjustmentResult is the backend's confirmation of an applied adjustment.
type AdjustmentResult struct {
	Type             string  `json:"type"`
	QuantityAdjusted float64 `json:"quantity_adjusted"`
	NewStock         float64 `json:"new_stock"`
}
