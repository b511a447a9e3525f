package dialog

type State string

const (
	StateIdle State = "idle"

	// Capacity screen
	StateCapView            State = "cap_view"
	StateCapLimitBoxes      State = "cap_limit_boxes" // entering the box limit
	StateCapLimitTons       State = "cap_limit_tons"  // entering the ton limit
	StateCapConfirmOverride State = "cap_confirm_override"

	// Vehicle bookings
	StateBookList       State = "book_list"
	StateBookNewVehicle State = "book_new_vehicle"
	StateBookNewBoxes   State = "book_new_boxes"
	StateBookNewTons    State = "book_new_tons"
	StateBookRecvBoxes  State = "book_recv_boxes" // actual boxes on receive
	StateBookRecvTons   State = "book_recv_tons"

	// Batch browser + transfer wizard
	StateBatchPickWh   State = "batch_pick_wh"
	StateBatchSearch   State = "batch_search" // free-text search input
	StateBatchList     State = "batch_list"
	StateBatchItem     State = "batch_item" // batch card with actions
	StateTransferQty   State = "tr_qty"
	StateTransferDest  State = "tr_dest"
	StateTransferNotes State = "tr_notes"
	StateTransferCheck State = "tr_check" // review before submit

	// Adjustment wizard
	StateAdjustType   State = "adj_type"
	StateAdjustQty    State = "adj_qty"
	StateAdjustReason State = "adj_reason"
	StateAdjustCheck  State = "adj_check"

	// Fish purchase wizard (supplier -> details -> items -> review)
	StatePurSupplierPick  State = "pur_supplier_pick"
	StatePurContactName   State = "pur_contact_name"
	StatePurContactPhone  State = "pur_contact_phone"
	StatePurVehicle       State = "pur_vehicle"
	StatePurDeliveryDate  State = "pur_delivery_date"
	StatePurItemProduct   State = "pur_item_product"
	StatePurItemGrade     State = "pur_item_grade"
	StatePurItemBoxes     State = "pur_item_boxes"
	StatePurItemWeight    State = "pur_item_weight"
	StatePurItemPrice     State = "pur_item_price"
	StatePurReview        State = "pur_review"
	StatePurPaymentAmount State = "pur_payment_amount" // recording a payment

	// Production outputs
	StateOutPickRun    State = "out_pick_run"
	StateOutRowProduct State = "out_row_product"
	StateOutRowGrade   State = "out_row_grade"
	StateOutRowBoxes   State = "out_row_boxes"
	StateOutRowWeight  State = "out_row_weight"
	StateOutReview     State = "out_review"

	// Range statistics
	StateStatsFrom State = "stats_from"
	StateStatsTo   State = "stats_to"
	StateStatsView State = "stats_view"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}

// GetString reads a string payload value.
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt64 reads an integer payload value, tolerating the float64 shape older
// JSON-backed payloads used.
func GetInt64(p Payload, key string) (int64, bool) {
	switch v := p[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// GetFloat64 reads a numeric payload value.
func GetFloat64(p Payload, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}
