package purchase

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ItemRequest is one intake line in wire shape.
type ItemRequest struct {
	ProductType string          `json:"product_type"`
	SizeGrade   string          `json:"size_grade,omitempty"`
	Boxes       int             `json:"boxes"`
	WeightKg    float64         `json:"weight_kg"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Request is the purchase submission the backend expects. Exactly one of
// SupplierID or the manual contact pair is set.
type Request struct {
	SupplierID    int64         `json:"supplier_id,omitempty"`
	ContactName   string        `json:"contact_name,omitempty"`
	ContactPhone  string        `json:"contact_phone,omitempty"`
	VehicleReg    string        `json:"vehicle_reg"`
	DeliveryDate  string        `json:"delivery_date"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Items         []ItemRequest `json:"items"`
}

// Purchase is the backend's record of a submitted purchase.
type Purchase struct {
	ID           int64           `json:"id"`
	Reference    string          `json:"reference"`
	SupplierName string          `json:"supplier_name"`
	DeliveryDate string          `json:"delivery_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	Status       string          `json:"status"`
}

// PaymentRequest records one payment against a purchase's ledger.
type PaymentRequest struct {
	PurchaseID int64           `json:"purchase_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
}

// ErrIncomplete is returned when submit is attempted before every step is
// complete.
var ErrIncomplete = errors.New("purchase form is incomplete")

// BuildRequest turns the accumulated form into the wire request. It is the
// only place where an incomplete form becomes a user-visible error.
func (f *Form) BuildRequest() (Request, error) {
	if !f.StepComplete(StepReview) {
		return Request{}, ErrIncomplete
	}

	req := Request{
		VehicleReg:    f.VehicleReg,
		DeliveryDate:  f.DeliveryDate,
		PaymentMethod: f.PaymentMethod,
		Notes:         f.Notes,
		Items:         make([]ItemRequest, 0, len(f.Items)),
	}
	if f.SupplierID != 0 {
		req.SupplierID = f.SupplierID
	} else {
		req.ContactName = f.ContactName
		req.ContactPhone = f.ContactPhone
	}
	for _, it := range f.Items {
		req.Items = append(req.Items, ItemRequest{
			ProductType: it.ProductType,
			SizeGrade:   it.SizeGrade,
			Boxes:       it.Boxes,
			WeightKg:    it.WeightKg,
			UnitPrice:   it.UnitPrice,
		})
	}
	return req, nil
}
