package purchase

import "github.com/shopspring/decimal"

// Step names one screen of the fish purchase wizard. The order is fixed and
// linear; there is no branching.
type Step string

const (
	StepSupplier Step = "supplier"
	StepDetails  Step = "details"
	StepItems    Step = "items"
	StepReview   Step = "review"
)

// Steps is the wizard order.
var Steps = []Step{StepSupplier, StepDetails, StepItems, StepReview}

// Item is one intake line: a product at a size grade with box count, weight
// and the agreed unit price.
type Item struct {
	ProductType string
	SizeGrade   string
	Boxes       int
	WeightKg    float64
	UnitPrice   decimal.Decimal
}

// Form accumulates the wizard's answers. It lives only in the dialog payload;
// abandoning the flow loses everything by design.
type Form struct {
	Step Step

	// supplier: either a registered supplier or a manual contact.
	SupplierID   int64
	ContactName  string
	ContactPhone string

	// details
	VehicleReg    string
	DeliveryDate  string
	PaymentMethod string
	Notes         string

	Items []Item
}

// NewForm starts the wizard at the supplier step.
func NewForm() *Form {
	return &Form{Step: StepSupplier}
}

// StepComplete reports whether a step's inputs are filled in. It is a pure
// predicate over current values.
func (f *Form) StepComplete(s Step) bool {
	switch s {
	case StepSupplier:
		return f.SupplierID != 0 || (f.ContactName != "" && f.ContactPhone != "")
	case StepDetails:
		return f.VehicleReg != "" && f.DeliveryDate != ""
	case StepItems:
		if len(f.Items) == 0 {
			return false
		}
		for _, it := range f.Items {
			if it.ProductType == "" || it.WeightKg <= 0 || it.Boxes <= 0 || it.UnitPrice.IsNegative() {
				return false
			}
		}
		return true
	case StepReview:
		return f.StepComplete(StepSupplier) && f.StepComplete(StepDetails) && f.StepComplete(StepItems)
	}
	return false
}

// Next advances to the following step only when the current one is complete.
// It reports whether the step changed.
func (f *Form) Next() bool {
	if !f.StepComplete(f.Step) {
		return false
	}
	for i, s := range Steps {
		if s == f.Step && i+1 < len(Steps) {
			f.Step = Steps[i+1]
			return true
		}
	}
	return false
}

// Prev steps back; always permitted.
func (f *Form) Prev() bool {
	for i, s := range Steps {
		if s == f.Step && i > 0 {
			f.Step = Steps[i-1]
			return true
		}
	}
	return false
}

// Jump moves to an arbitrary step. The submit action stays gated on
// StepComplete(StepReview) regardless of how the user navigated.
func (f *Form) Jump(s Step) {
	for _, known := range Steps {
		if known == s {
			f.Step = s
			return
		}
	}
}

// TotalAmount sums the line totals (boxes are informational; pricing is per
// kilogram).
func (f *Form) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range f.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromFloat(it.WeightKg)))
	}
	return total
}
