package purchase

import "github.com/shopspring/decimal"

// PaymentProgress mirrors how far a purchase's ledger has been settled. All
// amounts come from the backend; the client only derives the display shape.
type PaymentProgress struct {
	Paid      decimal.Decimal
	Total     decimal.Decimal
	Remaining decimal.Decimal
	Percent   float64
}

// Progress computes payment completion for display. A zero total reads as 0%,
// and overpayment is clamped to 100 with a zero remainder so the bar never
// renders past full.
func Progress(paid, total decimal.Decimal) PaymentProgress {
	p := PaymentProgress{Paid: paid, Total: total, Remaining: total.Sub(paid)}
	if total.Sign() <= 0 {
		p.Remaining = decimal.Zero
		return p
	}
	pct, _ := paid.Div(total).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		pct = 100
	}
	if p.Remaining.Sign() < 0 {
		p.Remaining = decimal.Zero
	}
	p.Percent = pct
	return p
}
