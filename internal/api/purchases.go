package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/havkom/fishops-bot/internal/domain/purchase"
)

// Supplier is a registered fish supplier selectable in the purchase wizard.
type Supplier struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ListSuppliers returns suppliers matching a search term.
func (c *Client) ListSuppliers(ctx context.Context, search string) ([]Supplier, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var out []Supplier
	err := c.get(ctx, "/suppliers", q, &out)
	return out, err
}

// CreatePurchase submits a completed purchase wizard.
func (c *Client) CreatePurchase(ctx context.Context, req purchase.Request) (purchase.Purchase, error) {
	var out purchase.Purchase
	err := c.post(ctx, "/fish-purchases", req, &out)
	return out, err
}

// ListPurchases returns one date's purchases with their payment state.
func (c *Client) ListPurchases(ctx context.Context, date string) ([]purchase.Purchase, error) {
	var out []purchase.Purchase
	err := c.get(ctx, "/fish-purchases", url.Values{"date": {date}}, &out)
	return out, err
}

// RecordPayment posts one payment against a purchase's ledger and returns the
// updated record.
func (c *Client) RecordPayment(ctx context.Context, req purchase.PaymentRequest) (purchase.Purchase, error) {
	var out purchase.Purchase
	err := c.post(ctx, fmt.Sprintf("/fish-purchases/%d/payments", req.PurchaseID), req, &out)
	return out, err
}
