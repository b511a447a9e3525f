package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/havkom/fishops-bot/internal/domain/batches"
)

// Warehouse is a storage location batches live in.
type Warehouse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Active bool   `json:"active"`
}

// ListWarehouses returns all warehouses; screens filter on Active.
func (c *Client) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	var out []Warehouse
	err := c.get(ctx, "/warehouses", nil, &out)
	return out, err
}

// ListBatches returns the batch snapshots for a warehouse, optionally filtered
// by a search term.
func (c *Client) ListBatches(ctx context.Context, warehouseID int64, search string) ([]batches.BatchStock, error) {
	q := url.Values{"warehouse_id": {strconv.FormatInt(warehouseID, 10)}}
	if search != "" {
		q.Set("search", search)
	}
	var out []batches.BatchStock
	err := c.get(ctx, "/batches", q, &out)
	return out, err
}

// TransferBatch moves quantity between warehouses. The backend performs the
// paired ledger writes atomically and re-validates stock.
func (c *Client) TransferBatch(ctx context.Context, req batches.TransferRequest) (batches.TransferResult, error) {
	var out batches.TransferResult
	err := c.post(ctx, "/batches/transfer", req, &out)
	return out, err
}

// AdjustBatch applies a manual correction with a reason.
func (c *Client) AdjustBatch(ctx context.Context, req batches.AdjustmentRequest) (batches.AdjustmentResult, error) {
	var out batches.AdjustmentResult
	err := c.post(ctx, "/batches/adjustment", req, &out)
	return out, err
}
