package api

import (
	"context"
	"net/url"

	"github.com/havkom/fishops-bot/internal/domain/capacity"
)

// GetDailyCapacity fetches the capacity snapshot for one date (YYYY-MM-DD).
// The snapshot is stale the moment any booking or receive mutation lands, so
// screens refetch rather than patch it.
func (c *Client) GetDailyCapacity(ctx context.Context, date string) (capacity.DailyCapacity, error) {
	var out capacity.DailyCapacity
	q := url.Values{"date": {date}}
	err := c.get(ctx, "/fish-purchase-vehicles/daily-capacity", q, &out)
	return out, err
}

// SetDailyLimit updates one date's box/ton ceiling and returns the fresh
// snapshot.
func (c *Client) SetDailyLimit(ctx context.Context, req capacity.DailyLimitRequest) (capacity.DailyCapacity, error) {
	var out capacity.DailyCapacity
	err := c.post(ctx, "/fish-purchase-vehicles/daily-limit", req, &out)
	return out, err
}

// GetRangeStats fetches the server-computed aggregate for a date range. The
// client formats these numbers; it never re-derives them.
func (c *Client) GetRangeStats(ctx context.Context, dateFrom, dateTo string) (capacity.RangeStats, error) {
	var out capacity.RangeStats
	q := url.Values{"date_from": {dateFrom}, "date_to": {dateTo}}
	err := c.get(ctx, "/fish-purchase-vehicles/stats/range", q, &out)
	return out, err
}
