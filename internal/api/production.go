package api

import (
	"context"
	"net/url"

	"github.com/havkom/fishops-bot/internal/domain/production"
)

// ListShifts returns the shifts defined for a date.
func (c *Client) ListShifts(ctx context.Context, date string) ([]production.Shift, error) {
	var out []production.Shift
	err := c.get(ctx, "/production/shifts", url.Values{"date": {date}}, &out)
	return out, err
}

// ListRuns returns a date's production runs across all shifts.
func (c *Client) ListRuns(ctx context.Context, date string) ([]production.Run, error) {
	var out []production.Run
	err := c.get(ctx, "/production/runs", url.Values{"date": {date}}, &out)
	return out, err
}

// RecordOutputs posts a run's bulk output rows in one request.
func (c *Client) RecordOutputs(ctx context.Context, req production.OutputRequest) error {
	return c.post(ctx, "/production/outputs", req, nil)
}
