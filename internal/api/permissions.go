package api

import (
	"context"
	"fmt"
)

// Action is a console capability evaluated by the remote permission store.
// The client never decides permissions itself; it only mirrors the granted
// set to hide or disable controls.
type Action string

const (
	ActionManageCapacity Action = "capacity.manage"
	ActionManageBookings Action = "bookings.manage"
	ActionTransferBatch  Action = "batches.transfer"
	ActionAdjustBatch    Action = "batches.adjust"
	ActionRecordPurchase Action = "purchases.record"
	ActionRecordOutputs  Action = "production.record_outputs"
	ActionViewReports    Action = "reports.view"
)

// PermissionSet is the granted actions for one user.
type PermissionSet map[Action]bool

// Has reports whether the set grants an action. A nil set grants nothing.
func (s PermissionSet) Has(a Action) bool { return s[a] }

type permissionsBody struct {
	Actions []Action `json:"actions"`
}

// GetPermissions fetches a user's granted actions from the permission store.
func (c *Client) GetPermissions(ctx context.Context, userID int64) (PermissionSet, error) {
	var body permissionsBody
	if err := c.get(ctx, fmt.Sprintf("/permissions/users/%d", userID), nil, &body); err != nil {
		return nil, err
	}
	set := make(PermissionSet, len(body.Actions))
	for _, a := range body.Actions {
		set[a] = true
	}
	return set, nil
}
