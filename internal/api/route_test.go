package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteLabelCollapsesIDs(t *testing.T) {
	assert.Equal(t, "/fish-purchase-vehicles/:id/receive",
		routeLabel("/fish-purchase-vehicles/42/receive"))
	assert.Equal(t, "/fish-purchases/:id/payments",
		routeLabel("/fish-purchases/7/payments"))
	assert.Equal(t, "/warehouses", routeLabel("/warehouses"))
	assert.Equal(t, "/permissions/users/:id", routeLabel("/permissions/users/123456789"))
}
