package dialog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havkom/fishops-bot/internal/dialog"
)

func TestGetDefaultsToIdle(t *testing.T) {
	r := dialog.NewRepo()
	it, err := r.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateIdle, it.State)
	assert.NotNil(t, it.Payload)
}

func TestSetGetResetRoundTrip(t *testing.T) {
	r := dialog.NewRepo()
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, 7, dialog.StateTransferQty, dialog.Payload{"batch_id": int64(3)}))

	it, err := r.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateTransferQty, it.State)
	id, ok := dialog.GetInt64(it.Payload, "batch_id")
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	require.NoError(t, r.Reset(ctx, 7))
	it, err = r.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, dialog.StateIdle, it.State)
}

func TestPayloadHelpersTolerateNumericShapes(t *testing.T) {
	p := dialog.Payload{"a": float64(5), "b": int64(6), "c": 7, "s": "x"}

	a, ok := dialog.GetInt64(p, "a")
	assert.True(t, ok)
	assert.Equal(t, int64(5), a)

	f, ok := dialog.GetFloat64(p, "b")
	assert.True(t, ok)
	assert.Equal(t, 6.0, f)

	s, ok := dialog.GetString(p, "s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = dialog.GetInt64(p, "s")
	assert.False(t, ok)
	_, ok = dialog.GetString(p, "missing")
	assert.False(t, ok)
}
