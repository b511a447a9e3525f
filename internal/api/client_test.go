package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/domain/batches"
	"github.com/havkom/fishops-bot/internal/domain/capacity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetDailyCapacityDecodesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fish-purchase-vehicles/daily-capacity", r.URL.Path)
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(capacity.DailyCapacity{
			Date:            "2026-09-01",
			DailyLimitTons:  100,
			TotalBookedTons: 85,
		})
	}))
	defer srv.Close()

	c := api.New(srv.URL, "tok", discardLogger())
	got, err := c.GetDailyCapacity(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.DailyLimitTons)
	assert.Equal(t, 85.0, got.TotalBookedTons)
}

func TestBusinessRejectionSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "stock changed, refresh and retry"})
	}))
	defer srv.Close()

	c := api.New(srv.URL, "", discardLogger())
	_, err := c.TransferBatch(context.Background(), batches.TransferRequest{BatchID: 1})
	require.Error(t, err)

	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "stock changed, refresh and retry", apiErr.Message)
	assert.False(t, api.IsCanceled(err))
}

func TestServerFailureIsNotABusinessRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := api.New(srv.URL, "", discardLogger())
	_, err := c.ListWarehouses(context.Background())
	require.Error(t, err)
	_, ok := api.AsAPIError(err)
	assert.False(t, ok)
}

func TestCanceledRequestIsDistinguishedFromFailure(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := api.New(srv.URL, "", discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.GetDailyCapacity(ctx, "2026-09-01")
	require.Error(t, err)
	assert.True(t, api.IsCanceled(err))
	_, ok := api.AsAPIError(err)
	assert.False(t, ok)
}

func TestMutationsCarryIdempotencyKey(t *testing.T) {
	keys := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get("Idempotency-Key")
		_ = json.NewEncoder(w).Encode(batches.AdjustmentResult{Type: "addition", NewStock: 10})
	}))
	defer srv.Close()

	c := api.New(srv.URL, "", discardLogger())
	_, err := c.AdjustBatch(context.Background(), batches.AdjustmentRequest{
		BatchID: 1, WarehouseID: 2, Type: batches.AdjustmentAddition, Quantity: 5, Reason: "recount",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, <-keys)
}

func TestConcurrentIdenticalReadsShareOneFlight(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(50 * time.Millisecond)
		_ = json.NewEncoder(w).Encode([]api.Warehouse{{ID: 1, Name: "Cold store", Active: true}})
	}))
	defer srv.Close()

	c := api.New(srv.URL, "", discardLogger())
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws, err := c.ListWarehouses(context.Background())
			assert.NoError(t, err)
			assert.Len(t, ws, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), hits.Load())
}

func TestExpiredTokenFailsBeforeTheNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "console",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("unit-test"))
	require.NoError(t, err)

	c := api.New(srv.URL, tok, discardLogger())
	_, err = c.ListWarehouses(context.Background())
	assert.ErrorIs(t, err, api.ErrTokenExpired)
	assert.Equal(t, int64(0), hits.Load())
}

func TestOpaqueTokenSkipsExpiryCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]api.Warehouse{})
	}))
	defer srv.Close()

	c := api.New(srv.URL, "opaque-session-token", discardLogger())
	_, err := c.ListWarehouses(context.Background())
	assert.NoError(t, err)
}

func TestWaiterSurvivesInitiatorCancel(t *testing.T) {
	started := make(chan struct{})
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
			<-r.Context().Done()
			return
		}
		_ = json.NewEncoder(w).Encode([]api.Warehouse{{ID: 1, Name: "Cold store", Active: true}})
	}))
	defer srv.Close()

	c := api.New(srv.URL, "", discardLogger())

	initiatorCtx, cancel := context.WithCancel(context.Background())
	initiatorErr := make(chan error, 1)
	go func() {
		_, err := c.ListWarehouses(initiatorCtx)
		initiatorErr <- err
	}()

	<-started
	waiterDone := make(chan error, 1)
	go func() {
		ws, err := c.ListWarehouses(context.Background())
		if err == nil {
			assert.Len(t, ws, 1)
		}
		waiterDone <- err
	}()

	// give the waiter time to join the in-flight read before the
	// initiator walks away
	time.Sleep(50 * time.Millisecond)
	cancel()

	assert.True(t, api.IsCanceled(<-initiatorErr))
	assert.NoError(t, <-waiterDone)
}

func TestGuardLatestTicketWins(t *testing.T) {
	var g api.Guard
	first := g.Next()
	second := g.Next()
	assert.False(t, g.Current(first))
	assert.True(t, g.Current(second))

	third := g.Next()
	assert.False(t, g.Current(second))
	assert.True(t, g.Current(third))
}
