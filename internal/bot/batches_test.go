package bot

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/domain/batches"
)

func TestStockAmountUnitMatchesConversion(t *testing.T) {
	b := &Bot{locale: language.English}

	// kilogram stock rides the kg/MT conversion, which brings its own unit;
	// a 1500 kg batch must never read as 1.5 kg.
	assert.Equal(t, "1.5 MT", b.stockAmount(1500, "kg"))
	assert.Equal(t, "999kg", b.stockAmount(999, "kg"))

	// non-kilogram stock keeps the backend's unit next to the raw figure
	assert.Equal(t, "1,500 boxes", b.stockAmount(1500, "boxes"))
	assert.Equal(t, "12.5 crates", b.stockAmount(12.5, "crates"))
}

func TestSupersededSearchLookupIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "slow" {
			close(started)
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"batch_code":"B-7","warehouse_id":1,"product_type":"cod","quantity":1500,"unit":"kg","status":"stored"}]`))
	}))
	defer srv.Close()

	b := &Bot{
		backend: api.New(srv.URL, "", slog.New(slog.NewTextHandler(io.Discard, nil))),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		locale:  language.English,
	}

	type lookup struct {
		list  []batches.BatchStock
		stale bool
		err   error
	}
	slow := make(chan lookup, 1)
	go func() {
		list, stale, err := b.latestBatches(context.Background(), 1, "slow")
		slow <- lookup{list, stale, err}
	}()

	// a newer keystroke takes the ticket while the first lookup is in flight
	<-started
	b.search.Next()
	close(release)

	got := <-slow
	require.NoError(t, got.err)
	assert.True(t, got.stale, "superseded lookup must be dropped")
	assert.Nil(t, got.list)

	list, stale, err := b.latestBatches(context.Background(), 1, "cod")
	require.NoError(t, err)
	assert.False(t, stale)
	require.Len(t, list, 1)
	assert.Equal(t, "B-7", list[0].BatchCode)
}
