package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/havkom/fishops-bot/internal/domain/capacity"
	"github.com/havkom/fishops-bot/internal/export"
)

func TestRangeStatsWorkbook(t *testing.T) {
	stats := capacity.RangeStats{
		DateFrom:          "2026-08-01",
		DateTo:            "2026-08-07",
		TotalBookings:     40,
		CompletedBookings: 35,
		CompletionRatePct: 87.5,
		PeakHour:          9,
		Days: []capacity.DayStats{
			{Date: "2026-08-01", Bookings: 6, BookedTons: 80, ReceivedTons: 78, UtilizationPct: 80},
			{Date: "2026-08-02", Bookings: 5, BookedTons: 60, ReceivedTons: 61, UtilizationPct: 60},
		},
	}

	raw, name, err := export.RangeStatsWorkbook(stats)
	require.NoError(t, err)
	assert.Equal(t, "vehicle_stats_2026-08-01_2026-08-07.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	// 12 summary rows, a blank spacer, a header and two day rows.
	require.GreaterOrEqual(t, len(rows), 16)
	assert.Equal(t, []string{"date_from", "2026-08-01"}, rows[0][:2])
	assert.Equal(t, "date", rows[13][0])
	assert.Equal(t, "2026-08-02", rows[15][0])
}
