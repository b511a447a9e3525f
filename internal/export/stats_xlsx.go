package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/havkom/fishops-bot/internal/domain/capacity"
)

// RangeStatsWorkbook renders a fetched range aggregate as an xlsx for sending
// to the chat. Numbers are written exactly as the backend computed them; this
// is a formatting convenience, not a report engine.
func RangeStatsWorkbook(stats capacity.RangeStats) ([]byte, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	summary := [][]interface{}{
		{"date_from", stats.DateFrom},
		{"date_to", stats.DateTo},
		{"total_bookings", stats.TotalBookings},
		{"completed_bookings", stats.CompletedBookings},
		{"rejected_bookings", stats.RejectedBookings},
		{"completion_rate_pct", stats.CompletionRatePct},
		{"rejection_rate_pct", stats.RejectionRatePct},
		{"total_booked_tons", stats.TotalBookedTons},
		{"total_received_tons", stats.TotalReceivedTons},
		{"avg_utilization_pct", stats.AverageUtilizationPct},
		{"utilization_variance", stats.UtilizationVariance},
		{"peak_hour", stats.PeakHour},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	dayRow := len(summary) + 2
	header := []interface{}{"date", "bookings", "booked_tons", "received_tons", "utilization_pct"}
	cell, err := excelize.CoordinatesToCellName(1, dayRow)
	if err != nil {
		return nil, "", err
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return nil, "", err
	}
	for i, d := range stats.Days {
		row := []interface{}{d.Date, d.Bookings, d.BookedTons, d.ReceivedTons, d.UtilizationPct}
		cell, err := excelize.CoordinatesToCellName(1, dayRow+1+i)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("vehicle_stats_%s_%s.xlsx", stats.DateFrom, stats.DateTo)
	return buf.Bytes(), name, nil
}
