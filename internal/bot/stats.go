package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/dialog"
	"github.com/havkom/fishops-bot/internal/export"
	"github.com/havkom/fishops-bot/internal/format"
)

func (b *Bot) showStatsMenu(ctx context.Context, chatID int64) {
	_ = b.states.Set(ctx, chatID, dialog.StateStatsFrom, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "📈 Vehicle statistics. Pick a range:")
	m.ReplyMarkup = statsRangeKeyboard()
	b.send(m)
}

func (b *Bot) handleStatsCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	switch {
	case strings.HasPrefix(rest, "quick:"):
		days, err := strconv.Atoi(strings.TrimPrefix(rest, "quick:"))
		if err != nil {
			return
		}
		to := time.Now()
		from := to.AddDate(0, 0, -days+1)
		b.showRangeStats(ctx, chatID, userID, from.Format(dateLayout), to.Format(dateLayout), &msgID)

	case rest == "custom":
		b.editTextWithNav(chatID, msgID, "Start date (YYYY-MM-DD):")
		_ = b.states.Set(ctx, chatID, dialog.StateStatsFrom, dialog.Payload{})

	case strings.HasPrefix(rest, "export:"):
		parts := strings.SplitN(strings.TrimPrefix(rest, "export:"), ":", 2)
		if len(parts) != 2 {
			return
		}
		b.exportRangeStats(ctx, chatID, userID, parts[0], parts[1])
	}
}

func (b *Bot) handleStatsDateInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if _, err := time.Parse(dateLayout, text); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Use the YYYY-MM-DD format."))
		return
	}

	switch st.State {
	case dialog.StateStatsFrom:
		st.Payload["date_from"] = text
		b.askText(ctx, chatID, "End date (YYYY-MM-DD):", dialog.StateStatsTo, st.Payload)

	case dialog.StateStatsTo:
		from, _ := dialog.GetString(st.Payload, "date_from")
		if text < from {
			b.send(tgbotapi.NewMessage(chatID, "End date is before the start date."))
			return
		}
		b.showRangeStats(ctx, chatID, 0, from, text, nil)
	}
}

func (b *Bot) showRangeStats(ctx context.Context, chatID, userID int64, from, to string, editMsgID *int) {
	stats, err := b.backend.GetRangeStats(ctx, from, to)
	if err != nil {
		b.notifyError(chatID, "Could not load statistics", err)
		return
	}

	lines := []string{
		fmt.Sprintf("📈 Vehicles %s — %s", stats.DateFrom, stats.DateTo),
		fmt.Sprintf("Bookings: %d (%d completed, %d rejected)",
			stats.TotalBookings, stats.CompletedBookings, stats.RejectedBookings),
		fmt.Sprintf("Completion: %s, rejection: %s",
			format.Percent(stats.CompletionRatePct, b.locale),
			format.Percent(stats.RejectionRatePct, b.locale)),
		fmt.Sprintf("Booked: %s, received: %s",
			format.Tons(stats.TotalBookedTons, b.locale),
			format.Tons(stats.TotalReceivedTons, b.locale)),
		fmt.Sprintf("Avg utilization: %s (variance %.1f), peak hour %02d:00",
			format.Percent(stats.AverageUtilizationPct, b.locale),
			stats.UtilizationVariance, stats.PeakHour),
	}
	if len(stats.Days) > 0 {
		lines = append(lines, "", "By day:")
		for _, d := range stats.Days {
			lines = append(lines, fmt.Sprintf("• %s: %d bookings, %s received, %s",
				d.Date, d.Bookings,
				format.Tons(d.ReceivedTons, b.locale),
				format.Percent(d.UtilizationPct, b.locale)))
		}
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Export xlsx", fmt.Sprintf("st:export:%s:%s", from, to)),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)

	_ = b.states.Set(ctx, chatID, dialog.StateStatsView, dialog.Payload{"date_from": from, "date_to": to})
	text := strings.Join(lines, "\n")
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
	} else {
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = kb
		b.send(m)
	}
}

func (b *Bot) exportRangeStats(ctx context.Context, chatID, userID int64, from, to string) {
	if !b.access.CanDo(ctx, userID, api.ActionViewReports) {
		b.send(tgbotapi.NewMessage(chatID, "You are not allowed to export reports."))
		return
	}

	stats, err := b.backend.GetRangeStats(ctx, from, to)
	if err != nil {
		b.notifyError(chatID, "Could not load statistics", err)
		return
	}

	data, name, err := export.RangeStatsWorkbook(stats)
	if err != nil {
		b.log.Error("stats export", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not build the spreadsheet."))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = fmt.Sprintf("Vehicle statistics %s — %s", from, to)
	if _, err := b.api.Send(doc); err != nil {
		b.log.Error("send stats document", "err", err)
	}
}
