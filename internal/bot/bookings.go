package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/dialog"
	"github.com/havkom/fishops-bot/internal/format"
	"github.com/havkom/fishops-bot/internal/infra/metrics"
)

func (b *Bot) showBookings(ctx context.Context, chatID, userID int64, date string, editMsgID *int) {
	bookings, err := b.backend.ListBookings(ctx, date)
	if err != nil {
		b.notifyError(chatID, "Could not load bookings", err)
		return
	}

	lines := []string{fmt.Sprintf("🚚 Vehicle bookings for %s", date)}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, bk := range bookings {
		lines = append(lines, fmt.Sprintf("• %s — %s, %s boxes / %s (%s)",
			bk.VehicleReg, bk.SupplierName,
			format.Boxes(bk.ExpectedBoxes, b.locale), format.Tons(bk.ExpectedTons, b.locale), bk.Status))

		switch bk.Status {
		case "scheduled":
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📥 Receive "+bk.VehicleReg, fmt.Sprintf("bk:recv:%d", bk.ID)),
			))
		case "receiving":
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Complete "+bk.VehicleReg, fmt.Sprintf("bk:done:%d", bk.ID)),
			))
		}
	}
	if len(bookings) == 0 {
		lines = append(lines, "No vehicles booked.")
	}
	if b.access.CanDo(ctx, userID, api.ActionManageBookings) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Book a vehicle", "bk:new:"+date),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	_ = b.states.Set(ctx, chatID, dialog.StateBookList, dialog.Payload{"date": date})
	text := strings.Join(lines, "\n")
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
	} else {
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = kb
		b.send(m)
	}
}

func (b *Bot) handleBookingCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	switch {
	case strings.HasPrefix(rest, "new:"):
		if !b.access.CanDo(ctx, userID, api.ActionManageBookings) {
			b.send(tgbotapi.NewMessage(chatID, "You are not allowed to book vehicles."))
			return
		}
		date := strings.TrimPrefix(rest, "new:")
		b.clearPrevStep(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, "Vehicle registration:")
		m.ReplyMarkup = navKeyboard(false, true)
		sent, _ := b.api.Send(m)
		b.saveLastStep(ctx, chatID, dialog.StateBookNewVehicle, dialog.Payload{"date": date}, sent.MessageID)

	case strings.HasPrefix(rest, "recv:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "recv:"), 10, 64)
		if err != nil {
			return
		}
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["booking_id"] = id
		m := tgbotapi.NewMessage(chatID, "Actual boxes delivered:")
		m.ReplyMarkup = navKeyboard(true, true)
		sent, _ := b.api.Send(m)
		b.saveLastStep(ctx, chatID, dialog.StateBookRecvBoxes, st.Payload, sent.MessageID)

	case strings.HasPrefix(rest, "done:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "done:"), 10, 64)
		if err != nil {
			return
		}
		b.completeOffloading(ctx, chatID, userID, msgID, id)
	}
}

func (b *Bot) handleBookingCreateInput(ctx context.Context, chatID, userID int64, st *dialog.Item, text string) {
	switch st.State {
	case dialog.StateBookNewVehicle:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "Enter the vehicle registration."))
			return
		}
		st.Payload["vehicle_reg"] = text
		b.askNumber(ctx, chatID, "Expected boxes:", dialog.StateBookNewBoxes, st.Payload)

	case dialog.StateBookNewBoxes:
		v, ok := parseQty(text)
		if !ok || v <= 0 {
			b.send(tgbotapi.NewMessage(chatID, "Enter a positive number of boxes."))
			return
		}
		st.Payload["expected_boxes"] = v
		b.askNumber(ctx, chatID, "Expected tons:", dialog.StateBookNewTons, st.Payload)

	case dialog.StateBookNewTons:
		v, ok := parseQty(text)
		if !ok || v <= 0 {
			b.send(tgbotapi.NewMessage(chatID, "Enter a positive tonnage."))
			return
		}
		date, _ := dialog.GetString(st.Payload, "date")
		reg, _ := dialog.GetString(st.Payload, "vehicle_reg")
		boxes, _ := dialog.GetFloat64(st.Payload, "expected_boxes")

		if !b.pending.begin(chatID) {
			b.send(tgbotapi.NewMessage(chatID, "Still submitting the previous booking…"))
			return
		}
		defer b.pending.end(chatID)

		_, err := b.backend.CreateBooking(ctx, api.BookingRequest{
			Date: date, VehicleReg: reg, ExpectedBoxes: boxes, ExpectedTons: v,
		})
		if err != nil {
			metrics.Mutations.WithLabelValues("booking_create", "error").Inc()
			b.notifyError(chatID, "Could not book the vehicle", err)
			return
		}
		metrics.Mutations.WithLabelValues("booking_create", "ok").Inc()
		b.send(tgbotapi.NewMessage(chatID, "Vehicle booked."))
		_ = b.states.Reset(ctx, chatID)
		b.showBookings(ctx, chatID, userID, date, nil)
	}
}

func (b *Bot) handleBookingReceiveInput(ctx context.Context, chatID, userID int64, st *dialog.Item, text string) {
	v, ok := parseQty(text)
	if !ok || v < 0 {
		b.send(tgbotapi.NewMessage(chatID, "Enter a non-negative number."))
		return
	}

	switch st.State {
	case dialog.StateBookRecvBoxes:
		st.Payload["actual_boxes"] = v
		b.askNumber(ctx, chatID, "Actual tons delivered:", dialog.StateBookRecvTons, st.Payload)

	case dialog.StateBookRecvTons:
		id, _ := dialog.GetInt64(st.Payload, "booking_id")
		boxes, _ := dialog.GetFloat64(st.Payload, "actual_boxes")
		date, _ := dialog.GetString(st.Payload, "date")

		if !b.pending.begin(chatID) {
			b.send(tgbotapi.NewMessage(chatID, "Still recording the previous delivery…"))
			return
		}
		defer b.pending.end(chatID)

		_, err := b.backend.ReceiveVehicle(ctx, id, api.ReceiveRequest{ActualBoxes: boxes, ActualTons: v})
		if err != nil {
			metrics.Mutations.WithLabelValues("booking_receive", "error").Inc()
			b.notifyError(chatID, "Could not record the delivery", err)
			return
		}
		metrics.Mutations.WithLabelValues("booking_receive", "ok").Inc()
		b.send(tgbotapi.NewMessage(chatID, "Delivery recorded."))
		_ = b.states.Reset(ctx, chatID)
		b.showBookings(ctx, chatID, userID, date, nil)
	}
}

func (b *Bot) completeOffloading(ctx context.Context, chatID, userID int64, msgID int, bookingID int64) {
	if !b.pending.begin(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Still finishing the previous action…"))
		return
	}
	defer b.pending.end(chatID)

	bk, err := b.backend.CompleteOffloading(ctx, bookingID)
	if err != nil {
		metrics.Mutations.WithLabelValues("booking_complete", "error").Inc()
		b.notifyError(chatID, "Could not complete offloading", err)
		return
	}
	metrics.Mutations.WithLabelValues("booking_complete", "ok").Inc()
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Offloading of %s completed.", bk.VehicleReg)))
	b.showBookings(ctx, chatID, userID, bk.Date, &msgID)
}

// askNumber sends a numeric prompt and advances the dialog.
func (b *Bot) askNumber(ctx context.Context, chatID int64, prompt string, next dialog.State, payload dialog.Payload) {
	m := tgbotapi.NewMessage(chatID, prompt)
	m.ReplyMarkup = navKeyboard(true, true)
	sent, _ := b.api.Send(m)
	b.saveLastStep(ctx, chatID, next, payload, sent.MessageID)
}
