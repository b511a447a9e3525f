package bot

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/dialog"
	"github.com/havkom/fishops-bot/internal/domain/capacity"
	"github.com/havkom/fishops-bot/internal/format"
	"github.com/havkom/fishops-bot/internal/infra/metrics"
)

// showCapacity renders the daily capacity screen for one date. The snapshot is
// always refetched; nothing about it is cached between renders.
func (b *Bot) showCapacity(ctx context.Context, chatID, userID int64, date string, editMsgID *int) {
	snap, err := b.backend.GetDailyCapacity(ctx, date)
	if err != nil {
		b.notifyError(chatID, "Could not load capacity", err)
		return
	}

	text := b.renderCapacity(snap)
	canManage := b.access.CanDo(ctx, userID, api.ActionManageCapacity)
	kb := capacityKeyboard(date, canManage)

	_ = b.states.Set(ctx, chatID, dialog.StateCapView, dialog.Payload{"date": date})
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
	} else {
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = kb
		b.send(m)
	}
}

func (b *Bot) renderCapacity(snap capacity.DailyCapacity) string {
	ev := capacity.Evaluate(snap)

	lines := []string{
		fmt.Sprintf("%s Capacity for %s", statusBadge(string(ev.Status)), snap.Date),
		fmt.Sprintf("Limit: %s boxes / %s", format.Boxes(snap.DailyLimitBoxes, b.locale), format.Tons(snap.DailyLimitTons, b.locale)),
		fmt.Sprintf("Booked: %s boxes / %s", format.Boxes(snap.BookedBoxes, b.locale), format.Tons(snap.BookedTons, b.locale)),
		fmt.Sprintf("Received: %s boxes / %s", format.Boxes(snap.ReceivedBoxes, b.locale), format.Tons(snap.ReceivedTons, b.locale)),
		fmt.Sprintf("Utilization: %s", format.Percent(ev.UsagePercent, b.locale)),
	}

	// Negative remaining is the overflow state: show the magnitude with an
	// explicit "over" marker, never a bare minus.
	if ev.RemainingTons < 0 || ev.RemainingBoxes < 0 {
		lines = append(lines, fmt.Sprintf("⚠️ Over capacity by %s boxes / %s",
			format.Boxes(math.Abs(ev.RemainingBoxes), b.locale),
			format.Tons(math.Abs(ev.RemainingTons), b.locale)))
	} else {
		lines = append(lines, fmt.Sprintf("Remaining: %s boxes / %s",
			format.Boxes(ev.RemainingBoxes, b.locale),
			format.Tons(ev.RemainingTons, b.locale)))
	}
	if snap.AllowOverride {
		lines = append(lines, "Override enabled: bookings past the limit are accepted.")
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) handleCapacityCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	switch {
	case strings.HasPrefix(rest, "day:"):
		parts := strings.SplitN(strings.TrimPrefix(rest, "day:"), ":", 2)
		if len(parts) != 2 {
			return
		}
		day, err := time.Parse(dateLayout, parts[1])
		if err != nil {
			return
		}
		switch parts[0] {
		case "prev":
			day = day.AddDate(0, 0, -1)
		case "next":
			day = day.AddDate(0, 0, 1)
		}
		b.showCapacity(ctx, chatID, userID, day.Format(dateLayout), &msgID)

	case strings.HasPrefix(rest, "limit:"):
		if !b.access.CanDo(ctx, userID, api.ActionManageCapacity) {
			b.send(tgbotapi.NewMessage(chatID, "You are not allowed to change capacity limits."))
			return
		}
		date := strings.TrimPrefix(rest, "limit:")
		b.clearPrevStep(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, fmt.Sprintf("New box limit for %s:", date))
		m.ReplyMarkup = navKeyboard(false, true)
		sent, _ := b.api.Send(m)
		b.saveLastStep(ctx, chatID, dialog.StateCapLimitBoxes, dialog.Payload{"date": date}, sent.MessageID)

	case rest == "override":
		st, _ := b.states.Get(ctx, chatID)
		date, _ := dialog.GetString(st.Payload, "date")
		boxLimit, _ := dialog.GetFloat64(st.Payload, "box_limit")
		tonLimit, _ := dialog.GetFloat64(st.Payload, "ton_limit")
		b.submitDailyLimit(ctx, chatID, userID, msgID, capacity.DailyLimitRequest{
			Date: date, BoxLimit: boxLimit, TonLimit: tonLimit, AllowOverride: true,
		})
	}
}

func (b *Bot) handleCapacityLimitInput(ctx context.Context, chatID, userID int64, st *dialog.Item, text string) {
	v, ok := parseQty(text)
	if !ok || v < 0 {
		b.send(tgbotapi.NewMessage(chatID, "Enter a non-negative number."))
		return
	}

	switch st.State {
	case dialog.StateCapLimitBoxes:
		st.Payload["box_limit"] = v
		m := tgbotapi.NewMessage(chatID, "Ton limit:")
		m.ReplyMarkup = navKeyboard(false, true)
		sent, _ := b.api.Send(m)
		b.saveLastStep(ctx, chatID, dialog.StateCapLimitTons, st.Payload, sent.MessageID)

	case dialog.StateCapLimitTons:
		st.Payload["ton_limit"] = v
		date, _ := dialog.GetString(st.Payload, "date")
		boxLimit, _ := dialog.GetFloat64(st.Payload, "box_limit")

		// If the day is already booked past the new ceiling the backend will
		// refuse unless override is allowed; ask up front instead of bouncing.
		snap, err := b.backend.GetDailyCapacity(ctx, date)
		if err == nil && snap.TotalBookedTons > v {
			_ = b.states.Set(ctx, chatID, dialog.StateCapConfirmOverride, st.Payload)
			m := tgbotapi.NewMessage(chatID, fmt.Sprintf(
				"Booked tonnage (%s) already exceeds the new limit (%s). Allow override for this day?",
				format.Tons(snap.TotalBookedTons, b.locale), format.Tons(v, b.locale)))
			m.ReplyMarkup = confirmKeyboard("cap:override")
			b.send(m)
			return
		}

		b.submitDailyLimit(ctx, chatID, userID, 0, capacity.DailyLimitRequest{
			Date: date, BoxLimit: boxLimit, TonLimit: v,
		})
	}
}

func (b *Bot) submitDailyLimit(ctx context.Context, chatID, userID int64, msgID int, req capacity.DailyLimitRequest) {
	if !b.pending.begin(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Still applying the previous change…"))
		return
	}
	defer b.pending.end(chatID)

	snap, err := b.backend.SetDailyLimit(ctx, req)
	if err != nil {
		metrics.Mutations.WithLabelValues("daily_limit", "error").Inc()
		b.notifyError(chatID, "Could not update the limit", err)
		return
	}
	metrics.Mutations.WithLabelValues("daily_limit", "ok").Inc()

	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, "Daily limit updated."))
	if msgID != 0 {
		b.showCapacity(ctx, chatID, userID, req.Date, &msgID)
	} else {
		// The POST already returned the fresh snapshot; render it directly.
		text := b.renderCapacity(snap)
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = capacityKeyboard(req.Date, true)
		_ = b.states.Set(ctx, chatID, dialog.StateCapView, dialog.Payload{"date": req.Date})
		b.send(m)
	}
}
