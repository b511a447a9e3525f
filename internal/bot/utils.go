package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/dialog"
	"github.com/havkom/fishops-bot/internal/format"
)

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

// clearPrevStep removes inline buttons from the previous step's message, if
// one was recorded.
func (b *Bot) clearPrevStep(ctx context.Context, chatID int64) {
	st, _ := b.states.Get(ctx, chatID)
	if st == nil || st.Payload == nil {
		return
	}
	if mid, ok := dialog.GetInt64(st.Payload, "last_mid"); ok {
		rm := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
		b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, int(mid), rm))
	}
}

// saveLastStep stores the id of the current bot message so back/cancel can
// clean it up later.
func (b *Bot) saveLastStep(ctx context.Context, chatID int64, nextState dialog.State, payload dialog.Payload, newMID int) {
	if payload == nil {
		payload = dialog.Payload{}
	}
	payload["last_mid"] = int64(newMID)
	_ = b.states.Set(ctx, chatID, nextState, payload)
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

func (b *Bot) editTextWithNav(chatID int64, messageID int, text string) {
	kb := navKeyboard(true, true)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	b.send(edit)
}

// notifyError converts a mutation failure into the right user signal: silence
// for cancellations, the backend's own message for business rejections, a
// generic line for everything else. Form state is never discarded here.
func (b *Bot) notifyError(chatID int64, prefix string, err error) {
	if api.IsCanceled(err) {
		return
	}
	if apiErr, ok := api.AsAPIError(err); ok {
		b.send(tgbotapi.NewMessage(chatID, prefix+": "+apiErr.Message))
		return
	}
	b.log.Error(prefix, "err", err)
	b.send(tgbotapi.NewMessage(chatID, prefix+": something went wrong, please try again."))
}

// parseQty accepts "12", "12.5" and "12,5".
func parseQty(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// stockAmount renders a batch quantity with a unit that matches the number.
// Kilogram stock goes through the kg/MT conversion, which carries its own
// unit; anything else keeps the backend's unit next to the raw figure.
func (b *Bot) stockAmount(q float64, unit string) string {
	if unit == "kg" {
		return format.Quantity(q, true, b.locale)
	}
	return format.Number(q, b.locale) + " " + unit
}

// statusBadge maps the capacity band to the screen glyph.
func statusBadge(status string) string {
	switch status {
	case "danger":
		return "🔴"
	case "warning":
		return "🟡"
	default:
		return "🟢"
	}
}
