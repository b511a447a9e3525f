package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/havkom/fishops-bot/internal/dialog"
)

const dateLayout = "2006-01-02"

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message.IsCommand() {
		b.handleCommand(ctx, upd.Message)
		return
	}
	b.handleStateMessage(ctx, upd.Message)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		_ = b.states.Reset(ctx, chatID)
		m := tgbotapi.NewMessage(chatID,
			"Operations console ready. Pick a screen from the menu below.")
		m.ReplyMarkup = mainReplyKeyboard()
		b.send(m)

	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Commands:\n/start — main menu\n/capacity — today's vehicle capacity\n/batches — batch inventory\n/stats — range reports\n/help — this message"))

	case "capacity":
		b.showCapacity(ctx, chatID, msg.From.ID, time.Now().Format(dateLayout), nil)

	case "batches":
		b.showBatchPickWarehouse(ctx, chatID, nil)

	case "stats":
		b.showStatsMenu(ctx, chatID)

	default:
		b.send(tgbotapi.NewMessage(chatID, "Unknown command. Try /help"))
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	// Bottom panel shortcuts work from any state.
	switch text {
	case "📊 Capacity":
		b.showCapacity(ctx, chatID, userID, time.Now().Format(dateLayout), nil)
		return
	case "🚚 Bookings":
		b.showBookings(ctx, chatID, userID, time.Now().Format(dateLayout), nil)
		return
	case "📦 Batches":
		b.showBatchPickWarehouse(ctx, chatID, nil)
		return
	case "🐟 New purchase":
		b.startPurchaseWizard(ctx, chatID, userID)
		return
	case "🏭 Production":
		b.showProductionRuns(ctx, chatID, userID, time.Now().Format(dateLayout))
		return
	case "📈 Reports":
		b.showStatsMenu(ctx, chatID)
		return
	}

	st, _ := b.states.Get(ctx, chatID)
	switch st.State {
	// capacity limit entry
	case dialog.StateCapLimitBoxes, dialog.StateCapLimitTons:
		b.handleCapacityLimitInput(ctx, chatID, userID, st, text)

	// bookings
	case dialog.StateBookNewVehicle, dialog.StateBookNewBoxes, dialog.StateBookNewTons:
		b.handleBookingCreateInput(ctx, chatID, userID, st, text)
	case dialog.StateBookRecvBoxes, dialog.StateBookRecvTons:
		b.handleBookingReceiveInput(ctx, chatID, userID, st, text)

	// batch browser / transfer / adjustment
	case dialog.StateBatchSearch:
		b.handleBatchSearchInput(ctx, chatID, st, text)
	case dialog.StateTransferQty, dialog.StateTransferNotes:
		b.handleTransferInput(ctx, chatID, st, text)
	case dialog.StateAdjustQty, dialog.StateAdjustReason:
		b.handleAdjustmentInput(ctx, chatID, st, text)

	// purchase wizard
	case dialog.StatePurSupplierPick, dialog.StatePurContactName, dialog.StatePurContactPhone,
		dialog.StatePurVehicle, dialog.StatePurDeliveryDate,
		dialog.StatePurItemProduct, dialog.StatePurItemGrade, dialog.StatePurItemBoxes,
		dialog.StatePurItemWeight, dialog.StatePurItemPrice, dialog.StatePurPaymentAmount:
		b.handlePurchaseInput(ctx, chatID, userID, st, text)

	// production outputs
	case dialog.StateOutRowProduct, dialog.StateOutRowGrade, dialog.StateOutRowBoxes, dialog.StateOutRowWeight:
		b.handleOutputRowInput(ctx, chatID, st, text)

	// stats custom range
	case dialog.StateStatsFrom, dialog.StateStatsTo:
		b.handleStatsDateInput(ctx, chatID, st, text)

	default:
		b.send(tgbotapi.NewMessage(chatID, "Pick a screen from the menu, or /help."))
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	msgID := cb.Message.MessageID
	data := cb.Data

	_ = b.answerCallback(cb, "", false)

	switch {
	case data == "nav:cancel":
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Cancelled. Entered data was discarded.")

	case data == "nav:back":
		b.handleBack(ctx, chatID, userID, msgID)

	case strings.HasPrefix(data, "cap:"):
		b.handleCapacityCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "cap:"))

	case strings.HasPrefix(data, "bk:"):
		b.handleBookingCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "bk:"))

	case strings.HasPrefix(data, "wh:"):
		b.handleWarehouseCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "wh:"))

	case strings.HasPrefix(data, "batch:"):
		b.handleBatchCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "batch:"))

	case strings.HasPrefix(data, "tr:"):
		b.handleTransferCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "tr:"))

	case strings.HasPrefix(data, "adj:"):
		b.handleAdjustmentCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "adj:"))

	case strings.HasPrefix(data, "pur:"):
		b.handlePurchaseCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "pur:"))

	case strings.HasPrefix(data, "out:"):
		b.handleOutputCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "out:"))

	case strings.HasPrefix(data, "st:"):
		b.handleStatsCallback(ctx, chatID, userID, msgID, strings.TrimPrefix(data, "st:"))
	}
}

// handleBack returns to the flow's entry screen. Wizard payloads are kept only
// where the flow itself re-reads them; otherwise back behaves like cancel for
// that screen's inputs.
func (b *Bot) handleBack(ctx context.Context, chatID, userID int64, msgID int) {
	st, _ := b.states.Get(ctx, chatID)
	switch {
	case strings.HasPrefix(string(st.State), "cap_"):
		date, _ := dialog.GetString(st.Payload, "date")
		if date == "" {
			date = time.Now().Format(dateLayout)
		}
		_ = b.states.Reset(ctx, chatID)
		b.showCapacity(ctx, chatID, userID, date, &msgID)
	case strings.HasPrefix(string(st.State), "book_"):
		date, _ := dialog.GetString(st.Payload, "date")
		if date == "" {
			date = time.Now().Format(dateLayout)
		}
		_ = b.states.Reset(ctx, chatID)
		b.showBookings(ctx, chatID, userID, date, &msgID)
	case strings.HasPrefix(string(st.State), "batch_"),
		strings.HasPrefix(string(st.State), "tr_"),
		strings.HasPrefix(string(st.State), "adj_"):
		_ = b.states.Reset(ctx, chatID)
		b.showBatchPickWarehouse(ctx, chatID, &msgID)
	case strings.HasPrefix(string(st.State), "pur_"):
		b.purchaseStepBack(ctx, chatID, userID, st, msgID)
	case strings.HasPrefix(string(st.State), "out_"):
		_ = b.states.Reset(ctx, chatID)
		b.showProductionRuns(ctx, chatID, userID, time.Now().Format(dateLayout))
	case strings.HasPrefix(string(st.State), "stats_"):
		_ = b.states.Reset(ctx, chatID)
		b.showStatsMenu(ctx, chatID)
	default:
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Back to the main menu.")
	}
}
