package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/dialog"
	"github.com/havkom/fishops-bot/internal/domain/batches"
	"github.com/havkom/fishops-bot/internal/infra/metrics"
)

func (b *Bot) showBatchPickWarehouse(ctx context.Context, chatID int64, editMsgID *int) {
	whs, err := b.backend.ListWarehouses(ctx)
	if err != nil {
		b.notifyError(chatID, "Could not load warehouses", err)
		return
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, wh := range whs {
		if !wh.Active {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(wh.Name, fmt.Sprintf("wh:pick:%d", wh.ID)),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	_ = b.states.Set(ctx, chatID, dialog.StateBatchPickWh, dialog.Payload{})
	text := "📦 Pick a warehouse:"
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
	} else {
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = kb
		b.send(m)
	}
}

func (b *Bot) handleWarehouseCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	switch {
	case strings.HasPrefix(rest, "pick:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "pick:"), 10, 64)
		if err != nil {
			return
		}
		_ = b.states.Set(ctx, chatID, dialog.StateBatchSearch, dialog.Payload{"warehouse_id": id})
		b.editTextWithNav(chatID, msgID, "Type a batch code or product to search, or send \"*\" to list everything.")

	case strings.HasPrefix(rest, "dest:"):
		// Destination choice inside the transfer wizard.
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "dest:"), 10, 64)
		if err != nil {
			return
		}
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["to_warehouse_id"] = id
		b.clearPrevStep(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, "Notes (optional, send \"-\" to skip):")
		m.ReplyMarkup = navKeyboard(true, true)
		sent, _ := b.api.Send(m)
		b.saveLastStep(ctx, chatID, dialog.StateTransferNotes, st.Payload, sent.MessageID)
	}
}

// handleBatchSearchInput runs the lookup through the stale-response guard: a
// user typing faster than the backend answers only ever sees the list for the
// last term they sent.
func (b *Bot) handleBatchSearchInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	whID, ok := dialog.GetInt64(st.Payload, "warehouse_id")
	if !ok {
		b.showBatchPickWarehouse(ctx, chatID, nil)
		return
	}
	search := text
	if search == "*" {
		search = ""
	}

	list, stale, err := b.latestBatches(ctx, whID, search)
	if stale {
		return
	}
	if err != nil {
		b.notifyError(chatID, "Could not search batches", err)
		return
	}

	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No batches matched. Try another term."))
		return
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, bs := range list {
		label := fmt.Sprintf("%s — %s, %s", bs.BatchCode, bs.ProductType,
			b.stockAmount(bs.Quantity, bs.Unit))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("batch:open:%d", bs.ID)),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StateBatchList, dialog.Payload{"warehouse_id": whID, "search": search})
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf("Found %d batches:", len(list)))
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(m)
}

// latestBatches runs the search as the newest lookup. stale reports that a
// newer lookup superseded this one while it was in flight; stale results are
// dropped, not rendered.
func (b *Bot) latestBatches(ctx context.Context, whID int64, search string) (list []batches.BatchStock, stale bool, err error) {
	ticket := b.search.Next()
	list, err = b.backend.ListBatches(ctx, whID, search)
	if !b.search.Current(ticket) {
		return nil, true, nil
	}
	return list, false, err
}

func (b *Bot) handleBatchCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	if !strings.HasPrefix(rest, "open:") {
		return
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(rest, "open:"), 10, 64)
	if err != nil {
		return
	}

	st, _ := b.states.Get(ctx, chatID)
	whID, _ := dialog.GetInt64(st.Payload, "warehouse_id")
	search, _ := dialog.GetString(st.Payload, "search")

	bs, ok := b.fetchBatch(ctx, chatID, whID, search, id)
	if !ok {
		return
	}

	text := strings.Join([]string{
		fmt.Sprintf("📦 %s", bs.BatchCode),
		fmt.Sprintf("Product: %s", bs.ProductType),
		fmt.Sprintf("On hand: %s", b.stockAmount(bs.Quantity, bs.Unit)),
		fmt.Sprintf("Status: %s", bs.Status),
	}, "\n")

	canTransfer := b.access.CanDo(ctx, userID, api.ActionTransferBatch)
	canAdjust := b.access.CanDo(ctx, userID, api.ActionAdjustBatch)
	kb := batchCardKeyboard(bs.ID, canTransfer, canAdjust)

	_ = b.states.Set(ctx, chatID, dialog.StateBatchItem, dialog.Payload{
		"warehouse_id": whID, "search": search, "batch_id": bs.ID, "unit": bs.Unit,
	})
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, kb))
}

// fetchBatch re-reads the batch's current snapshot. Stock may have moved since
// the list was rendered, so wizards always work from a fresh copy.
func (b *Bot) fetchBatch(ctx context.Context, chatID, whID int64, search string, batchID int64) (*batches.BatchStock, bool) {
	list, err := b.backend.ListBatches(ctx, whID, search)
	if err != nil {
		b.notifyError(chatID, "Could not load the batch", err)
		return nil, false
	}
	for i := range list {
		if list[i].ID == batchID {
			return &list[i], true
		}
	}
	b.send(tgbotapi.NewMessage(chatID, "That batch is gone from this warehouse. Search again."))
	return nil, false
}

/*** TRANSFER WIZARD ***/

func (b *Bot) handleTransferCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	switch {
	case strings.HasPrefix(rest, "start:"):
		if !b.access.CanDo(ctx, userID, api.ActionTransferBatch) {
			b.send(tgbotapi.NewMessage(chatID, "You are not allowed to transfer batches."))
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "start:"), 10, 64)
		if err != nil {
			return
		}
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["batch_id"] = id
		b.editTextWithNav(chatID, msgID, "Quantity to transfer:")
		_ = b.states.Set(ctx, chatID, dialog.StateTransferQty, st.Payload)

	case rest == "submit":
		b.submitTransfer(ctx, chatID, userID)
	}
}

func (b *Bot) handleTransferInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	switch st.State {
	case dialog.StateTransferQty:
		v, ok := parseQty(text)
		if !ok {
			b.send(tgbotapi.NewMessage(chatID, "Enter a number."))
			return
		}
		st.Payload["quantity"] = v
		b.showTransferDestinations(ctx, chatID, st)

	case dialog.StateTransferNotes:
		if text != "-" {
			st.Payload["notes"] = text
		}
		b.showTransferReview(ctx, chatID, st)
	}
}

func (b *Bot) showTransferDestinations(ctx context.Context, chatID int64, st *dialog.Item) {
	whs, err := b.backend.ListWarehouses(ctx)
	if err != nil {
		b.notifyError(chatID, "Could not load warehouses", err)
		return
	}
	fromID, _ := dialog.GetInt64(st.Payload, "warehouse_id")

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, wh := range whs {
		if !wh.Active || wh.ID == fromID {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(wh.Name, fmt.Sprintf("wh:dest:%d", wh.ID)),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])

	m := tgbotapi.NewMessage(chatID, "Destination warehouse:")
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	sent, _ := b.api.Send(m)
	b.saveLastStep(ctx, chatID, dialog.StateTransferDest, st.Payload, sent.MessageID)
}

// showTransferReview validates the gathered input and either lists every
// problem at once or shows the confirm card.
func (b *Bot) showTransferReview(ctx context.Context, chatID int64, st *dialog.Item) {
	whID, _ := dialog.GetInt64(st.Payload, "warehouse_id")
	search, _ := dialog.GetString(st.Payload, "search")
	batchID, _ := dialog.GetInt64(st.Payload, "batch_id")
	toID, _ := dialog.GetInt64(st.Payload, "to_warehouse_id")
	qty, _ := dialog.GetFloat64(st.Payload, "quantity")
	notes, _ := dialog.GetString(st.Payload, "notes")

	bs, ok := b.fetchBatch(ctx, chatID, whID, search, batchID)
	if !ok {
		return
	}

	errs := batches.ValidateTransfer(batches.TransferInput{
		SourceWarehouseID:      whID,
		DestinationWarehouseID: toID,
		Batch:                  bs,
		Quantity:               qty,
	})
	if len(errs) > 0 {
		b.sendFieldErrors(chatID, errs)
		return
	}

	lines := []string{
		"🔀 Transfer review",
		fmt.Sprintf("Batch: %s (%s)", bs.BatchCode, bs.ProductType),
		fmt.Sprintf("Quantity: %s", b.stockAmount(qty, bs.Unit)),
	}
	if notes != "" {
		lines = append(lines, "Notes: "+notes)
	}
	m := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	m.ReplyMarkup = confirmKeyboard("tr:submit")
	sent, _ := b.api.Send(m)
	b.saveLastStep(ctx, chatID, dialog.StateTransferCheck, st.Payload, sent.MessageID)
}

func (b *Bot) submitTransfer(ctx context.Context, chatID, userID int64) {
	st, _ := b.states.Get(ctx, chatID)
	whID, _ := dialog.GetInt64(st.Payload, "warehouse_id")
	batchID, _ := dialog.GetInt64(st.Payload, "batch_id")
	toID, _ := dialog.GetInt64(st.Payload, "to_warehouse_id")
	qty, _ := dialog.GetFloat64(st.Payload, "quantity")
	notes, _ := dialog.GetString(st.Payload, "notes")
	unit, _ := dialog.GetString(st.Payload, "unit")

	if !b.pending.begin(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Still submitting the previous transfer…"))
		return
	}
	defer b.pending.end(chatID)

	res, err := b.backend.TransferBatch(ctx, batches.TransferRequest{
		BatchID:         batchID,
		FromWarehouseID: whID,
		ToWarehouseID:   toID,
		Quantity:        qty,
		Notes:           notes,
	})
	if err != nil {
		metrics.Mutations.WithLabelValues("batch_transfer", "error").Inc()
		b.notifyError(chatID, "Transfer rejected", err)
		return
	}
	metrics.Mutations.WithLabelValues("batch_transfer", "ok").Inc()

	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Transfer %s done: %s moved to %s.",
		res.TransferReference,
		b.stockAmount(res.QuantityTransferred, unit),
		res.NewWarehouseName)))
	b.showBatchPickWarehouse(ctx, chatID, nil)
}

/*** ADJUSTMENT WIZARD ***/

func (b *Bot) handleAdjustmentCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	switch {
	case strings.HasPrefix(rest, "start:"):
		if !b.access.CanDo(ctx, userID, api.ActionAdjustBatch) {
			b.send(tgbotapi.NewMessage(chatID, "You are not allowed to adjust stock."))
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "start:"), 10, 64)
		if err != nil {
			return
		}
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["batch_id"] = id
		kb := adjustmentTypeKeyboard()
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, "Adjustment type:", kb))
		_ = b.states.Set(ctx, chatID, dialog.StateAdjustType, st.Payload)

	case strings.HasPrefix(rest, "type:"):
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["adj_type"] = strings.TrimPrefix(rest, "type:")
		b.editTextWithNav(chatID, msgID, "Quantity:")
		_ = b.states.Set(ctx, chatID, dialog.StateAdjustQty, st.Payload)

	case rest == "submit":
		b.submitAdjustment(ctx, chatID, userID)
	}
}

func (b *Bot) handleAdjustmentInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	switch st.State {
	case dialog.StateAdjustQty:
		v, ok := parseQty(text)
		if !ok {
			b.send(tgbotapi.NewMessage(chatID, "Enter a number."))
			return
		}
		st.Payload["quantity"] = v
		m := tgbotapi.NewMessage(chatID, "Reason for the adjustment:")
		m.ReplyMarkup = navKeyboard(true, true)
		sent, _ := b.api.Send(m)
		b.saveLastStep(ctx, chatID, dialog.StateAdjustReason, st.Payload, sent.MessageID)

	case dialog.StateAdjustReason:
		st.Payload["reason"] = text
		b.showAdjustmentReview(ctx, chatID, st)
	}
}

func (b *Bot) showAdjustmentReview(ctx context.Context, chatID int64, st *dialog.Item) {
	whID, _ := dialog.GetInt64(st.Payload, "warehouse_id")
	search, _ := dialog.GetString(st.Payload, "search")
	batchID, _ := dialog.GetInt64(st.Payload, "batch_id")
	adjType, _ := dialog.GetString(st.Payload, "adj_type")
	qty, _ := dialog.GetFloat64(st.Payload, "quantity")
	reason, _ := dialog.GetString(st.Payload, "reason")

	bs, ok := b.fetchBatch(ctx, chatID, whID, search, batchID)
	if !ok {
		return
	}

	errs := batches.ValidateAdjustment(batches.AdjustmentInput{
		WarehouseID: whID,
		Batch:       bs,
		Type:        batches.AdjustmentType(adjType),
		Quantity:    qty,
		Reason:      reason,
	})
	if len(errs) > 0 {
		b.sendFieldErrors(chatID, errs)
		return
	}

	sign := "➕"
	if adjType == string(batches.AdjustmentSubtraction) {
		sign = "➖"
	}
	text := strings.Join([]string{
		"✏️ Adjustment review",
		fmt.Sprintf("Batch: %s (%s)", bs.BatchCode, bs.ProductType),
		fmt.Sprintf("%s %s", sign, b.stockAmount(qty, bs.Unit)),
		"Reason: " + reason,
	}, "\n")
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = confirmKeyboard("adj:submit")
	sent, _ := b.api.Send(m)
	b.saveLastStep(ctx, chatID, dialog.StateAdjustCheck, st.Payload, sent.MessageID)
}

func (b *Bot) submitAdjustment(ctx context.Context, chatID, userID int64) {
	st, _ := b.states.Get(ctx, chatID)
	whID, _ := dialog.GetInt64(st.Payload, "warehouse_id")
	batchID, _ := dialog.GetInt64(st.Payload, "batch_id")
	adjType, _ := dialog.GetString(st.Payload, "adj_type")
	qty, _ := dialog.GetFloat64(st.Payload, "quantity")
	reason, _ := dialog.GetString(st.Payload, "reason")
	unit, _ := dialog.GetString(st.Payload, "unit")

	if !b.pending.begin(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Still submitting the previous adjustment…"))
		return
	}
	defer b.pending.end(chatID)

	res, err := b.backend.AdjustBatch(ctx, batches.AdjustmentRequest{
		BatchID:     batchID,
		WarehouseID: whID,
		Type:        batches.AdjustmentType(adjType),
		Quantity:    qty,
		Reason:      reason,
	})
	if err != nil {
		metrics.Mutations.WithLabelValues("batch_adjustment", "error").Inc()
		b.notifyError(chatID, "Adjustment rejected", err)
		return
	}
	metrics.Mutations.WithLabelValues("batch_adjustment", "ok").Inc()

	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Adjustment applied. New stock: %s.",
		b.stockAmount(res.NewStock, unit))))
	b.showBatchPickWarehouse(ctx, chatID, nil)
}

// sendFieldErrors lists every validation problem in one message; the wizard
// state is kept so the user can fix fields via back.
func (b *Bot) sendFieldErrors(chatID int64, errs batches.FieldErrors) {
	lines := []string{"Please fix the following:"}
	for _, key := range []string{
		batches.FieldSourceWarehouse, batches.FieldDestinationWarehouse,
		batches.FieldBatch, batches.FieldAdjustmentType,
		batches.FieldQuantity, batches.FieldReason,
	} {
		if msg, ok := errs[key]; ok {
			lines = append(lines, "• "+msg)
		}
	}
	m := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	m.ReplyMarkup = navKeyboard(true, true)
	b.send(m)
}
