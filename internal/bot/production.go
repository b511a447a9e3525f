package bot

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/dialog"
	"github.com/havkom/fishops-bot/internal/domain/production"
	"github.com/havkom/fishops-bot/internal/format"
	"github.com/havkom/fishops-bot/internal/infra/metrics"
)

func (b *Bot) showProductionRuns(ctx context.Context, chatID, userID int64, date string) {
	runs, err := b.backend.ListRuns(ctx, date)
	if err != nil {
		b.notifyError(chatID, "Could not load production runs", err)
		return
	}
	shifts, err := b.backend.ListShifts(ctx, date)
	if err != nil {
		b.notifyError(chatID, "Could not load shifts", err)
		return
	}
	shiftName := make(map[int64]string, len(shifts))
	for _, s := range shifts {
		shiftName[s.ID] = s.Name
	}

	canRecord := b.access.CanDo(ctx, userID, api.ActionRecordOutputs)

	lines := []string{fmt.Sprintf("🏭 Production runs for %s", date)}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, r := range runs {
		lines = append(lines, fmt.Sprintf("• %s — %s (%s)", r.ProductType, shiftName[r.ShiftID], r.Status))
		if canRecord && r.Status == "running" {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📝 Outputs: "+r.ProductType, fmt.Sprintf("out:run:%d", r.ID)),
			))
		}
	}
	if len(runs) == 0 {
		lines = append(lines, "No runs today.")
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])

	_ = b.states.Set(ctx, chatID, dialog.StateOutPickRun, dialog.Payload{"date": date})
	m := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(m)
}

// entryOf pulls the bulk-entry accumulator out of the dialog payload.
func entryOf(st *dialog.Item) (*production.Entry, bool) {
	if st == nil || st.Payload == nil {
		return nil, false
	}
	e, ok := st.Payload["entry"].(*production.Entry)
	return e, ok
}

func (b *Bot) handleOutputCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	switch {
	case strings.HasPrefix(rest, "run:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "run:"), 10, 64)
		if err != nil {
			return
		}
		st, _ := b.states.Get(ctx, chatID)
		st.Payload["entry"] = &production.Entry{RunID: id}
		b.editTextWithNav(chatID, msgID, "First output row. Product type:")
		_ = b.states.Set(ctx, chatID, dialog.StateOutRowProduct, st.Payload)

	case rest == "row:add":
		st, _ := b.states.Get(ctx, chatID)
		b.editTextWithNav(chatID, msgID, "Next row. Product type:")
		_ = b.states.Set(ctx, chatID, dialog.StateOutRowProduct, st.Payload)

	case rest == "row:drop":
		st, _ := b.states.Get(ctx, chatID)
		if e, ok := entryOf(st); ok {
			e.RemoveLast()
		}
		b.renderOutputReview(ctx, chatID, st, &msgID)

	case rest == "submit":
		b.submitOutputs(ctx, chatID, userID)
	}
}

func (b *Bot) handleOutputRowInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	switch st.State {
	case dialog.StateOutRowProduct:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "Enter the product type."))
			return
		}
		st.Payload["row_product"] = text
		b.askText(ctx, chatID, "Grade (send \"-\" to skip):", dialog.StateOutRowGrade, st.Payload)

	case dialog.StateOutRowGrade:
		if text != "-" {
			st.Payload["row_grade"] = text
		}
		b.askText(ctx, chatID, "Boxes:", dialog.StateOutRowBoxes, st.Payload)

	case dialog.StateOutRowBoxes:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n <= 0 {
			b.send(tgbotapi.NewMessage(chatID, "Enter a positive whole number of boxes."))
			return
		}
		st.Payload["row_boxes"] = int64(n)
		b.askText(ctx, chatID, "Weight, kg:", dialog.StateOutRowWeight, st.Payload)

	case dialog.StateOutRowWeight:
		v, ok := parseQty(text)
		if !ok || v <= 0 {
			b.send(tgbotapi.NewMessage(chatID, "Enter a positive weight."))
			return
		}
		e, ok := entryOf(st)
		if !ok {
			_ = b.states.Reset(ctx, chatID)
			b.send(tgbotapi.NewMessage(chatID, "The entry was reset. Start again from 🏭 Production."))
			return
		}
		product, _ := dialog.GetString(st.Payload, "row_product")
		grade, _ := dialog.GetString(st.Payload, "row_grade")
		boxes, _ := dialog.GetInt64(st.Payload, "row_boxes")
		e.Add(production.OutputRow{
			ProductType: product,
			Grade:       grade,
			Boxes:       int(boxes),
			WeightKg:    v,
		})
		delete(st.Payload, "row_product")
		delete(st.Payload, "row_grade")
		delete(st.Payload, "row_boxes")
		b.renderOutputReview(ctx, chatID, st, nil)
	}
}

func (b *Bot) renderOutputReview(ctx context.Context, chatID int64, st *dialog.Item, editMsgID *int) {
	e, ok := entryOf(st)
	if !ok {
		_ = b.states.Reset(ctx, chatID)
		return
	}

	lines := []string{"📝 Output rows:"}
	var totalKg float64
	for i, r := range e.Rows {
		lines = append(lines, fmt.Sprintf("%d. %s %s — %d boxes, %s",
			i+1, r.ProductType, r.Grade, r.Boxes, format.Quantity(r.WeightKg, true, b.locale)))
		totalKg += r.WeightKg
	}
	if len(e.Rows) == 0 {
		lines = append(lines, "None yet.")
	} else {
		lines = append(lines, "Total: "+format.Quantity(totalKg, true, b.locale))
	}

	// Per-row problems are listed against their row numbers so a long entry
	// stays fixable without retyping everything.
	if errs := e.Validate(); len(errs) > 0 {
		idx := make([]int, 0, len(errs))
		for i := range errs {
			idx = append(idx, i)
		}
		sort.Ints(idx)
		lines = append(lines, "", "Problems:")
		for _, i := range idx {
			lines = append(lines, fmt.Sprintf("• row %d: %s", i+1, errs[i]))
		}
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("➕ Add row", "out:row:add"),
		},
	}
	if len(e.Rows) > 0 {
		rows[0] = append(rows[0], tgbotapi.NewInlineKeyboardButtonData("🗑 Drop last", "out:row:drop"))
		if len(e.Validate()) == 0 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Submit", "out:submit"),
			))
		}
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	_ = b.states.Set(ctx, chatID, dialog.StateOutReview, st.Payload)
	text := strings.Join(lines, "\n")
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
	} else {
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = kb
		b.send(m)
	}
}

func (b *Bot) submitOutputs(ctx context.Context, chatID, userID int64) {
	st, _ := b.states.Get(ctx, chatID)
	e, ok := entryOf(st)
	if !ok {
		return
	}

	req, err := e.BuildRequest()
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Cannot submit yet: "+err.Error()))
		return
	}

	if !b.pending.begin(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Still submitting the previous outputs…"))
		return
	}
	defer b.pending.end(chatID)

	if err := b.backend.RecordOutputs(ctx, req); err != nil {
		metrics.Mutations.WithLabelValues("production_outputs", "error").Inc()
		b.notifyError(chatID, "Could not record the outputs", err)
		return
	}
	metrics.Mutations.WithLabelValues("production_outputs", "ok").Inc()

	date, _ := dialog.GetString(st.Payload, "date")
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Recorded %d output rows.", len(req.Rows))))
	if date != "" {
		b.showProductionRuns(ctx, chatID, userID, date)
	}
}
