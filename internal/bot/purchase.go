package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/dialog"
	"github.com/havkom/fishops-bot/internal/domain/purchase"
	"github.com/havkom/fishops-bot/internal/format"
	"github.com/havkom/fishops-bot/internal/infra/metrics"
)

func (b *Bot) startPurchaseWizard(ctx context.Context, chatID, userID int64) {
	if !b.access.CanDo(ctx, userID, api.ActionRecordPurchase) {
		b.send(tgbotapi.NewMessage(chatID, "You are not allowed to record purchases."))
		return
	}
	form := purchase.NewForm()
	_ = b.states.Set(ctx, chatID, dialog.StatePurSupplierPick, dialog.Payload{"form": form})

	m := tgbotapi.NewMessage(chatID,
		"🐟 New purchase — step 1 of 4: supplier.\nType a supplier name to search, or add a one-off contact.")
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 One-off contact", "pur:manual"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
	b.send(m)
}

// formOf pulls the wizard form out of the dialog payload. A missing form means
// the flow was reset underneath us; restart cleanly.
func (b *Bot) formOf(ctx context.Context, chatID, userID int64, st *dialog.Item) (*purchase.Form, bool) {
	if st != nil && st.Payload != nil {
		if f, ok := st.Payload["form"].(*purchase.Form); ok {
			return f, true
		}
	}
	b.startPurchaseWizard(ctx, chatID, userID)
	return nil, false
}

func (b *Bot) handlePurchaseInput(ctx context.Context, chatID, userID int64, st *dialog.Item, text string) {
	form, ok := b.formOf(ctx, chatID, userID, st)
	if !ok {
		return
	}

	switch st.State {
	case dialog.StatePurSupplierPick:
		b.searchSuppliers(ctx, chatID, st, text)

	case dialog.StatePurContactName:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "Enter the contact's name."))
			return
		}
		form.ContactName = text
		b.askText(ctx, chatID, "Contact phone:", dialog.StatePurContactPhone, st.Payload)

	case dialog.StatePurContactPhone:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "Enter the contact's phone."))
			return
		}
		form.ContactPhone = text
		form.Next()
		b.renderPurchaseStep(ctx, chatID, st, nil)

	case dialog.StatePurVehicle:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "Enter the vehicle registration."))
			return
		}
		form.VehicleReg = text
		b.askText(ctx, chatID, "Delivery date (YYYY-MM-DD):", dialog.StatePurDeliveryDate, st.Payload)

	case dialog.StatePurDeliveryDate:
		if _, err := time.Parse(dateLayout, text); err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Use the YYYY-MM-DD format."))
			return
		}
		form.DeliveryDate = text
		form.Next()
		b.renderPurchaseStep(ctx, chatID, st, nil)

	case dialog.StatePurItemProduct:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "Enter the product type."))
			return
		}
		st.Payload["item_product"] = text
		b.askText(ctx, chatID, "Size grade (send \"-\" to skip):", dialog.StatePurItemGrade, st.Payload)

	case dialog.StatePurItemGrade:
		if text != "-" {
			st.Payload["item_grade"] = text
		}
		b.askText(ctx, chatID, "Boxes:", dialog.StatePurItemBoxes, st.Payload)

	case dialog.StatePurItemBoxes:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n <= 0 {
			b.send(tgbotapi.NewMessage(chatID, "Enter a positive whole number of boxes."))
			return
		}
		st.Payload["item_boxes"] = int64(n)
		b.askText(ctx, chatID, "Total weight, kg:", dialog.StatePurItemWeight, st.Payload)

	case dialog.StatePurItemWeight:
		v, ok := parseQty(text)
		if !ok || v <= 0 {
			b.send(tgbotapi.NewMessage(chatID, "Enter a positive weight."))
			return
		}
		st.Payload["item_weight"] = v
		b.askText(ctx, chatID, "Price per kg:", dialog.StatePurItemPrice, st.Payload)

	case dialog.StatePurItemPrice:
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(text), ",", "."))
		if err != nil || price.IsNegative() {
			b.send(tgbotapi.NewMessage(chatID, "Enter a non-negative price."))
			return
		}
		product, _ := dialog.GetString(st.Payload, "item_product")
		grade, _ := dialog.GetString(st.Payload, "item_grade")
		boxes, _ := dialog.GetInt64(st.Payload, "item_boxes")
		weight, _ := dialog.GetFloat64(st.Payload, "item_weight")
		form.Items = append(form.Items, purchase.Item{
			ProductType: product,
			SizeGrade:   grade,
			Boxes:       int(boxes),
			WeightKg:    weight,
			UnitPrice:   price,
		})
		delete(st.Payload, "item_product")
		delete(st.Payload, "item_grade")
		delete(st.Payload, "item_boxes")
		delete(st.Payload, "item_weight")
		b.renderPurchaseStep(ctx, chatID, st, nil)

	case dialog.StatePurPaymentAmount:
		b.recordPayment(ctx, chatID, st, text)
	}
}

func (b *Bot) searchSuppliers(ctx context.Context, chatID int64, st *dialog.Item, term string) {
	ticket := b.search.Next()
	list, err := b.backend.ListSuppliers(ctx, term)
	if !b.search.Current(ticket) {
		return
	}
	if err != nil {
		b.notifyError(chatID, "Could not search suppliers", err)
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No suppliers matched. Try again or add a one-off contact."))
		return
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, s := range list {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.Name, fmt.Sprintf("pur:sup:%d", s.ID)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("👤 One-off contact", "pur:manual")),
		navKeyboard(false, true).InlineKeyboard[0],
	)
	m := tgbotapi.NewMessage(chatID, "Pick a supplier:")
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(m)
}

func (b *Bot) handlePurchaseCallback(ctx context.Context, chatID, userID int64, msgID int, rest string) {
	st, _ := b.states.Get(ctx, chatID)

	switch {
	case strings.HasPrefix(rest, "sup:"):
		form, ok := b.formOf(ctx, chatID, userID, st)
		if !ok {
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "sup:"), 10, 64)
		if err != nil {
			return
		}
		form.SupplierID = id
		form.Next()
		b.renderPurchaseStep(ctx, chatID, st, &msgID)

	case rest == "manual":
		if _, ok := b.formOf(ctx, chatID, userID, st); !ok {
			return
		}
		b.editTextWithNav(chatID, msgID, "Contact name:")
		_ = b.states.Set(ctx, chatID, dialog.StatePurContactName, st.Payload)

	case rest == "next":
		form, ok := b.formOf(ctx, chatID, userID, st)
		if !ok {
			return
		}
		if !form.Next() {
			b.send(tgbotapi.NewMessage(chatID, "Finish this step first."))
			return
		}
		b.renderPurchaseStep(ctx, chatID, st, &msgID)

	case rest == "prev":
		form, ok := b.formOf(ctx, chatID, userID, st)
		if !ok {
			return
		}
		form.Prev()
		b.renderPurchaseStep(ctx, chatID, st, &msgID)

	case strings.HasPrefix(rest, "goto:"):
		form, ok := b.formOf(ctx, chatID, userID, st)
		if !ok {
			return
		}
		form.Jump(purchase.Step(strings.TrimPrefix(rest, "goto:")))
		b.renderPurchaseStep(ctx, chatID, st, &msgID)

	case rest == "item:add":
		if _, ok := b.formOf(ctx, chatID, userID, st); !ok {
			return
		}
		b.editTextWithNav(chatID, msgID, "Product type:")
		_ = b.states.Set(ctx, chatID, dialog.StatePurItemProduct, st.Payload)

	case rest == "item:drop":
		form, ok := b.formOf(ctx, chatID, userID, st)
		if !ok {
			return
		}
		if len(form.Items) > 0 {
			form.Items = form.Items[:len(form.Items)-1]
		}
		b.renderPurchaseStep(ctx, chatID, st, &msgID)

	case rest == "submit":
		b.submitPurchase(ctx, chatID, userID, st)

	case strings.HasPrefix(rest, "pay:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(rest, "pay:"), 10, 64)
		if err != nil {
			return
		}
		if st.Payload == nil {
			st.Payload = dialog.Payload{}
		}
		st.Payload["purchase_id"] = id
		b.editTextWithNav(chatID, msgID, "Payment amount:")
		_ = b.states.Set(ctx, chatID, dialog.StatePurPaymentAmount, st.Payload)
	}
}

// purchaseStepBack is the nav:back behavior inside the wizard: step back when
// possible, otherwise leave the flow entirely.
func (b *Bot) purchaseStepBack(ctx context.Context, chatID, userID int64, st *dialog.Item, msgID int) {
	form, ok := st.Payload["form"].(*purchase.Form)
	if !ok || !form.Prev() {
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Purchase discarded.")
		return
	}
	b.renderPurchaseStep(ctx, chatID, st, &msgID)
}

func (b *Bot) renderPurchaseStep(ctx context.Context, chatID int64, st *dialog.Item, editMsgID *int) {
	form := st.Payload["form"].(*purchase.Form)

	var text string
	rows := [][]tgbotapi.InlineKeyboardButton{}

	switch form.Step {
	case purchase.StepSupplier:
		text = "🐟 Step 1 of 4: supplier.\nType a name to search, or add a one-off contact."
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 One-off contact", "pur:manual"),
		))
		_ = b.states.Set(ctx, chatID, dialog.StatePurSupplierPick, st.Payload)

	case purchase.StepDetails:
		text = "🐟 Step 2 of 4: delivery details.\nVehicle registration:"
		_ = b.states.Set(ctx, chatID, dialog.StatePurVehicle, st.Payload)

	case purchase.StepItems:
		lines := []string{"🐟 Step 3 of 4: intake lines."}
		for i, it := range form.Items {
			lines = append(lines, fmt.Sprintf("%d. %s %s — %d boxes, %s @ %s/kg",
				i+1, it.ProductType, it.SizeGrade, it.Boxes,
				format.Quantity(it.WeightKg, true, b.locale), it.UnitPrice.StringFixed(2)))
		}
		if len(form.Items) == 0 {
			lines = append(lines, "No lines yet.")
		}
		text = strings.Join(lines, "\n")
		itemRow := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("➕ Add line", "pur:item:add"),
		}
		if len(form.Items) > 0 {
			itemRow = append(itemRow, tgbotapi.NewInlineKeyboardButtonData("🗑 Drop last", "pur:item:drop"))
		}
		rows = append(rows, itemRow)
		if form.StepComplete(purchase.StepItems) {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("➡️ Review", "pur:next"),
			))
		}
		_ = b.states.Set(ctx, chatID, dialog.StatePurReview, st.Payload)

	case purchase.StepReview:
		supplier := form.ContactName
		if form.SupplierID != 0 {
			supplier = fmt.Sprintf("supplier #%d", form.SupplierID)
		}
		lines := []string{
			"🐟 Step 4 of 4: review.",
			"Supplier: " + supplier,
			"Vehicle: " + form.VehicleReg,
			"Delivery: " + form.DeliveryDate,
			fmt.Sprintf("Lines: %d", len(form.Items)),
			"Total: " + form.TotalAmount().StringFixed(2),
		}
		text = strings.Join(lines, "\n")
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Submit", "pur:submit"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Supplier", "pur:goto:supplier"),
				tgbotapi.NewInlineKeyboardButtonData("Details", "pur:goto:details"),
				tgbotapi.NewInlineKeyboardButtonData("Lines", "pur:goto:items"),
			),
		)
		_ = b.states.Set(ctx, chatID, dialog.StatePurReview, st.Payload)
	}

	rows = append(rows, navKeyboard(form.Step != purchase.StepSupplier, true).InlineKeyboard[0])
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
	} else {
		m := tgbotapi.NewMessage(chatID, text)
		m.ReplyMarkup = kb
		b.send(m)
	}
}

func (b *Bot) submitPurchase(ctx context.Context, chatID, userID int64, st *dialog.Item) {
	form, ok := b.formOf(ctx, chatID, userID, st)
	if !ok {
		return
	}

	req, err := form.BuildRequest()
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "The form is not complete yet. Check every step."))
		return
	}

	if !b.pending.begin(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Still submitting the previous purchase…"))
		return
	}
	defer b.pending.end(chatID)

	p, err := b.backend.CreatePurchase(ctx, req)
	if err != nil {
		metrics.Mutations.WithLabelValues("purchase_create", "error").Inc()
		b.notifyError(chatID, "Could not record the purchase", err)
		return
	}
	metrics.Mutations.WithLabelValues("purchase_create", "ok").Inc()

	_ = b.states.Reset(ctx, chatID)
	b.showPurchaseCard(ctx, chatID, p)
}

// showPurchaseCard renders a recorded purchase with its payment progress and a
// shortcut to record the next payment.
func (b *Bot) showPurchaseCard(ctx context.Context, chatID int64, p purchase.Purchase) {
	prog := purchase.Progress(p.PaidAmount, p.TotalAmount)
	text := strings.Join([]string{
		fmt.Sprintf("✅ Purchase %s (%s)", p.Reference, p.Status),
		"Supplier: " + p.SupplierName,
		"Delivery: " + p.DeliveryDate,
		fmt.Sprintf("Paid %s of %s (%s)",
			prog.Paid.StringFixed(2), prog.Total.StringFixed(2),
			format.Percent(prog.Percent, b.locale)),
		"Outstanding: " + prog.Remaining.StringFixed(2),
	}, "\n")

	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💵 Record payment", fmt.Sprintf("pur:pay:%d", p.ID)),
		),
	)
	b.send(m)
}

func (b *Bot) recordPayment(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(text), ",", "."))
	if err != nil || amount.Sign() <= 0 {
		b.send(tgbotapi.NewMessage(chatID, "Enter a positive amount."))
		return
	}
	purchaseID, _ := dialog.GetInt64(st.Payload, "purchase_id")

	if !b.pending.begin(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Still recording the previous payment…"))
		return
	}
	defer b.pending.end(chatID)

	p, err := b.backend.RecordPayment(ctx, purchase.PaymentRequest{
		PurchaseID: purchaseID,
		Amount:     amount,
		Method:     "cash",
	})
	if err != nil {
		metrics.Mutations.WithLabelValues("purchase_payment", "error").Inc()
		b.notifyError(chatID, "Could not record the payment", err)
		return
	}
	metrics.Mutations.WithLabelValues("purchase_payment", "ok").Inc()

	_ = b.states.Reset(ctx, chatID)
	b.showPurchaseCard(ctx, chatID, p)
}

// askText sends a free-text prompt and advances the dialog.
func (b *Bot) askText(ctx context.Context, chatID int64, prompt string, next dialog.State, payload dialog.Payload) {
	m := tgbotapi.NewMessage(chatID, prompt)
	m.ReplyMarkup = navKeyboard(true, true)
	sent, _ := b.api.Send(m)
	b.saveLastStep(ctx, chatID, next, payload, sent.MessageID)
}
