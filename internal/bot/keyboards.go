package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton("📊 Capacity"), tgbotapi.NewKeyboardButton("🚚 Bookings")},
			{tgbotapi.NewKeyboardButton("📦 Batches"), tgbotapi.NewKeyboardButton("🐟 New purchase")},
			{tgbotapi.NewKeyboardButton("🏭 Production"), tgbotapi.NewKeyboardButton("📈 Reports")},
		},
	}
}

func capacityKeyboard(date string, canManage bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️", "cap:day:prev:"+date),
			tgbotapi.NewInlineKeyboardButtonData("🔄", "cap:day:show:"+date),
			tgbotapi.NewInlineKeyboardButtonData("▶️", "cap:day:next:"+date),
		),
	}
	if canManage {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Set limit", "cap:limit:"+date),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard(action string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm", action),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func adjustmentTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Addition", "adj:type:addition"),
			tgbotapi.NewInlineKeyboardButtonData("➖ Subtraction", "adj:type:subtraction"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func batchCardKeyboard(batchID int64, canTransfer, canAdjust bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if canTransfer {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🔀 Transfer", fmt.Sprintf("tr:start:%d", batchID)))
	}
	if canAdjust {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✏️ Adjust", fmt.Sprintf("adj:start:%d", batchID)))
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func statsRangeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Last 7 days", "st:quick:7"),
			tgbotapi.NewInlineKeyboardButtonData("Last 30 days", "st:quick:30"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Custom range", "st:custom"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
}
