package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/dialog"
)

// Bot is the operations console surface. Every screen is a thin dialog that
// reads and mutates through the backend client; the backend stays
// authoritative for capacity, ledgers and run state.
type Bot struct {
	api     *tgbotapi.BotAPI
	backend *api.Client
	log     *slog.Logger
	states  *dialog.Repo
	access  Capabilities
	pending pendingSet
	search  api.Guard

	adminChat int64
	locale    language.Tag
}

func New(tg *tgbotapi.BotAPI, backend *api.Client, log *slog.Logger,
	states *dialog.Repo, access Capabilities, adminChatID int64, locale language.Tag) *Bot {

	return &Bot{
		api:       tg,
		backend:   backend,
		log:       log,
		states:    states,
		access:    access,
		pending:   newPendingSet(),
		adminChat: adminChatID,
		locale:    locale,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	if b.adminChat != 0 {
		b.send(tgbotapi.NewMessage(b.adminChat, "Operations console is online."))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			// Each update is handled off the loop so a slow backend lookup
			// never stalls other chats and can be superseded by a newer one.
			// The dialog store's locking and the pending latch keep a single
			// chat's concurrent updates safe.
			go b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		b.onMessage(ctx, upd)
	} else if upd.CallbackQuery != nil {
		b.onCallback(ctx, upd)
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}
