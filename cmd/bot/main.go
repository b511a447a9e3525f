package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"

	"github.com/havkom/fishops-bot/internal/api"
	"github.com/havkom/fishops-bot/internal/bot"
	"github.com/havkom/fishops-bot/internal/config"
	"github.com/havkom/fishops-bot/internal/dialog"
	httpx "github.com/havkom/fishops-bot/internal/infra/http"
	"github.com/havkom/fishops-bot/internal/infra/logger"
)

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	locale, err := language.Parse(cfg.App.Locale)
	if err != nil {
		log.Warn("bad locale, falling back to en", "locale", cfg.App.Locale)
		locale = language.English
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := api.New(cfg.Backend.BaseURL, cfg.Backend.Token, log)

	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram authorized", "account", tg.Self.UserName)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, backend.Ping)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	states := dialog.NewRepo()
	access := bot.NewCapabilities(backend, log)
	console := bot.New(tg, backend, log, states, access, cfg.Telegram.AdminChatID, locale)

	if err := console.Run(ctx, 30); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
