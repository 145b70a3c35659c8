// Package bot is the Telegram front-end: a long-polling update loop that
// authenticates each inbound event and routes it to the reporting facade.
// Updates are handled one at a time, to completion, before the next is
// dequeued; a panic while handling one update is recovered and logged so the
// loop keeps serving.
package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/phoenixpbx/pbxbot/internal/auth"
	"github.com/phoenixpbx/pbxbot/internal/config"
	"github.com/phoenixpbx/pbxbot/internal/pbx"
)

// handlerTimeout bounds the data-layer work done for one update.
const handlerTimeout = 10 * time.Second

type Bot struct {
	api  *tgbotapi.BotAPI
	auth *auth.Service
	pbx  *pbx.Service
	cfg  config.Config
	log  *zap.Logger
}

// New connects to the Bot API and wires the handlers' dependencies.
func New(cfg config.Config, authSvc *auth.Service, pbxSvc *pbx.Service, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, auth: authSvc, pbx: pbxSvc, cfg: cfg, log: log}, nil
}

// Run polls for updates until ctx is cancelled. Each update is dispatched
// synchronously; cancellation stops intake and returns, there is no
// per-event cancellation.
func (b *Bot) Run(ctx context.Context) error {
	b.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 10
	updates := b.api.GetUpdatesChan(u)

	b.log.Info("bot is running and listening for messages",
		zap.String("bot", b.cfg.BotName),
		zap.String("version", b.cfg.BotVersion))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

// registerCommands publishes the command list shown in the Telegram menu.
func (b *Bot) registerCommands() {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start the bot"},
		tgbotapi.BotCommand{Command: "login", Description: "Login to your account"},
		tgbotapi.BotCommand{Command: "menu", Description: "Show main menu"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help"},
	)
	if _, err := b.api.Request(cmds); err != nil {
		b.log.Warn("failed to register bot commands", zap.Error(err))
	}
}

// handleUpdate routes one update. Errors are logged, never returned to the
// loop: a failed interaction must not take the bot down.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic while handling update", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleText(ctx, update.Message)
	}
}

// sendHTML sends a message with HTML parse mode and an optional keyboard.
func (b *Bot) sendHTML(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}

// editHTML replaces a message in place, keeping the interaction on one bubble.
func (b *Bot) editHTML(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(edit); err != nil {
		b.log.Warn("edit failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}

// answer acknowledges a callback query so the client stops its spinner.
func (b *Bot) answer(callbackID string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		b.log.Debug("answer callback failed", zap.Error(err))
	}
}

// alert acknowledges a callback query with a popup alert.
func (b *Bot) alert(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		b.log.Debug("answer callback failed", zap.Error(err))
	}
}
