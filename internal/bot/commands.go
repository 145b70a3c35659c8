package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	q "github.com/phoenixpbx/pbxbot/internal/queue"
	queue_publisher "github.com/phoenixpbx/pbxbot/internal/service"
)

const loginPrompt = "🔐 Please login to continue:\n\n" +
	"Send your credentials in this format:\n" +
	"<code>/login username password</code>"

// handleCommand dispatches slash commands.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "login":
		b.handleLogin(ctx, msg)
	case "menu":
		b.handleMenu(msg)
	case "help":
		b.handleHelp(msg)
	default:
		b.sendHTML(msg.Chat.ID, "Unknown command. Use /help", nil)
	}
}

// handleStart greets the user; the menu only appears once authenticated.
func (b *Bot) handleStart(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.auth.IsAuthenticated(chatID) {
		markup := MainMenu()
		b.sendHTML(chatID, "🎉 Welcome back to "+Escape(b.cfg.BotName)+"!\n\nChoose an option from the menu below:", &markup)
		return
	}
	b.sendHTML(chatID,
		fmt.Sprintf("👋 Welcome to %s!\n\nThis bot lets you monitor your VoIP system from Telegram.\n\n%s",
			Escape(b.cfg.BotName), loginPrompt), nil)
}

// handleLogin expects exactly "/login username password". Whatever the
// outcome, the triggering message still holds the plaintext password, so it
// is deleted best-effort afterwards.
func (b *Bot) handleLogin(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	username, password, ok := parseLoginArgs(msg.Text)
	if !ok {
		b.sendHTML(chatID, "❌ Invalid format!\n\n"+
			"Please use: <code>/login username password</code>\n\n"+
			"Example: <code>/login admin mypassword</code>", nil)
		return
	}

	result := b.auth.Login(ctx, chatID, username, password)
	if result.OK {
		markup := MainMenu()
		b.sendHTML(chatID, Escape(result.Message)+"\n\n📱 "+Escape(b.cfg.BotName)+" at your fingertips!", &markup)
	} else {
		b.sendHTML(chatID, Escape(result.Message), nil)
	}

	b.auditLogin(chatID, username, result.OK)

	// Scrub the credentials from chat history; failure to delete is ignored.
	_, _ = b.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID))
}

// handleMenu shows the main menu to an authenticated user.
func (b *Bot) handleMenu(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.auth.IsAuthenticated(chatID) {
		b.sendHTML(chatID, "❌ Please login first!\n\nUse: <code>/login username password</code>", nil)
		return
	}
	markup := MainMenu()
	b.sendHTML(chatID, "📋 Main Menu\n\nChoose an option:", &markup)
}

// handleHelp needs no authentication.
func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	help := fmt.Sprintf(`🤖 <b>%s — Help</b>

<b>Available Commands:</b>

/start - Start the bot
/login - Login to your account
/menu - Show main menu
/help - Show this help message

<b>Features:</b>

📊 Dashboard - System statistics
📞 Calls - Recent calls, today's calls, call search
👥 Customers - Customer list

<b>Version:</b> %s

Need help? Contact your system administrator.`,
		Escape(b.cfg.BotName), Escape(b.cfg.BotVersion))
	b.sendHTML(msg.Chat.ID, help, nil)
}

// auditLogin publishes a best-effort login event; a broker outage never
// reaches the user.
func (b *Bot) auditLogin(chatID int64, username string, success bool) {
	msg := "login failed"
	if success {
		msg = "login successful"
	}
	ev := q.LoginEvent{
		Source:    "bot",
		ChatID:    chatID,
		Username:  username,
		Success:   success,
		Message:   msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		_ = queue_publisher.PublishLoginEvent(context.Background(), b.log, ev)
	}()
}
