package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/phoenixpbx/pbxbot/internal/model"
)

// pageSize is how many rows fit comfortably in one chat message.
const pageSize = 5

// requiresAuth reports whether a callback payload needs a live session.
// Logout must work for an expired session and noop is just a spinner stop.
func requiresAuth(data string) bool {
	return data != "action_logout" && data != "noop"
}

// handleCallback authenticates and routes a button press by payload prefix.
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Data == "" {
		b.answer(cb.ID)
		return
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	data := cb.Data

	// Session check happens before any dispatch.
	if requiresAuth(data) && !b.auth.IsAuthenticated(chatID) {
		b.alert(cb.ID, "❌ Session expired. Please /login again")
		return
	}

	switch {
	case strings.HasPrefix(data, "menu_"):
		b.answer(cb.ID)
		b.handleMenuCallback(ctx, chatID, messageID, data)
	case strings.HasPrefix(data, "calls_"):
		b.answer(cb.ID)
		b.handleCallsCallback(ctx, chatID, messageID, data)
	case strings.HasPrefix(data, "customers_"):
		b.answer(cb.ID)
		b.handleCustomersCallback(ctx, chatID, messageID, data)
	case strings.HasPrefix(data, "action_"):
		b.handleActionCallback(cb, chatID, messageID, data)
	case data == "noop":
		b.answer(cb.ID)
	default:
		b.answer(cb.ID)
	}
}

func (b *Bot) handleMenuCallback(ctx context.Context, chatID int64, messageID int, data string) {
	switch data {
	case "menu_main":
		b.editHTML(chatID, messageID, "📋 Main Menu\n\nChoose an option:", MainMenu())
	case "menu_dashboard":
		b.showDashboard(ctx, chatID, messageID)
	case "menu_calls":
		b.editHTML(chatID, messageID, "📞 Calls\n\nChoose an option:", CallsMenu())
	case "menu_customers":
		b.editHTML(chatID, messageID, "👥 Customers\n\nChoose an option:", CustomersMenu())
	case "menu_reports":
		b.editHTML(chatID, messageID, "📈 Reports\n\n🚧 Coming soon...", BackToMain())
	case "menu_settings":
		b.editHTML(chatID, messageID, "⚙️ Settings\n\n🚧 Coming soon...", BackToMain())
	}
}

func (b *Bot) showDashboard(ctx context.Context, chatID int64, messageID int) {
	stats := b.pbx.DashboardStats(ctx)

	text := fmt.Sprintf(`📊 <b>Dashboard Statistics</b>

📞 <b>Total Calls Today:</b> %s
⏱️ <b>Total Duration:</b> %s minutes

👥 <b>Active Customers:</b> %s
💰 <b>Revenue Today:</b> %s
🔌 <b>Active Trunks:</b> %s

<i>Last updated: %s</i>`,
		Number(stats.TotalCalls),
		Number(stats.TotalDuration),
		Number(stats.ActiveCustomers),
		Currency(stats.RevenueToday),
		Number(stats.ActiveTrunks),
		time.Now().Format("15:04:05"))

	b.editHTML(chatID, messageID, text, Refresh("menu_dashboard"))
}

func (b *Bot) handleCallsCallback(ctx context.Context, chatID int64, messageID int, data string) {
	switch data {
	case "calls_recent":
		calls := b.pbx.RecentCalls(ctx, pageSize)
		if len(calls) == 0 {
			b.editHTML(chatID, messageID, "📞 No recent calls found.", BackToMain())
			return
		}
		b.editHTML(chatID, messageID, renderCalls("📞 <b>Recent Calls</b>", calls), BackToMain())
	case "calls_today":
		today := time.Now().UTC().Format("2006-01-02")
		calls := b.pbx.SearchCalls(ctx, model.CallFilter{DateFrom: today, DateTo: today}, pageSize)
		if len(calls) == 0 {
			b.editHTML(chatID, messageID, "📞 No calls today.", BackToMain())
			return
		}
		b.editHTML(chatID, messageID, renderCallsCompact(
			fmt.Sprintf("📞 <b>Today's Calls (%d)</b>", len(calls)), calls), BackToMain())
	case "calls_search":
		b.auth.SetState(chatID, stateSearchCalls)
		b.editHTML(chatID, messageID, searchHint, BackToMain())
	}
}

func (b *Bot) handleCustomersCallback(ctx context.Context, chatID int64, messageID int, data string) {
	page := 1
	switch {
	case data == "customers_list":
	case strings.HasPrefix(data, "customers_page_"):
		n, err := strconv.Atoi(strings.TrimPrefix(data, "customers_page_"))
		if err != nil || n < 1 {
			return
		}
		page = n
	default:
		return
	}

	customers := b.pbx.Customers(ctx, pageSize, (page-1)*pageSize)
	if len(customers) == 0 {
		b.editHTML(chatID, messageID, "👥 No customers found.", BackToMain())
		return
	}
	b.editHTML(chatID, messageID,
		renderCustomers(page, customers),
		Pagination(page, len(customers) == pageSize, "customers"))
}

func (b *Bot) handleActionCallback(cb *tgbotapi.CallbackQuery, chatID int64, messageID int, data string) {
	switch data {
	case "action_logout":
		b.auth.Logout(chatID)
		b.alert(cb.ID, "👋 Logged out successfully!")
		edit := tgbotapi.NewEditMessageText(chatID, messageID,
			"👋 You have been logged out.\n\nUse /login to sign in again.")
		if _, err := b.api.Send(edit); err != nil {
			b.log.Warn("edit failed", zap.Int64("chat", chatID), zap.Error(err))
		}
	default:
		b.answer(cb.ID)
	}
}

// renderCalls formats calls as numbered detail blocks.
func renderCalls(title string, calls []model.Call) string {
	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	for i, call := range calls {
		caller := call.CallerID
		if caller == "" {
			caller = "Unknown"
		}
		dst := call.Destination
		if dst == "" {
			dst = "N/A"
		}
		fmt.Fprintf(&sb, "<b>%d.</b> %s\n", i+1, CallStatus(call.TerminateCauseID))
		fmt.Fprintf(&sb, "📅 %s\n", DateTime(call.StartTime))
		fmt.Fprintf(&sb, "📞 From: %s\n", Escape(caller))
		fmt.Fprintf(&sb, "📱 To: %s\n", Escape(dst))
		fmt.Fprintf(&sb, "⏱️ Duration: %s\n", Duration(call.SessionTime))
		fmt.Fprintf(&sb, "💰 Cost: %s\n\n", Currency(call.BuyCost))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderCallsCompact formats calls one per line.
func renderCallsCompact(title string, calls []model.Call) string {
	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	for i, call := range calls {
		fmt.Fprintf(&sb, "<b>%d.</b> %s %s → %s (%s)\n",
			i+1, CallStatus(call.TerminateCauseID),
			Escape(call.CallerID), Escape(call.Destination),
			Duration(call.SessionTime))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderCustomers formats one page of the customer list.
func renderCustomers(page int, customers []model.Customer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 <b>Customers</b> — page %d\n\n", page)
	for i, cust := range customers {
		status := "❌"
		if cust.Active == 1 {
			status = "✅"
		}
		email := cust.Email
		if email == "" {
			email = "N/A"
		}
		fmt.Fprintf(&sb, "<b>%d.</b> %s %s\n", (page-1)*pageSize+i+1, status, Escape(cust.Username))
		fmt.Fprintf(&sb, "👤 %s\n", Escape(strings.TrimSpace(cust.FirstName+" "+cust.LastName)))
		fmt.Fprintf(&sb, "📧 %s\n", Escape(email))
		fmt.Fprintf(&sb, "💰 Credit: %s\n\n", Currency(cust.Credit))
	}
	return strings.TrimRight(sb.String(), "\n")
}
