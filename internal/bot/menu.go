package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Inline keyboard builders. Callback payloads are opaque strings namespaced
// by prefix: menu_, calls_, customers_, action_, or the literal noop.

// MainMenu is the top-level menu shown after login.
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", "menu_dashboard"),
			tgbotapi.NewInlineKeyboardButtonData("📞 Calls", "menu_calls"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Customers", "menu_customers"),
			tgbotapi.NewInlineKeyboardButtonData("📈 Reports", "menu_reports"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", "menu_settings"),
			tgbotapi.NewInlineKeyboardButtonData("🚪 Logout", "action_logout"),
		),
	)
}

// BackToMain is a single back button.
func BackToMain() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back to Menu", "menu_main"),
		),
	)
}

// CallsMenu lists the call views.
func CallsMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Recent Calls", "calls_recent"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Search Calls", "calls_search"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today's Calls", "calls_today"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back", "menu_main"),
		),
	)
}

// CustomersMenu lists the customer views.
func CustomersMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 List Customers", "customers_list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back", "menu_main"),
		),
	)
}

// Refresh pairs a refresh button for action with a back button.
func Refresh(action string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", action),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back", "menu_main"),
		),
	)
}

// Pagination builds prev/next paging for prefix (payloads <prefix>_page_N).
// The middle button is a noop page indicator.
func Pagination(page int, hasNext bool, prefix string) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if page > 1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			"« Prev", fmt.Sprintf("%s_page_%d", prefix, page-1)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("· %d ·", page), "noop"))
	if hasNext {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			"Next »", fmt.Sprintf("%s_page_%d", prefix, page+1)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back", "menu_main"),
		),
	)
}
