package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

func payloads(markup tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				out = append(out, *btn.CallbackData)
			}
		}
	}
	return out
}

func TestMainMenuPayloads(t *testing.T) {
	require.Equal(t, []string{
		"menu_dashboard", "menu_calls",
		"menu_customers", "menu_reports",
		"menu_settings", "action_logout",
	}, payloads(MainMenu()))
}

func TestPaginationFirstPage(t *testing.T) {
	markup := Pagination(1, true, "customers")

	// No prev button on page one; indicator is a noop.
	require.Equal(t, []string{"noop", "customers_page_2", "menu_main"}, payloads(markup))
}

func TestPaginationMiddlePage(t *testing.T) {
	markup := Pagination(3, true, "customers")
	require.Equal(t, []string{
		"customers_page_2", "noop", "customers_page_4", "menu_main",
	}, payloads(markup))
}

func TestPaginationLastPage(t *testing.T) {
	markup := Pagination(4, false, "customers")
	require.Equal(t, []string{"customers_page_3", "noop", "menu_main"}, payloads(markup))
}
