package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/phoenixpbx/pbxbot/internal/model"
)

// stateSearchCalls marks a session waiting for search terms typed in chat.
const stateSearchCalls = "search_calls"

const searchHint = "🔍 <b>Call Search</b>\n\n" +
	"Send your search terms as one message, e.g.:\n" +
	"<code>caller=555 dst=4420 from=2026-01-01 to=2026-01-31</code>\n\n" +
	"Any subset of <code>caller</code>, <code>dst</code>, <code>from</code>, <code>to</code> works; " +
	"a bare term searches destinations."

// parseLoginArgs validates the /login command shape: exactly three
// space-separated tokens.
func parseLoginArgs(text string) (username, password string, ok bool) {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// parseSearchQuery turns a chat message into a call filter. Recognized
// key=value pairs are caller, dst, from and to; anything else is treated as a
// destination substring. Dates pass through as typed; the gateway binds them
// as parameters either way.
func parseSearchQuery(text string) model.CallFilter {
	var f model.CallFilter
	var loose []string

	for _, token := range strings.Fields(text) {
		key, value, found := strings.Cut(token, "=")
		if !found {
			loose = append(loose, token)
			continue
		}
		switch strings.ToLower(key) {
		case "caller", "callerid":
			f.CallerID = value
		case "dst", "destination":
			f.Destination = value
		case "from", "datefrom":
			f.DateFrom = value
		case "to", "dateto":
			f.DateTo = value
		default:
			loose = append(loose, token)
		}
	}
	if f.Destination == "" && len(loose) > 0 {
		f.Destination = strings.Join(loose, " ")
	}
	return f
}

// handleText processes non-command messages. The only meaningful case is a
// session waiting for search terms; everything else gets a gentle nudge.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	sess, ok := b.auth.Session(chatID)
	if ok && sess.State == stateSearchCalls && b.auth.IsAuthenticated(chatID) {
		b.auth.ClearState(chatID)
		b.runCallSearch(ctx, chatID, parseSearchQuery(msg.Text))
		return
	}

	b.sendHTML(chatID, "Hi! Use the menu buttons or /help for assistance.", nil)
}

// runCallSearch executes a search and renders the results as a new message.
func (b *Bot) runCallSearch(ctx context.Context, chatID int64, f model.CallFilter) {
	calls := b.pbx.SearchCalls(ctx, f, 5)
	markup := BackToMain()
	if len(calls) == 0 {
		b.sendHTML(chatID, "📞 No calls matched your search.", &markup)
		return
	}
	b.sendHTML(chatID, renderCalls("🔍 <b>Search Results</b>", calls), &markup)
}
