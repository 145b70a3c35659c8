package bot

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
)

// Locale-free text helpers for chat output. Everything renders with HTML
// parse mode, so any value that originated as free text goes through Escape.

// Currency renders an amount as dollars with two decimals.
func Currency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Number renders an integer with thousands separators.
func Number(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Duration renders seconds as "1h 2m 3s"; zero stays "0s".
func Duration(seconds int) string {
	if seconds <= 0 {
		return "0s"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	return strings.Join(parts, " ")
}

// DateTime renders a call timestamp the way the legacy bot did.
func DateTime(t time.Time) string {
	return t.Format("01/02/2006 15:04")
}

// CallStatus maps a termination-cause code to a labelled status.
func CallStatus(cause int) string {
	switch cause {
	case 1:
		return "✅ Answered"
	case 0:
		return "❌ Failed"
	case 16:
		return "⚠️ Busy"
	case 17:
		return "📵 No Answer"
	default:
		return "❓ Unknown"
	}
}

// Escape makes free text safe for HTML parse mode.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Truncate shortens text to maxLen, appending an ellipsis.
func Truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return text[:maxLen]
	}
	return text[:maxLen-3] + "..."
}
