package app

import (
	"fmt"
	"html"
	"strings"
	"time"

	"numerology_fortune_bot/internal/domain/fortune"
)

// RenderFortune formats a result as a Telegram HTML message.
func RenderFortune(res *fortune.Result, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔮 <b>Your fortune for %s</b>\n", date.Format("Monday, 2 January 2006"))
	for _, r := range res.Readings() {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s <b>%s</b> · %d\n", markIcon(r.Mark), r.Category.Title(), r.Number)
		if r.Text != "" {
			b.WriteString(html.EscapeString(r.Text))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func markIcon(m fortune.Mark) string {
	if e := m.Emoji(); e != "" {
		return e
	}
	return "•"
}
