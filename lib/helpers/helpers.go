package helpers

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EscapeHTML escapes text for Telegram's HTML parse mode.
func EscapeHTML(text string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(text)
}

// FormatCountUS renders an integer with US thousand separators.
func FormatCountUS(n int64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d", n)
}

// FormatBytesUS renders a byte size with US thousand separators.
func FormatBytesUS(n int64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d bytes", n)
}
