package helper

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const DefaultExcerptLength = 200

var stripAll = bluemonday.StrictPolicy()

// Excerpt returns a plain-text preview of article markup: tags removed,
// entities decoded, whitespace collapsed, cut to max runes.
func Excerpt(content string, max int) string {
	// keep words from adjacent elements apart once the tags are gone
	spaced := strings.ReplaceAll(content, "<", " <")
	text := html.UnescapeString(stripAll.Sanitize(spaced))
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
