package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extract flattens client-submitted HTML into plain text: tags stripped,
// whitespace collapsed. Falls back to the raw input when parsing fails.
func Extract(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("script,style").Remove()

	text := doc.Text()
	return strings.Join(strings.Fields(text), " ")
}

// Snippet returns the first maxLen runes of the extracted text.
func Snippet(html string, maxLen int) string {
	text := Extract(html)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}
