package entity

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExcerptLength is the number of runes kept when an excerpt is derived from content.
const ExcerptLength = 140

// DeriveExcerpt builds an excerpt from post content.
// Markup is stripped to its text, whitespace is collapsed, and text longer than
// ExcerptLength runes is cut and suffixed with "...".
func DeriveExcerpt(content string) string {
	text := content
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= ExcerptLength {
		return text
	}
	return string(runes[:ExcerptLength]) + "..."
}
