package news

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText reduces an HTML fragment such as a feed description to plain text.
func htmlToText(fragment string) string {
	text := fragment
	if strings.Contains(fragment, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment)); err == nil {
			text = doc.Text()
		}
	}
	return strings.Join(strings.Fields(text), " ")
}
