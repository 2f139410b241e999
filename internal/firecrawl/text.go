package firecrawl

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// Text returns the page body as markdown. Documents that only carry HTML are
// converted; if conversion fails the visible text of the HTML is used.
func (d Document) Text() string {
	if md := strings.TrimSpace(d.Markdown); md != "" {
		return md
	}
	if strings.TrimSpace(d.HTML) == "" {
		return ""
	}
	md, err := htmltomarkdown.ConvertString(d.HTML)
	if err == nil && strings.TrimSpace(md) != "" {
		return strings.TrimSpace(md)
	}
	return extractText(d.HTML)
}

// extractText strips tags from HTML and collapses whitespace.
func extractText(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
