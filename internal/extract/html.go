package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FromHTML parses a page, drops script, style and noscript elements and
// returns the document title with the visible body text. When the page has
// no <title>, fallbackTitle is used.
func FromHTML(body []byte, fallbackTitle string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = fallbackTitle
	}

	var b strings.Builder
	nodes := doc.Find("body").Nodes
	if len(nodes) == 0 {
		nodes = doc.Nodes
	}
	for _, n := range nodes {
		collectText(&b, n, false)
	}
	return Page{Title: title, Text: normalizeWhitespace(b.String())}, nil
}

// collectText appends the text under n, putting block elements on their own
// lines and keeping the line breaks of preformatted text.
func collectText(b *strings.Builder, n *html.Node, inPre bool) {
	if n.Type == html.ElementNode {
		if isConsentBanner(n) {
			return
		}
		switch strings.ToLower(n.Data) {
		case "head", "template", "iframe", "svg":
			return
		case "pre":
			inPre = true
			b.WriteString("\n")
		case "br", "hr":
			b.WriteString("\n")
		case "p", "div", "section", "article", "main", "header", "footer", "nav",
			"h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "table", "tr", "blockquote":
			b.WriteString("\n")
		case "td", "th":
			b.WriteString(" ")
		}
	}

	if n.Type == html.TextNode {
		data := n.Data
		if !inPre {
			data = strings.ReplaceAll(data, "\t", " ")
			data = strings.ReplaceAll(data, "\r", " ")
			data = strings.ReplaceAll(data, "\n", " ")
		}
		b.WriteString(data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c, inPre)
	}

	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "table":
			b.WriteString("\n\n")
		case "li", "tr", "div", "section", "article", "main", "header", "footer", "nav":
			b.WriteString("\n")
		}
	}
}

// isConsentBanner reports whether the element looks like a cookie or consent
// overlay judged by its id, class, role and data attributes.
func isConsentBanner(n *html.Node) bool {
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && key != "role" && key != "aria-label" && !strings.HasPrefix(key, "data-") {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, marker := range []string{"cookie", "consent", "gdpr"} {
			if strings.Contains(val, marker) {
				return true
			}
		}
	}
	return false
}

// normalizeWhitespace trims every line, collapses runs of spaces and keeps
// at most one blank line in a row.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, trimmed)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
