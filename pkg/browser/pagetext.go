package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// visibleText extracts the human-visible text from raw HTML, skipping
// scripts, styles, and elements hidden from the accessibility tree.
// Output is whitespace-collapsed, with newlines between block elements,
// and truncated to maxLength characters.
func visibleText(rawHTML string, maxLength int) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var builder strings.Builder
	collectText(doc, &builder)

	text := collapseWhitespace(builder.String())
	if maxLength > 0 && len(text) > maxLength {
		text = text[:maxLength] + "..."
	}

	return text, nil
}

// collectText walks the node tree appending visible text to builder.
func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}

	if n.Type == html.ElementNode {
		tagName := strings.ToLower(n.Data)
		if isInvisibleElement(tagName) || isHiddenNode(n) {
			return
		}
		if isBlockElement(tagName) {
			builder.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			builder.WriteString(text)
			builder.WriteString(" ")
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, builder)
	}
}

// isInvisibleElement returns true for elements that never render text
func isInvisibleElement(tagName string) bool {
	invisible := map[string]bool{
		"script":   true,
		"style":    true,
		"noscript": true,
		"head":     true,
		"iframe":   true,
		"template": true,
		"embed":    true,
		"object":   true,
		"svg":      true,
	}
	return invisible[tagName]
}

// isHiddenNode returns true for elements hidden from the rendered tree
// via the hidden attribute, aria-hidden, or inline display/visibility styles.
func isHiddenNode(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "hidden":
			return true
		case "aria-hidden":
			if strings.EqualFold(attr.Val, "true") {
				return true
			}
		case "style":
			style := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

// isBlockElement returns true for block-level elements (for line breaks)
func isBlockElement(tagName string) bool {
	blocks := map[string]bool{
		"div":        true,
		"p":          true,
		"section":    true,
		"article":    true,
		"header":     true,
		"footer":     true,
		"nav":        true,
		"main":       true,
		"aside":      true,
		"h1":         true,
		"h2":         true,
		"h3":         true,
		"h4":         true,
		"h5":         true,
		"h6":         true,
		"ul":         true,
		"ol":         true,
		"li":         true,
		"table":      true,
		"tr":         true,
		"form":       true,
		"fieldset":   true,
		"blockquote": true,
		"pre":        true,
		"br":         true,
	}
	return blocks[tagName]
}

// collapseWhitespace normalizes runs of spaces and blank lines.
func collapseWhitespace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
