package web

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
	multiSpacePattern   = regexp.MustCompile(`[ \t]{2,}`)
)

// toMarkdown renders the subtree as light markdown: ATX headings, lists,
// paragraphs, emphasis, code and links. Images are dropped.
func toMarkdown(n *html.Node) string {
	var sb strings.Builder
	writeMarkdown(n, &sb, 0)
	return cleanMarkdown(sb.String())
}

func writeMarkdown(n *html.Node, sb *strings.Builder, depth int) {
	if depth > 200 {
		return
	}

	switch n.Type {
	case html.TextNode:
		text := collapseSpace(n.Data)
		if text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "img", "picture", "video", "audio", "canvas", "script", "style", "noscript":
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			sb.WriteString("\n\n" + strings.Repeat("#", level) + " ")
		case "p", "div", "section", "blockquote", "table", "ul", "ol":
			sb.WriteString("\n\n")
		case "br", "tr":
			sb.WriteString("\n")
		case "li":
			sb.WriteString("\n- ")
		case "pre":
			sb.WriteString("\n\n```\n")
			sb.WriteString(textContent(n))
			sb.WriteString("\n```\n\n")
			return
		case "code":
			sb.WriteString("`")
		case "strong", "b":
			sb.WriteString("**")
		case "em", "i":
			sb.WriteString("*")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeMarkdown(c, sb, depth+1)
	}

	if n.Type != html.ElementNode {
		return
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6", "p":
		sb.WriteString("\n\n")
	case "code":
		trimTrailingSpace(sb)
		sb.WriteString("` ")
	case "strong", "b":
		trimTrailingSpace(sb)
		sb.WriteString("** ")
	case "em", "i":
		trimTrailingSpace(sb)
		sb.WriteString("* ")
	}
}

// trimTrailingSpace drops the separator space before a closing delimiter.
func trimTrailingSpace(sb *strings.Builder) {
	s := sb.String()
	if trimmed := strings.TrimRight(s, " "); len(trimmed) != len(s) {
		sb.Reset()
		sb.WriteString(trimmed)
	}
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanMarkdown trims lines and collapses runs of blank lines.
func cleanMarkdown(s string) string {
	s = multiSpacePattern.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	s = multiNewlinePattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
