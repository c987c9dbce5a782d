package web

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// selector matches elements by a single simple CSS form:
// "tag", ".class", "#id", "[attr=value]" or "[attr*=substring]".
type selector struct {
	tag      string
	class    string
	id       string
	attr     string
	value    string
	contains bool
}

func parseSelector(s string) (selector, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return selector{}, fmt.Errorf("empty selector")
	case strings.HasPrefix(s, "."):
		return selector{class: s[1:]}, nil
	case strings.HasPrefix(s, "#"):
		return selector{id: s[1:]}, nil
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		body := s[1 : len(s)-1]
		key, value, ok := strings.Cut(body, "=")
		if !ok {
			return selector{attr: body}, nil
		}
		sel := selector{value: strings.Trim(value, `"'`)}
		if strings.HasSuffix(key, "*") {
			sel.contains = true
			key = strings.TrimSuffix(key, "*")
		}
		sel.attr = key
		if sel.attr == "" {
			return selector{}, fmt.Errorf("invalid selector %q", s)
		}
		return sel, nil
	case strings.ContainsAny(s, " >+~:[]"):
		return selector{}, fmt.Errorf("unsupported selector %q", s)
	default:
		return selector{tag: strings.ToLower(s)}, nil
	}
}

func parseSelectors(list []string) ([]selector, error) {
	out := make([]selector, 0, len(list))
	for _, s := range list {
		sel, err := parseSelector(s)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func mustSelector(s string) selector {
	sel, err := parseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func (s selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch {
	case s.tag != "":
		return n.Data == s.tag
	case s.class != "":
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == s.class {
				return true
			}
		}
		return false
	case s.id != "":
		return attr(n, "id") == s.id
	case s.attr != "":
		v, ok := lookupAttr(n, s.attr)
		if !ok {
			return false
		}
		if s.value == "" && !s.contains {
			return true
		}
		if s.contains {
			return strings.Contains(v, s.value)
		}
		return v == s.value
	}
	return false
}

// findFirst returns the first element in document order matching sel.
func findFirst(n *html.Node, sel selector) *html.Node {
	if sel.matches(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, sel); found != nil {
			return found
		}
	}
	return nil
}

// removeMatching detaches every element matching any of sels.
func removeMatching(n *html.Node, sels []selector) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if matchesAny(c, sels) {
			n.RemoveChild(c)
		} else {
			removeMatching(c, sels)
		}
		c = next
	}
}

func matchesAny(n *html.Node, sels []selector) bool {
	for _, s := range sels {
		if s.matches(n) {
			return true
		}
	}
	return false
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

// metaContent returns the content of the first <meta key="value">.
func metaContent(doc *html.Node, key, value string) string {
	m := findFirst(doc, selector{tag: "meta"})
	for m != nil {
		if attr(m, key) == value {
			return attr(m, "content")
		}
		m = nextMatch(m, selector{tag: "meta"})
	}
	return ""
}

// nextMatch continues a document-order search after n.
func nextMatch(n *html.Node, sel selector) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.NextSibling; sib != nil; sib = sib.NextSibling {
			if found := findFirst(sib, sel); found != nil {
				return found
			}
		}
	}
	return nil
}
