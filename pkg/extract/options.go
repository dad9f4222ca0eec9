// Package extract reads service options out of the service-selection markup.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// ServiceOption is one selectable radio option.
type ServiceOption struct {
	Value string
	Label string
}

// FindMatchingOption returns the first option, in document order, whose
// label satisfies m. Markup that cannot be parsed or holds no options is
// simply "not found".
func FindMatchingOption(markup string, m *Matcher) (ServiceOption, bool) {
	for _, opt := range ListOptions(markup) {
		if m.Match(opt.Label) {
			return opt, true
		}
	}
	return ServiceOption{}, false
}

// ListOptions returns every radio option in the markup in document order.
func ListOptions(markup string) []ServiceOption {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	labels := labelsByFor(doc)

	var options []ServiceOption
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if isRadio(n) {
			options = append(options, ServiceOption{
				Value: attr(n, "value"),
				Label: radioLabel(n, labels),
			})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return options
}

// radioLabel resolves the human-readable text of a radio input: the next
// element sibling, then a <label for=id>, then an enclosing <label>, then
// aria-label.
func radioLabel(n *html.Node, labels map[string]string) string {
	if sib := nextElementSibling(n); sib != nil {
		if text := normalizeSpace(textContent(sib)); text != "" {
			return text
		}
	}
	if id := attr(n, "id"); id != "" {
		if text, ok := labels[id]; ok && text != "" {
			return text
		}
	}
	if p := n.Parent; p != nil && p.Type == html.ElementNode && strings.EqualFold(p.Data, "label") {
		if text := normalizeSpace(textContent(p)); text != "" {
			return text
		}
	}
	return normalizeSpace(attr(n, "aria-label"))
}

func labelsByFor(doc *html.Node) map[string]string {
	labels := make(map[string]string)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "label") {
			if target := attr(n, "for"); target != "" {
				if _, seen := labels[target]; !seen {
					labels[target] = normalizeSpace(textContent(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return labels
}

func isRadio(n *html.Node) bool {
	return n.Type == html.ElementNode &&
		strings.EqualFold(n.Data, "input") &&
		strings.EqualFold(attr(n, "type"), "radio")
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
