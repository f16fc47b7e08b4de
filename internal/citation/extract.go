package citation

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const (
	party    = `[A-Z][A-Za-z0-9.'’&-]*(?:\s+(?:[A-Z][A-Za-z0-9.'’&-]*|of|the|and|for|de|&))*`
	reporter = `[A-Z][A-Za-z0-9.'’&]*(?:\s+[A-Z0-9][A-Za-z0-9.'’&]*)*?`
)

var (
	inText = regexp.MustCompile(`(` + party + `)\s+vs?\.\s+` + party +
		`,\s*\d+\s+` + reporter + `\s+\d+\b(?:\s*,\s*\d+(?:\s*[-–]\s*\d+)?)?(?:\s*\([^()]*\d{4}\))?`)

	// introductory signals captured as part of the first party
	signals = []string{"See Also ", "See ", "But See ", "Cf. ", "But Cf. ", "Compare ", "Accord ", "Contra ", "In ", "Under ", "E.g. ", "Also "}
)

// Extract finds case citations in plain text, in order of first appearance,
// without duplicates
func Extract(text string) []string {
	text = strings.Join(strings.Fields(text), " ")

	var found []string
	for _, m := range inText.FindAllString(text, -1) {
		found = append(found, stripSignal(m))
	}
	return dedupe(found)
}

// ExtractHTML finds case citations in the visible text of an HTML brief.
// When the page marks a main content area (<main>, <article> or role="main")
// only that area is searched, so site navigation and sidebars are ignored.
func ExtractHTML(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	content := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "main"
	})
	if content == nil {
		content = findFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode &&
				(n.Data == "article" || attr(n, "role") == "main")
		})
	}
	if content == nil {
		content = doc
	}

	return Extract(visibleText(content)), nil
}

// findFirst returns the first node in document order matching pred
func findFirst(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// visibleText collects text nodes, skipping scripts and styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head", "nav":
				return
			}
		}

		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "li", "br", "td", "h1", "h2", "h3", "h4", "blockquote":
				buf.WriteString("\n")
			}
		}
	}

	walk(n)
	return buf.String()
}

func stripSignal(s string) string {
	for {
		trimmed := s
		for _, sig := range signals {
			if len(trimmed) > len(sig) && strings.EqualFold(trimmed[:len(sig)], sig) {
				trimmed = trimmed[len(sig):]
				break
			}
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

func dedupe(citations []string) []string {
	seen := make(map[string]bool)
	var unique []string

	for _, c := range citations {
		key := strings.ToLower(c)
		if !seen[key] && key != "" {
			seen[key] = true
			unique = append(unique, c)
		}
	}
	return unique
}
