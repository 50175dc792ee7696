package enrichment

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

func parse(r io.Reader) (*Facts, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var (
		title       string
		description string
		siteName    string
		ogDesc      string
	)

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" {
					title = collapse(nodeText(n))
				}
			case "meta":
				key, content := metaPair(n)
				switch key {
				case "description":
					description = collapse(content)
				case "og:site_name":
					siteName = collapse(content)
				case "og:description":
					ogDesc = collapse(content)
				}
			case "body":
				// metadata lives in <head>; skip the document body
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if description == "" {
		description = ogDesc
	}

	if title == "" && description == "" {
		return nil, ErrNoContent
	}

	company := siteName
	if company == "" {
		company = companyFromTitle(title)
	}

	return &Facts{
		Company:     company,
		Title:       title,
		Description: description,
	}, nil
}

func metaPair(n *html.Node) (key, content string) {
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "name", "property":
			key = strings.ToLower(strings.TrimSpace(attr.Val))
		case "content":
			content = attr.Val
		}
	}
	return key, content
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(nodeText(c))
	}
	return text.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// companyFromTitle takes the leading segment of titles such as
// "Acme Corp | Industrial Widgets".
func companyFromTitle(title string) string {
	for _, sep := range []string{" | ", " - ", " – ", " — ", ": "} {
		if before, _, ok := strings.Cut(title, sep); ok {
			return strings.TrimSpace(before)
		}
	}
	return title
}
