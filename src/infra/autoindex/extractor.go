package autoindex

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrUnexpectedLayout is returned when the page does not look like an autoindex listing.
var ErrUnexpectedLayout = errors.New("unexpected index page layout")

const (
	// linkListChild is the position of the link list among the body's element children.
	linkListChild = 2
	// skippedLinks covers the leading "parent directory" link.
	skippedLinks = 1
)

// Extractor reads hyperlinks from directory index pages rendered by the
// common autoindex generators: the body's third element holds the links and
// the first one points at the parent directory.
type Extractor struct{}

// NewExtractor creates a new autoindex Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns the href of every child of the link list, in page order.
func (e *Extractor) ExtractLinks(body string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page: %w", err)
	}

	bodyNode := findElement(doc, "body")
	if bodyNode == nil {
		return nil, fmt.Errorf("%w: no body element", ErrUnexpectedLayout)
	}

	children := elementChildren(bodyNode)
	if len(children) <= linkListChild {
		return nil, fmt.Errorf("%w: body has %d element children, need at least %d", ErrUnexpectedLayout, len(children), linkListChild+1)
	}

	items := elementChildren(children[linkListChild])
	links := make([]string, 0, len(items))
	for _, item := range items {
		links = append(links, attr(item, "href"))
	}
	if len(links) <= skippedLinks {
		return []string{}, nil
	}
	return links[skippedLinks:], nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func elementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
