package htmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultViewportWidth is the width of the body when the document does not set one.
const DefaultViewportWidth = 800.0

// Document is a parsed tree of nodes rooted at a body element.
type Document struct {
	// ViewportWidth is the layout width of the body in pixels.
	ViewportWidth float64

	body *Node
	seq  int
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{ViewportWidth: DefaultViewportWidth}
	d.body = d.newNode("body")
	return d
}

// Parse reads an HTML fragment or document. Only the body content is kept.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	body := findBody(root)
	if body == nil {
		return nil, fmt.Errorf("failed to parse html: no body element")
	}

	d := NewDocument()
	if err := d.body.copyAttrs(body); err != nil {
		return nil, err
	}
	if err := d.importChildren(d.body, body); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Body returns the root element.
func (d *Document) Body() *Node {
	return d.body
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Node {
	return d.newNode(strings.ToLower(tag))
}

// GetElementByID finds a connected element by id attribute.
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	d.body.walk(func(n *Node) bool {
		if n.attr("id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Render writes the body content as HTML, inline styles included.
func (d *Document) Render(w io.Writer) error {
	for _, c := range d.body.children {
		if err := html.Render(w, c.toHTML()); err != nil {
			return err
		}
	}
	return nil
}

// String renders the body content.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

func (d *Document) newNode(tag string) *Node {
	d.seq++
	return &Node{
		doc:    d,
		tag:    tag,
		key:    fmt.Sprintf("%s-%d", tag, d.seq),
		inline: domain.StyleMap{},
	}
}

func (d *Document) newText(text string) *Node {
	return &Node{doc: d, text: text, isText: true}
}

func (d *Document) importChildren(dst *Node, src *html.Node) error {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			dst.appendNode(d.newText(c.Data))
		case html.ElementNode:
			n := d.newNode(c.Data)
			if err := n.copyAttrs(c); err != nil {
				return err
			}
			if err := d.importChildren(n, c); err != nil {
				return err
			}
			dst.appendNode(n)
		}
	}
	return nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// parseStyle reads a style attribute into a StyleMap.
func parseStyle(attr string) (domain.StyleMap, error) {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return domain.StyleMap{}, nil
	}
	// The declaration scanner drops the value of an unterminated last declaration.
	if !strings.HasSuffix(attr, ";") {
		attr += ";"
	}
	decls, err := parser.ParseDeclarations(attr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse style %q: %w", attr, err)
	}
	styles := make(domain.StyleMap, len(decls))
	for _, decl := range decls {
		styles[domain.NormalizeProperty(decl.Property)] = strings.TrimSpace(decl.Value)
	}
	return styles, nil
}
