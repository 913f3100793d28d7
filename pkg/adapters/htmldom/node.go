package htmldom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is an element or text node of a Document.
type Node struct {
	doc      *Document
	parent   *Node
	children []*Node

	tag    string
	key    string
	attrs  []html.Attribute
	inline domain.StyleMap

	isText bool
	text   string

	effects []*effectSlot
}

var (
	_ ports.Element    = (*Node)(nil)
	_ ports.Structural = (*Node)(nil)
	_ ports.EffectHost = (*Node)(nil)
)

// ID returns the id attribute, or a document-unique generated key.
func (n *Node) ID() string {
	if id := n.attr("id"); id != "" {
		return id
	}
	return n.key
}

// Tag returns the lower-case tag name.
func (n *Node) Tag() string {
	return n.tag
}

// Parent returns the parent element, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsConnected reports whether the node is reachable from its document's body.
func (n *Node) IsConnected() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == n.doc.body {
			return true
		}
	}
	return false
}

// InlineStyle returns the value set in the style attribute.
func (n *Node) InlineStyle(prop string) (string, bool) {
	v, ok := n.inline[domain.NormalizeProperty(prop)]
	return v, ok
}

// InlineStyles returns a copy of every inline declaration.
func (n *Node) InlineStyles() domain.StyleMap {
	return n.inline.Clone()
}

// SetInlineStyle writes a declaration into the style attribute.
func (n *Node) SetInlineStyle(prop, value string) {
	n.inline[domain.NormalizeProperty(prop)] = value
}

// RemoveInlineStyle deletes a declaration from the style attribute.
func (n *Node) RemoveInlineStyle(prop string) {
	delete(n.inline, domain.NormalizeProperty(prop))
}

// Attr returns an attribute value.
func (n *Node) Attr(key string) string {
	if key == "style" {
		return n.inline.String()
	}
	return n.attr(key)
}

// SetAttr sets an attribute. Setting "style" replaces every inline declaration.
func (n *Node) SetAttr(key, value string) error {
	if key == "style" {
		styles, err := parseStyle(value)
		if err != nil {
			return err
		}
		n.inline = styles
		return nil
	}
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs[i].Val = value
			return nil
		}
	}
	n.attrs = append(n.attrs, html.Attribute{Key: key, Val: value})
	return nil
}

// Text returns the concatenated text content.
func (n *Node) Text() string {
	if n.isText {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// SetText replaces the children with a single text node.
func (n *Node) SetText(text string) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.appendNode(n.doc.newText(text))
}

// Children returns the element children.
func (n *Node) Children() []ports.Element {
	out := make([]ports.Element, 0, len(n.children))
	for _, c := range n.children {
		if !c.isText {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child ports.Element) error {
	c, err := n.own(child)
	if err != nil {
		return err
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("cannot append %s into its own subtree", c.ID())
		}
	}
	c.detach()
	n.appendNode(c)
	return nil
}

// AppendHTML parses markup as a fragment in the context of n and appends the
// resulting nodes.
func (n *Node) AppendHTML(markup string) error {
	context := &html.Node{Type: html.ElementNode, Data: n.tag, DataAtom: atom.Lookup([]byte(n.tag))}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("failed to parse html: %w", err)
	}
	holder := &html.Node{Type: html.ElementNode, Data: n.tag}
	for _, c := range nodes {
		holder.AppendChild(c)
	}
	return n.doc.importChildren(n, holder)
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child ports.Element) error {
	c, err := n.own(child)
	if err != nil {
		return err
	}
	if c.parent != n {
		return fmt.Errorf("%s is not a child of %s", c.ID(), n.ID())
	}
	c.detach()
	return nil
}

type effectSlot struct {
	effect ports.Effect
}

// AttachEffect composites an animation effect on top of the inline styles and
// returns the func that removes it. Effects are tracked by attachment, so any
// Effect value works, comparable or not.
func (n *Node) AttachEffect(e ports.Effect) (detach func()) {
	slot := &effectSlot{effect: e}
	n.effects = append(n.effects, slot)
	return func() {
		n.effects = slices.DeleteFunc(n.effects, func(s *effectSlot) bool { return s == slot })
	}
}

// Effects returns the number of attached effects.
func (n *Node) Effects() int {
	return len(n.effects)
}

// OuterHTML renders the node and its subtree.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	_ = html.Render(&b, n.toHTML())
	return b.String()
}

func (n *Node) own(el ports.Element) (*Node, error) {
	c, ok := el.(*Node)
	if !ok || c.doc != n.doc {
		return nil, fmt.Errorf("%w: %T is not a node of this document", domain.ErrElementUnsupported, el)
	}
	return c, nil
}

func (n *Node) appendNode(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(x *Node) bool { return x == n })
	n.parent = nil
}

func (n *Node) attr(key string) string {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (n *Node) copyAttrs(src *html.Node) error {
	for _, a := range src.Attr {
		if err := n.SetAttr(a.Key, a.Val); err != nil {
			return err
		}
	}
	return nil
}

// walk visits n and its element descendants depth first until fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if n.isText {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) toHTML() *html.Node {
	if n.isText {
		return &html.Node{Type: html.TextNode, Data: n.text}
	}
	out := &html.Node{Type: html.ElementNode, Data: n.tag}
	out.Attr = append(out.Attr, n.attrs...)
	if len(n.inline) > 0 {
		out.Attr = append(out.Attr, html.Attribute{Key: "style", Val: n.inline.String()})
	}
	for _, c := range n.children {
		out.AppendChild(c.toHTML())
	}
	return out
}
