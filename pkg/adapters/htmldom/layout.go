package htmldom

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/kinetic/internal/interpolate"
	"github.com/aretw0/kinetic/pkg/domain"
)

const (
	defaultFontSize  = 16.0
	lineHeightFactor = 1.2
	charWidthFactor  = 0.5
)

var inherited = map[string]bool{
	"color":       true,
	"font-family": true,
	"font-weight": true,
	"visibility":  true,
	"text-align":  true,
}

var initial = domain.StyleMap{
	"display":          "block",
	"opacity":          "1",
	"visibility":       "visible",
	"color":            "rgb(0, 0, 0)",
	"background-color": "transparent",
	"transform":        "none",
}

// ComputedStyle returns the rendered value of prop. Effects win over inline styles;
// height, width, font-size and line-height are resolved to pixels by the layout model.
func (n *Node) ComputedStyle(prop string) (string, error) {
	if !n.IsConnected() {
		return "", domain.ErrDetached
	}

	prop = domain.NormalizeProperty(prop)
	switch prop {
	case "height":
		return px(n.height()), nil
	case "width":
		return px(n.width()), nil
	case "font-size":
		return px(n.fontSize()), nil
	case "line-height":
		return px(n.lineHeight()), nil
	}

	for cur := n; cur != nil; cur = cur.parent {
		if v, ok := cur.cascaded(prop); ok {
			return v, nil
		}
		if !inherited[prop] {
			break
		}
	}
	return initial[prop], nil
}

// cascaded returns the topmost value an effect or the style attribute sets for prop.
func (n *Node) cascaded(prop string) (string, bool) {
	for i := len(n.effects) - 1; i >= 0; i-- {
		if v, ok := n.effects[i].effect.Sample()[prop]; ok {
			return v, true
		}
	}
	v, ok := n.inline[prop]
	return v, ok
}

func (n *Node) pixels(prop string) (float64, bool) {
	v, ok := n.cascaded(prop)
	if !ok {
		return 0, false
	}
	f, unit, ok := interpolate.ParseLength(v)
	if !ok || (unit != "px" && !(unit == "" && f == 0)) {
		return 0, false
	}
	return f, true
}

func (n *Node) displayed() bool {
	v, _ := n.cascaded("display")
	return v != "none"
}

func (n *Node) height() float64 {
	if !n.displayed() {
		return 0
	}
	if h, ok := n.pixels("height"); ok {
		return h
	}

	total := 0.0
	for _, c := range n.children {
		if c.isText {
			total += n.textHeight(c.text)
			continue
		}
		total += c.height()
	}
	return total
}

func (n *Node) textHeight(text string) float64 {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return 0
	}
	chars := float64(utf8.RuneCountInString(text))
	lines := math.Max(1, math.Ceil(chars*charWidthFactor*n.fontSize()/n.width()))
	return lines * n.lineHeight()
}

func (n *Node) width() float64 {
	if w, ok := n.pixels("width"); ok && w > 0 {
		return w
	}
	if n.parent == nil {
		return n.doc.ViewportWidth
	}
	return n.parent.width()
}

func (n *Node) fontSize() float64 {
	if fs, ok := n.pixels("font-size"); ok && fs > 0 {
		return fs
	}
	if n.parent == nil {
		return defaultFontSize
	}
	return n.parent.fontSize()
}

// lineHeight inherits pixel values as is and unitless values as a factor of the
// element's own font size.
func (n *Node) lineHeight() float64 {
	for cur := n; cur != nil; cur = cur.parent {
		v, ok := cur.cascaded("line-height")
		if !ok {
			continue
		}
		if f, unit, ok := interpolate.ParseLength(v); ok {
			switch unit {
			case "px":
				return f
			case "":
				return f * n.fontSize()
			}
		}
		break
	}
	return lineHeightFactor * n.fontSize()
}

func px(v float64) string {
	return interpolate.FormatNumber(v) + "px"
}
