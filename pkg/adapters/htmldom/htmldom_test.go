package htmldom_test

import (
	"testing"

	"github.com/aretw0/kinetic/pkg/adapters/htmldom"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticEffect domain.StyleMap

func (e staticEffect) Sample() domain.StyleMap { return domain.StyleMap(e) }

func TestParse_InlineStyles(t *testing.T) {
	doc, err := htmldom.ParseString(`<div id="box" style="width: 100px; background-color: red">hi</div>`)
	require.NoError(t, err)

	box := doc.GetElementByID("box")
	require.NotNil(t, box)
	assert.Equal(t, "box", box.ID())
	assert.Equal(t, "div", box.Tag())

	v, ok := box.InlineStyle("width")
	assert.True(t, ok)
	assert.Equal(t, "100px", v)

	bg, err := box.ComputedStyle("background-color")
	require.NoError(t, err)
	assert.Equal(t, "red", bg)
}

func TestLayout_TextWrapping(t *testing.T) {
	doc, err := htmldom.ParseString(`<div id="box" style="width: 100px; line-height: 20px">hello 12345</div>`)
	require.NoError(t, err)
	box := doc.GetElementByID("box")

	h, err := box.ComputedStyle("height")
	require.NoError(t, err)
	assert.Equal(t, "20px", h)

	box.SetText("hello 12345-12345-12345")
	h, err = box.ComputedStyle("height")
	require.NoError(t, err)
	assert.Equal(t, "40px", h)
}

func TestLayout_BlockChildren(t *testing.T) {
	doc, err := htmldom.ParseString(`
		<div id="list" style="line-height: 20px">
			<div>1</div><div>2</div><div>3</div><div>4</div><div>5</div>
		</div>`)
	require.NoError(t, err)
	list := doc.GetElementByID("list")

	h, err := list.ComputedStyle("height")
	require.NoError(t, err)
	assert.Equal(t, "100px", h)

	children := list.Children()
	require.Len(t, children, 5)
	require.NoError(t, list.RemoveChild(children[0]))

	h, _ = list.ComputedStyle("height")
	assert.Equal(t, "80px", h)
	assert.False(t, children[0].IsConnected())
}

func TestLayout_Defaults(t *testing.T) {
	doc := htmldom.NewDocument()
	p := doc.CreateElement("P")
	require.NoError(t, doc.Body().AppendChild(p))
	p.SetText("x")

	fs, _ := p.ComputedStyle("font-size")
	assert.Equal(t, "16px", fs)
	lh, _ := p.ComputedStyle("line-height")
	assert.Equal(t, "19.2px", lh)
	w, _ := p.ComputedStyle("width")
	assert.Equal(t, "800px", w)
	op, _ := p.ComputedStyle("opacity")
	assert.Equal(t, "1", op)

	p.SetInlineStyle("display", "none")
	h, _ := p.ComputedStyle("height")
	assert.Equal(t, "0px", h)
}

func TestLayout_ExplicitHeightAndInheritance(t *testing.T) {
	doc, err := htmldom.ParseString(`<div id="outer" style="color: blue; font-size: 10px"><span id="inner">abc</span></div>`)
	require.NoError(t, err)
	inner := doc.GetElementByID("inner")

	c, _ := inner.ComputedStyle("color")
	assert.Equal(t, "blue", c)
	h, _ := inner.ComputedStyle("height")
	assert.Equal(t, "12px", h)

	inner.SetInlineStyle("height", "33px")
	h, _ = inner.ComputedStyle("height")
	assert.Equal(t, "33px", h)
	inner.RemoveInlineStyle("height")
	_, ok := inner.InlineStyle("height")
	assert.False(t, ok)
}

func TestEffects_OverrideInline(t *testing.T) {
	doc, err := htmldom.ParseString(`<div id="box" style="height: 10px; opacity: 0.5"></div>`)
	require.NoError(t, err)
	box := doc.GetElementByID("box")

	e := staticEffect{"height": "70px"}
	detachFirst := box.AttachEffect(e)
	detachSecond := box.AttachEffect(e)
	assert.Equal(t, 2, box.Effects())

	h, _ := box.ComputedStyle("height")
	assert.Equal(t, "70px", h)
	op, _ := box.ComputedStyle("opacity")
	assert.Equal(t, "0.5", op)

	detachFirst()
	detachFirst()
	assert.Equal(t, 1, box.Effects())
	h, _ = box.ComputedStyle("height")
	assert.Equal(t, "70px", h)

	detachSecond()
	h, _ = box.ComputedStyle("height")
	assert.Equal(t, "10px", h)
	assert.Equal(t, 0, box.Effects())
}

func TestParse_UnterminatedDeclarations(t *testing.T) {
	doc, err := htmldom.ParseString(`<div id="box" style="line-height:20px"><div>a</div></div>`)
	require.NoError(t, err)
	box := doc.GetElementByID("box")

	v, ok := box.InlineStyle("line-height")
	require.True(t, ok)
	assert.Equal(t, "20px", v)
	h, err := box.ComputedStyle("height")
	require.NoError(t, err)
	assert.Equal(t, "20px", h)

	tests := []struct {
		attr string
		want domain.StyleMap
	}{
		{"height: 0px", domain.StyleMap{"height": "0px"}},
		{"height: 0px; line-height: 20px", domain.StyleMap{"height": "0px", "line-height": "20px"}},
		{"  opacity: 0.5 ;  ", domain.StyleMap{"opacity": "0.5"}},
		{"", domain.StyleMap{}},
	}
	for _, tt := range tests {
		t.Run(tt.attr, func(t *testing.T) {
			require.NoError(t, box.SetAttr("style", tt.attr))
			for prop, want := range tt.want {
				got, ok := box.InlineStyle(prop)
				assert.True(t, ok, prop)
				assert.Equal(t, want, got, prop)
			}
			_, ok := box.InlineStyle("width")
			assert.False(t, ok)
		})
	}
}

func TestDetached(t *testing.T) {
	doc := htmldom.NewDocument()
	el := doc.CreateElement("div")

	assert.False(t, el.IsConnected())
	_, err := el.ComputedStyle("height")
	assert.ErrorIs(t, err, domain.ErrDetached)

	require.NoError(t, doc.Body().AppendChild(el))
	assert.True(t, el.IsConnected())
}

func TestStructural_Errors(t *testing.T) {
	doc := htmldom.NewDocument()
	other := htmldom.NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("div")
	require.NoError(t, parent.AppendChild(child))

	assert.ErrorIs(t, parent.AppendChild(other.CreateElement("div")), domain.ErrElementUnsupported)
	assert.Error(t, child.AppendChild(parent), "cycles are rejected")
	assert.Error(t, doc.Body().RemoveChild(child), "not a direct child")
}

func TestRender(t *testing.T) {
	doc, err := htmldom.ParseString(`<div id="box" class="a">hi</div>`)
	require.NoError(t, err)
	box := doc.GetElementByID("box")
	box.SetInlineStyle("height", "5px")

	assert.Equal(t, `<div id="box" class="a" style="height: 5px;">hi</div>`, doc.String())
	assert.Equal(t, "height: 5px;", box.Attr("style"))
	assert.Equal(t, "a", box.Attr("class"))
}

func TestAppendHTML(t *testing.T) {
	doc, err := htmldom.ParseString(`<ul id="list" style="line-height: 10px"><li>a</li></ul>`)
	require.NoError(t, err)
	list := doc.GetElementByID("list")

	require.NoError(t, list.AppendHTML(`<li id="b" style="color: red">b</li><li>c</li>`))

	assert.Len(t, list.Children(), 3)
	b := doc.GetElementByID("b")
	require.NotNil(t, b)
	v, _ := b.InlineStyle("color")
	assert.Equal(t, "red", v)

	h, err := list.ComputedStyle("height")
	require.NoError(t, err)
	assert.Equal(t, "30px", h)
}
