package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/kinetic/internal/runtime"
	"github.com/aretw0/kinetic/pkg/adapters/memory"
	"github.com/aretw0/kinetic/pkg/adapters/noop"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_DetachedFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewStyleCache()
	require.NoError(t, cache.Store(ctx, "box", domain.StyleMap{"height": "42px"}))

	var events []*domain.FallbackEvent
	e := runtime.NewEngine(noop.New(),
		runtime.WithStyleCache(cache),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnResolveFallback: func(_ context.Context, ev *domain.FallbackEvent) { events = append(events, ev) },
		}))

	doc := parse(t, ``)
	box := doc.CreateElement("div")
	require.NoError(t, box.SetAttr("id", "box"))

	trig := buildTrigger(t, dsl.NewTrigger("t").
		Transition("* => *").
		Style(dsl.Styles{"height": "!"}).
		Animate(100, dsl.Styles{"height": "*"}).
		Trigger())

	require.NoError(t, e.Register(ctx, box, trig, "a", "b"))
	assert.NotPanics(t, func() { e.Flush(ctx) })

	require.Len(t, e.Players(), 1)
	tl := e.Players()[0].Timeline()
	assert.Equal(t, "42px", tl.First()["height"])
	assert.Equal(t, "42px", tl.Final()["height"])

	require.Len(t, events, 2)
	assert.Equal(t, domain.PreStyle, events[0].Token)
	assert.Equal(t, domain.AutoStyle, events[1].Token)
	for _, ev := range events {
		assert.True(t, ev.Cached)
		assert.ErrorIs(t, ev.Err, domain.ErrDetached)
		assert.Equal(t, "box", ev.ElementID)
	}
}

func TestResolver_NeverCapturedUsesLiteralOrDrops(t *testing.T) {
	ctx := context.Background()
	var events []*domain.FallbackEvent
	e := runtime.NewEngine(noop.New(), runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnResolveFallback: func(_ context.Context, ev *domain.FallbackEvent) { events = append(events, ev) },
	}))

	doc := parse(t, ``)
	el := doc.CreateElement("div")

	trig := buildTrigger(t, dsl.NewTrigger("t").
		Transition("* => *").
		Style(dsl.Styles{"height": "!"}).
		Animate(100, dsl.Styles{"height": "10px", "width": "*"}).
		Trigger())

	require.NoError(t, e.Register(ctx, el, trig, "a", "b"))
	e.Flush(ctx)

	require.Len(t, e.Players(), 1)
	tl := e.Players()[0].Timeline()
	assert.Equal(t, []string{"height"}, tl.Properties(), "width has no fallback and is not animated")
	assert.Equal(t, "10px", tl.First()["height"])

	assert.Len(t, events, 3)
	for _, ev := range events {
		assert.False(t, ev.Cached)
	}
}

func expandTrigger(t *testing.T) *domain.Trigger {
	return buildTrigger(t, dsl.NewTrigger("expand").
		State("closed", dsl.Styles{"height": "0px"}).
		State("open", dsl.Styles{"height": "*", "background-color": "red"}).
		Transition("closed => open").Animate(100, nil).
		Trigger())
}

func TestResolver_ScopedMeasurementRestores(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newWebEngine()
	doc := parse(t, `<div id="box" style="height: 0px; line-height: 20px"></div>`)
	box := doc.GetElementByID("box")

	previewed := 0
	preview := func() (func(), error) {
		previewed++
		child := doc.CreateElement("p")
		child.SetText("measured")
		if err := box.AppendChild(child); err != nil {
			return nil, err
		}
		return func() { _ = box.RemoveChild(child) }, nil
	}

	require.NoError(t, e.Register(ctx, box, expandTrigger(t), "closed", "open", runtime.WithPreview(preview)))
	e.Flush(ctx)

	assert.Equal(t, 1, previewed)
	assert.Empty(t, box.Children(), "preview is reverted")
	v, _ := box.InlineStyle("height")
	assert.Equal(t, "0px", v, "erased source styles are restored")
	_, ok := box.InlineStyle("background-color")
	assert.False(t, ok, "destination styles are only applied while measuring")

	require.Len(t, e.Players(), 1)
	tl := e.Players()[0].Timeline()
	assert.Equal(t, domain.StyleMap{"height": "0px", "background-color": "transparent"}, tl.First())
	assert.Equal(t, domain.StyleMap{"height": "20px", "background-color": "red"}, tl.Final())
}

func TestResolver_PreviewErrorRestoresAndDegrades(t *testing.T) {
	ctx := context.Background()
	fallbacks := 0
	e, _, _ := newWebEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnResolveFallback: func(context.Context, *domain.FallbackEvent) { fallbacks++ },
	}))
	doc := parse(t, `<div id="box" style="height: 0px"></div>`)
	box := doc.GetElementByID("box")

	preview := func() (func(), error) { return nil, errors.New("layout unavailable") }

	require.NoError(t, e.Register(ctx, box, expandTrigger(t), "closed", "open", runtime.WithPreview(preview)))
	e.Flush(ctx)

	assert.Equal(t, 1, fallbacks)
	assert.Equal(t, domain.StyleMap{"height": "0px"}, box.InlineStyles())

	require.Len(t, e.Players(), 1)
	assert.Equal(t, "0px", e.Players()[0].Timeline().Final()["height"], "first literal of the timeline")
}

func TestResolver_PanicRestores(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newWebEngine()
	doc := parse(t, `<div id="box" style="height: 0px"></div>`)
	box := doc.GetElementByID("box")

	preview := func() (func(), error) { panic("boom") }

	require.NoError(t, e.Register(ctx, box, expandTrigger(t), "closed", "open", runtime.WithPreview(preview)))
	assert.Panics(t, func() { e.Flush(ctx) })
	assert.Equal(t, domain.StyleMap{"height": "0px"}, box.InlineStyles())
}

func TestResolver_CachesObservedValues(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewStyleCache()
	e, _, _ := newWebEngine(runtime.WithStyleCache(cache))
	doc := parse(t, `<div id="box" style="height: 30px"></div>`)
	box := doc.GetElementByID("box")

	trig := buildTrigger(t, dsl.NewTrigger("t").
		Transition("* => *").
		Animate(100, dsl.Styles{"height": "*", "opacity": "0"}).
		Trigger())

	require.NoError(t, e.Register(ctx, box, trig, "a", "b"))
	e.Flush(ctx)

	cached, err := cache.Load(ctx, "box")
	require.NoError(t, err)
	assert.Equal(t, "30px", cached["height"])
	assert.Equal(t, "1", cached["opacity"])
}
