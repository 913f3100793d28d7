package webanim_test

import (
	"testing"
	"time"

	"github.com/aretw0/kinetic/pkg/adapters/clock"
	"github.com/aretw0/kinetic/pkg/adapters/htmldom"
	"github.com/aretw0/kinetic/pkg/adapters/webanim"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bareElement struct{ ports.Element }

func newBox(t *testing.T) (*htmldom.Document, *htmldom.Node) {
	t.Helper()
	doc, err := htmldom.ParseString(`<div id="box" style="height: 5px"></div>`)
	require.NoError(t, err)
	return doc, doc.GetElementByID("box")
}

func TestDriver_Contract(t *testing.T) {
	d := webanim.New(clock.NewManual(time.Unix(0, 0)))
	ports.RunDriverContract(t, d, func() ports.Element {
		_, box := newBox(t)
		return box
	})
}

func TestDriver_Unavailable(t *testing.T) {
	assert.False(t, webanim.New(nil).IsAvailable())
}

func TestDriver_RequiresEffectHost(t *testing.T) {
	d := webanim.New(clock.System{})
	_, box := newBox(t)
	_, err := d.Create(bareElement{box}, ports.ContractTimeline())
	assert.ErrorIs(t, err, domain.ErrElementUnsupported)
}

func TestAnimation_ClockDriven(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	d := webanim.New(c)
	_, box := newBox(t)

	p, err := d.Create(box, ports.ContractTimeline())
	require.NoError(t, err)
	a := p.(*webanim.Animation)

	assert.Equal(t, "idle", a.PlayState())
	assert.Equal(t, []map[string]any{
		{"height": "0px", "opacity": "0", "offset": 0.0},
		{"height": "100px", "opacity": "1", "offset": 1.0},
	}, a.Keyframes())

	h, _ := box.ComputedStyle("height")
	assert.Equal(t, "0px", h, "pending animations fill backwards")

	done := 0
	a.OnDone(func() { done++ })
	a.Play()
	assert.Equal(t, "running", a.PlayState())

	c.Advance(250 * time.Millisecond)
	assert.InDelta(t, 0.25, a.Position(), 1e-9)
	assert.Equal(t, 250*time.Millisecond, a.CurrentTime())
	h, _ = box.ComputedStyle("height")
	assert.Equal(t, "25px", h)

	assert.Equal(t, 0, d.Update())

	a.Pause()
	c.Advance(time.Second)
	assert.InDelta(t, 0.25, a.Position(), 1e-9)

	a.Play()
	c.Advance(750 * time.Millisecond)
	assert.Equal(t, 1, d.Update())
	assert.Equal(t, 1, done)
	assert.Equal(t, "finished", a.PlayState())

	h, _ = box.ComputedStyle("height")
	assert.Equal(t, "5px", h, "finished animations hand back to inline styles")
	assert.Equal(t, 0, box.Effects())
	assert.Equal(t, 0, d.Active(), "finished animations leave the update list")
}

func TestAnimation_ScrubAfterFinish(t *testing.T) {
	d := webanim.New(clock.NewManual(time.Unix(0, 0)))
	_, box := newBox(t)

	p, err := d.Create(box, ports.ContractTimeline())
	require.NoError(t, err)
	p.Finish()
	assert.Equal(t, 0, box.Effects())
	assert.Equal(t, 0, d.Active())

	p.SetPosition(0.5)
	assert.Equal(t, domain.StatusPaused, p.Status())
	assert.Equal(t, 1, d.Active())
	h, _ := box.ComputedStyle("height")
	assert.Equal(t, "50px", h)
}

func TestAnimation_ZeroDurationFinishesOnPlay(t *testing.T) {
	d := webanim.New(clock.NewManual(time.Unix(0, 0)))
	_, box := newBox(t)

	tl := ports.ContractTimeline()
	tl.Duration = 0
	p, err := d.Create(box, tl)
	require.NoError(t, err)

	p.Play()
	assert.Equal(t, domain.StatusFinished, p.Status())
}

func TestAnimation_DestroyReleases(t *testing.T) {
	d := webanim.New(clock.NewManual(time.Unix(0, 0)))
	_, box := newBox(t)

	p, err := d.Create(box, ports.ContractTimeline())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Active())

	p.SetPosition(0.5)
	p.Destroy()

	assert.Equal(t, 0, d.Active())
	assert.Equal(t, 0, box.Effects())
	h, _ := box.ComputedStyle("height")
	assert.Equal(t, "5px", h)
}

func TestDriver_UpdateListDoesNotGrow(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	d := webanim.New(c)
	_, box := newBox(t)

	for i := 0; i < 5; i++ {
		p, err := d.Create(box, ports.ContractTimeline())
		require.NoError(t, err)
		p.Play()
		c.Advance(time.Second)
		assert.Equal(t, 1, d.Update())
		assert.Equal(t, 0, d.Active())
	}

	p, err := d.Create(box, ports.ContractTimeline())
	require.NoError(t, err)
	p.Play()
	c.Advance(time.Second)
	require.Equal(t, 1, d.Update())
	p.Play()
	assert.Equal(t, 1, d.Active(), "replaying a finished animation tracks it again")
}
