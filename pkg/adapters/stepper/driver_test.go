package stepper_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kinetic/pkg/adapters/htmldom"
	"github.com/aretw0/kinetic/pkg/adapters/stepper"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBox(t *testing.T) *htmldom.Node {
	t.Helper()
	doc, err := htmldom.ParseString(`<div id="box" style="opacity: 0.3"></div>`)
	require.NoError(t, err)
	return doc.GetElementByID("box")
}

func TestDriver_Contract(t *testing.T) {
	d := stepper.New(stepper.NewFrameQueue())
	ports.RunDriverContract(t, d, func() ports.Element { return newBox(t) })
}

func TestDriver_Unavailable(t *testing.T) {
	assert.False(t, stepper.New(nil).IsAvailable())
}

func TestAnimation_Frames(t *testing.T) {
	q := stepper.NewFrameQueue()
	d := stepper.New(q)
	box := newBox(t)

	p, err := d.Create(box, ports.ContractTimeline())
	require.NoError(t, err)
	_, ok := box.InlineStyle("height")
	assert.False(t, ok, "nothing is written before play")

	done := 0
	p.OnDone(func() { done++ })
	p.Play()
	assert.Equal(t, 1, q.Len())

	t0 := time.Unix(100, 0)
	q.Tick(t0)
	v, _ := box.InlineStyle("height")
	assert.Equal(t, "0px", v)

	q.Tick(t0.Add(400 * time.Millisecond))
	assert.InDelta(t, 0.4, p.Position(), 1e-9)
	v, _ = box.InlineStyle("height")
	assert.Equal(t, "40px", v)

	p.Pause()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Tick(t0.Add(time.Hour)))

	p.Play()
	q.Tick(t0.Add(2 * time.Hour))
	q.Tick(t0.Add(2*time.Hour + 600*time.Millisecond))

	assert.Equal(t, domain.StatusFinished, p.Status())
	assert.Equal(t, 1, done)
	assert.Equal(t, 4, p.(*stepper.Animation).Frames())

	_, ok = box.InlineStyle("height")
	assert.False(t, ok, "finished animations restore inline styles")
	v, _ = box.InlineStyle("opacity")
	assert.Equal(t, "0.3", v)
}

func TestAnimation_DestroyRestores(t *testing.T) {
	q := stepper.NewFrameQueue()
	box := newBox(t)

	p, err := stepper.New(q).Create(box, ports.ContractTimeline())
	require.NoError(t, err)

	p.SetPosition(0.5)
	v, _ := box.InlineStyle("opacity")
	assert.Equal(t, "0.5", v)

	p.Play()
	p.Destroy()

	assert.Equal(t, 0, q.Len(), "pending frame is cancelled")
	v, _ = box.InlineStyle("opacity")
	assert.Equal(t, "0.3", v)
	_, ok := box.InlineStyle("height")
	assert.False(t, ok)
}

func TestFrameQueue_DefersNestedRequests(t *testing.T) {
	q := stepper.NewFrameQueue()
	calls := 0
	var again func(time.Time)
	again = func(time.Time) {
		calls++
		q.RequestFrame(again)
	}
	q.RequestFrame(again)

	assert.Equal(t, 1, q.Tick(time.Now()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, q.Len())

	cancel := q.RequestFrame(func(time.Time) { calls += 100 })
	cancel()
	assert.Equal(t, 1, q.Tick(time.Now()))
	assert.Equal(t, 2, calls)
}

func TestFrameQueue_RunTicksUntilCancelled(t *testing.T) {
	q := stepper.NewFrameQueue()
	ticked := make(chan struct{})
	q.RequestFrame(func(time.Time) { close(ticked) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		q.Run(ctx, time.Millisecond)
		close(done)
	}()

	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("frame callback not run")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
