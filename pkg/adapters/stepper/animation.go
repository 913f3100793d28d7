package stepper

import (
	"time"

	"github.com/aretw0/kinetic/internal/interpolate"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

type inlineValue struct {
	value string
	set   bool
}

// Animation is the native handle of one frame-stepped animation.
type Animation struct {
	scheduler ports.FrameScheduler
	el        ports.Element
	timeline  domain.Timeline
	original  map[string]inlineValue

	status   domain.PlayerStatus
	position float64
	start    time.Time
	anchored bool
	cancel   func()
	written  bool
	frames   int

	doneFired bool
	onDone    []func()
	onDestroy []func()
}

var _ ports.Player = (*Animation)(nil)

// Frames returns how many frame callbacks advanced the animation.
func (a *Animation) Frames() int {
	return a.frames
}

// Timeline returns the animated timeline.
func (a *Animation) Timeline() domain.Timeline {
	return a.timeline
}

// Status returns the playback status.
func (a *Animation) Status() domain.PlayerStatus {
	return a.status
}

// Position returns the position reached by the last frame or scrub.
func (a *Animation) Position() float64 {
	return a.position
}

// Snapshot samples the timeline at the current position.
func (a *Animation) Snapshot() domain.StyleMap {
	return interpolate.Sample(a.timeline, a.position)
}

// Play starts or resumes stepping. A finished animation restarts from the beginning.
func (a *Animation) Play() {
	switch a.status {
	case domain.StatusDestroyed, domain.StatusRunning:
		return
	case domain.StatusFinished:
		a.position = 0
	}

	a.status = domain.StatusRunning
	if a.timeline.Duration <= 0 {
		a.Finish()
		return
	}
	a.apply()
	a.anchored = false
	a.request()
}

// Pause stops stepping at the current position.
func (a *Animation) Pause() {
	switch a.status {
	case domain.StatusPending, domain.StatusRunning:
		a.stop()
		a.status = domain.StatusPaused
	}
}

// SetPosition scrubs to p and writes the sampled styles. Scrubbing a finished
// animation leaves it paused.
func (a *Animation) SetPosition(p float64) {
	if a.status == domain.StatusDestroyed {
		return
	}
	a.position = interpolate.Clamp(p)
	a.anchored = false
	if a.status == domain.StatusFinished {
		a.status = domain.StatusPaused
	}
	a.apply()
}

// Finish jumps to the end, restores the overwritten inline styles and fires the done
// callbacks once.
func (a *Animation) Finish() {
	if a.status == domain.StatusDestroyed || a.status == domain.StatusFinished {
		return
	}
	a.stop()
	a.position = 1
	a.status = domain.StatusFinished
	a.restore()

	if a.doneFired {
		return
	}
	a.doneFired = true
	for _, fn := range a.onDone {
		fn()
	}
}

// Destroy stops stepping and restores the overwritten inline styles. It is idempotent.
func (a *Animation) Destroy() {
	if a.status == domain.StatusDestroyed {
		return
	}
	a.stop()
	a.status = domain.StatusDestroyed
	a.restore()
	for _, fn := range a.onDestroy {
		fn()
	}
}

// OnDone registers a callback fired when the animation first finishes.
func (a *Animation) OnDone(fn func()) {
	a.onDone = append(a.onDone, fn)
}

// OnDestroy registers a callback fired when the animation is destroyed.
func (a *Animation) OnDestroy(fn func()) {
	a.onDestroy = append(a.onDestroy, fn)
}

func (a *Animation) step(now time.Time) {
	a.cancel = nil
	if a.status != domain.StatusRunning {
		return
	}
	a.frames++

	if !a.anchored {
		a.start = now.Add(-time.Duration(a.position * float64(a.timeline.Duration)))
		a.anchored = true
	}
	a.position = interpolate.Clamp(float64(now.Sub(a.start)) / float64(a.timeline.Duration))

	if a.position >= 1 {
		a.Finish()
		return
	}
	a.apply()
	a.request()
}

func (a *Animation) request() {
	a.cancel = a.scheduler.RequestFrame(a.step)
}

func (a *Animation) stop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Animation) apply() {
	for prop, v := range a.Snapshot() {
		a.el.SetInlineStyle(prop, v)
	}
	a.written = true
}

func (a *Animation) restore() {
	if !a.written {
		return
	}
	for prop, orig := range a.original {
		if orig.set {
			a.el.SetInlineStyle(prop, orig.value)
		} else {
			a.el.RemoveInlineStyle(prop)
		}
	}
	a.written = false
}
