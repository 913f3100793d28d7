package webanim

import (
	"time"

	"github.com/aretw0/kinetic/internal/interpolate"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Animation is the native handle of one clock-driven animation. It is also the
// ports.Effect composited on its element.
type Animation struct {
	driver   *Driver
	host     ports.EffectHost
	timeline domain.Timeline

	status   domain.PlayerStatus
	position float64
	start    time.Time
	detach   func()

	doneFired bool
	onDone    []func()
	onDestroy []func()
}

var (
	_ ports.Player = (*Animation)(nil)
	_ ports.Effect = (*Animation)(nil)
)

// Keyframes returns the keyframes in the Web Animations shape.
func (a *Animation) Keyframes() []map[string]any {
	return a.timeline.Flatten()
}

// CurrentTime returns the elapsed animation time.
func (a *Animation) CurrentTime() time.Duration {
	return time.Duration(a.Position() * float64(a.timeline.Duration))
}

// PlayState returns the Web Animations play state.
func (a *Animation) PlayState() string {
	switch a.status {
	case domain.StatusRunning:
		return "running"
	case domain.StatusPaused:
		return "paused"
	case domain.StatusFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Timeline returns the animated timeline.
func (a *Animation) Timeline() domain.Timeline {
	return a.timeline
}

// Status returns the playback status.
func (a *Animation) Status() domain.PlayerStatus {
	return a.status
}

// Position returns the normalized position, read from the clock while running.
func (a *Animation) Position() float64 {
	if a.status != domain.StatusRunning || a.timeline.Duration <= 0 {
		return a.position
	}
	elapsed := a.driver.clock.Now().Sub(a.start)
	return interpolate.Clamp(float64(elapsed) / float64(a.timeline.Duration))
}

// Sample renders the styles at the current position.
func (a *Animation) Sample() domain.StyleMap {
	return interpolate.Sample(a.timeline, a.Position())
}

// Snapshot is Sample.
func (a *Animation) Snapshot() domain.StyleMap {
	return a.Sample()
}

// Play starts or resumes the animation. A finished animation restarts from the beginning.
func (a *Animation) Play() {
	switch a.status {
	case domain.StatusDestroyed, domain.StatusRunning:
		return
	case domain.StatusFinished:
		a.position = 0
	}

	a.attach()
	a.status = domain.StatusRunning
	if a.timeline.Duration <= 0 {
		a.Finish()
		return
	}
	a.anchor()
}

// Pause freezes the animation at its current position.
func (a *Animation) Pause() {
	switch a.status {
	case domain.StatusPending, domain.StatusRunning:
		a.position = a.Position()
		a.status = domain.StatusPaused
	}
}

// SetPosition scrubs to p. Scrubbing a finished animation composites it again, paused.
func (a *Animation) SetPosition(p float64) {
	if a.status == domain.StatusDestroyed {
		return
	}
	a.position = interpolate.Clamp(p)
	switch a.status {
	case domain.StatusRunning:
		a.anchor()
	case domain.StatusFinished:
		a.status = domain.StatusPaused
		a.attach()
	}
}

// Finish jumps to the end, detaches the effect and fires the done callbacks once.
func (a *Animation) Finish() {
	if a.status == domain.StatusDestroyed || a.status == domain.StatusFinished {
		return
	}
	a.position = 1
	a.status = domain.StatusFinished
	a.release()

	if a.doneFired {
		return
	}
	a.doneFired = true
	for _, fn := range a.onDone {
		fn()
	}
}

// Destroy cancels the animation. It is idempotent.
func (a *Animation) Destroy() {
	if a.status == domain.StatusDestroyed {
		return
	}
	a.status = domain.StatusDestroyed
	a.release()
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

func (a *Animation) anchor() {
	offset := time.Duration(a.position * float64(a.timeline.Duration))
	a.start = a.driver.clock.Now().Add(-offset)
}

// attach composites the effect and lets Update see the animation.
func (a *Animation) attach() {
	if a.detach == nil {
		a.detach = a.host.AttachEffect(a)
	}
	a.driver.track(a)
}

func (a *Animation) release() {
	if a.detach != nil {
		a.detach()
		a.detach = nil
	}
	a.driver.release(a)
}
