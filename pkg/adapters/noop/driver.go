// Package noop is the driver for headless execution: every animation completes as
// soon as it is played and the element is never touched.
package noop

import (
	"github.com/aretw0/kinetic/internal/interpolate"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Name identifies the driver.
const Name = "noop"

// Driver creates animations that finish on play. It is always available.
type Driver struct{}

var _ ports.Driver = Driver{}

// New returns the no-op driver.
func New() Driver {
	return Driver{}
}

// Name returns "noop".
func (Driver) Name() string {
	return Name
}

// IsAvailable always reports true.
func (Driver) IsAvailable() bool {
	return true
}

// Create returns a pending animation.
func (Driver) Create(_ ports.Element, timeline domain.Timeline) (ports.Player, error) {
	if err := timeline.Validate(); err != nil {
		return nil, err
	}
	return &Animation{timeline: timeline, status: domain.StatusPending}, nil
}

// Animation is the native handle of the no-op driver.
type Animation struct {
	timeline  domain.Timeline
	status    domain.PlayerStatus
	position  float64
	doneFired bool
	onDone    []func()
	onDestroy []func()
}

var _ ports.Player = (*Animation)(nil)

func (a *Animation) Timeline() domain.Timeline   { return a.timeline }
func (a *Animation) Status() domain.PlayerStatus { return a.status }
func (a *Animation) Position() float64           { return a.position }

// Snapshot samples the timeline even though nothing is rendered.
func (a *Animation) Snapshot() domain.StyleMap {
	return interpolate.Sample(a.timeline, a.position)
}

// Play finishes the animation.
func (a *Animation) Play() {
	a.Finish()
}

func (a *Animation) Pause() {
	if a.status == domain.StatusPending {
		a.status = domain.StatusPaused
	}
}

func (a *Animation) SetPosition(p float64) {
	if a.status != domain.StatusDestroyed {
		a.position = interpolate.Clamp(p)
	}
}

func (a *Animation) Finish() {
	if a.status == domain.StatusDestroyed || a.status == domain.StatusFinished {
		return
	}
	a.position = 1
	a.status = domain.StatusFinished
	if a.doneFired {
		return
	}
	a.doneFired = true
	for _, fn := range a.onDone {
		fn()
	}
}

func (a *Animation) Destroy() {
	if a.status == domain.StatusDestroyed {
		return
	}
	a.status = domain.StatusDestroyed
	for _, fn := range a.onDestroy {
		fn()
	}
}

func (a *Animation) OnDone(fn func())    { a.onDone = append(a.onDone, fn) }
func (a *Animation) OnDestroy(fn func()) { a.onDestroy = append(a.onDestroy, fn) }
