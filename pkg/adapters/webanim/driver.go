package webanim

import (
	"fmt"
	"slices"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Name identifies the driver.
const Name = "webanim"

// Driver creates clock-driven animations.
type Driver struct {
	clock  ports.Clock
	active []*Animation
}

var _ ports.Driver = (*Driver)(nil)

// New creates a driver on top of a clock. A nil clock makes the driver unavailable.
func New(clock ports.Clock) *Driver {
	return &Driver{clock: clock}
}

// Name returns "webanim".
func (d *Driver) Name() string {
	return Name
}

// IsAvailable reports whether a clock is configured.
func (d *Driver) IsAvailable() bool {
	return d.clock != nil
}

// Create binds the timeline to an element that can host effects.
func (d *Driver) Create(el ports.Element, timeline domain.Timeline) (ports.Player, error) {
	host, ok := el.(ports.EffectHost)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs an effect host, got %T", domain.ErrElementUnsupported, Name, el)
	}
	if err := timeline.Validate(); err != nil {
		return nil, err
	}

	a := &Animation{
		driver:   d,
		host:     host,
		timeline: timeline,
		status:   domain.StatusPending,
	}
	a.attach()
	return a, nil
}

// Update finishes every running animation whose end time has passed and returns how
// many finished.
func (d *Driver) Update() int {
	finished := 0
	for _, a := range slices.Clone(d.active) {
		if a.status == domain.StatusRunning && a.Position() >= 1 {
			a.Finish()
			finished++
		}
	}
	return finished
}

// Active returns the number of animations that are neither finished nor destroyed.
func (d *Driver) Active() int {
	return len(d.active)
}

func (d *Driver) track(a *Animation) {
	if !slices.Contains(d.active, a) {
		d.active = append(d.active, a)
	}
}

func (d *Driver) release(a *Animation) {
	d.active = slices.DeleteFunc(d.active, func(x *Animation) bool { return x == a })
}
