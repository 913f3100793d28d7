package stepper

import (
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Name identifies the driver.
const Name = "stepper"

// Driver creates frame-stepped animations.
type Driver struct {
	scheduler ports.FrameScheduler
}

var _ ports.Driver = (*Driver)(nil)

// New creates a driver on top of a frame scheduler. A nil scheduler makes the driver
// unavailable.
func New(scheduler ports.FrameScheduler) *Driver {
	return &Driver{scheduler: scheduler}
}

// Name returns "stepper".
func (d *Driver) Name() string {
	return Name
}

// IsAvailable reports whether a frame scheduler is configured.
func (d *Driver) IsAvailable() bool {
	return d.scheduler != nil
}

// Create binds the timeline to the element. Nothing is written until the animation is
// played or scrubbed.
func (d *Driver) Create(el ports.Element, timeline domain.Timeline) (ports.Player, error) {
	if err := timeline.Validate(); err != nil {
		return nil, err
	}

	a := &Animation{
		scheduler: d.scheduler,
		el:        el,
		timeline:  timeline,
		status:    domain.StatusPending,
		original:  make(map[string]inlineValue),
	}
	for _, prop := range timeline.Properties() {
		v, ok := el.InlineStyle(prop)
		a.original[prop] = inlineValue{value: v, set: ok}
	}
	return a, nil
}
