package ports

import "github.com/aretw0/kinetic/pkg/domain"

// Driver is the capability contract of an animation backend.
// A driver is selected once, when the engine is constructed.
type Driver interface {
	// Name identifies the driver in logs and events.
	Name() string

	// IsAvailable reports whether the runtime supports this driver.
	IsAvailable() bool

	// Create binds a timeline to an element and returns a pending player.
	Create(el Element, timeline domain.Timeline) (Player, error)
}

// Player is the native handle of one animation instance bound to one element.
type Player interface {
	Play()
	Pause()
	// Finish jumps to offset 1, applies the final styles and fires the done callbacks.
	Finish()
	// Destroy releases the animation. Calling it more than once is a no-op.
	Destroy()

	// SetPosition moves the animation to a normalized position in [0, 1].
	SetPosition(p float64)
	Position() float64
	Status() domain.PlayerStatus

	// Snapshot returns the styles the animation currently renders.
	Snapshot() domain.StyleMap
	Timeline() domain.Timeline

	// OnDone registers a callback fired once when the animation finishes.
	OnDone(fn func())
	// OnDestroy registers a callback fired once when the animation is destroyed.
	OnDestroy(fn func())
}
