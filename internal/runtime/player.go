package runtime

import (
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Player is the engine-facing handle of one animation. It wraps the driver's native
// player and routes Destroy back through the engine.
type Player struct {
	engine   *Engine
	native   ports.Player
	element  ports.Element
	trigger  string
	from     string
	to       string
	timeline domain.Timeline
}

// GetRealPlayer exposes the driver-native handle.
func (p *Player) GetRealPlayer() ports.Player {
	return p.native
}

// Element returns the animated element.
func (p *Player) Element() ports.Element {
	return p.element
}

// TriggerName returns the trigger whose transition is animated.
func (p *Player) TriggerName() string {
	return p.trigger
}

// FromState returns the state the transition starts from.
func (p *Player) FromState() string {
	return p.from
}

// ToState returns the state the transition leads to.
func (p *Player) ToState() string {
	return p.to
}

// Timeline returns the resolved timeline.
func (p *Player) Timeline() domain.Timeline {
	return p.timeline
}

func (p *Player) Play()                       { p.native.Play() }
func (p *Player) Pause()                      { p.native.Pause() }
func (p *Player) Finish()                     { p.native.Finish() }
func (p *Player) SetPosition(pos float64)     { p.native.SetPosition(pos) }
func (p *Player) Position() float64           { return p.native.Position() }
func (p *Player) Status() domain.PlayerStatus { return p.native.Status() }
func (p *Player) Snapshot() domain.StyleMap   { return p.native.Snapshot() }
func (p *Player) OnDone(fn func())            { p.native.OnDone(fn) }
func (p *Player) OnDestroy(fn func())         { p.native.OnDestroy(fn) }

// Destroy releases the animation and removes the player from the engine. It is
// idempotent.
func (p *Player) Destroy() {
	p.engine.destroy(p)
}

func (p *Player) inFlight() bool {
	switch p.Status() {
	case domain.StatusPending, domain.StatusRunning, domain.StatusPaused:
		return true
	}
	return false
}

func (e *Engine) destroy(p *Player) {
	// The native OnDestroy callback registered at creation releases the player.
	p.native.Destroy()
}
