package runtime

import (
	"slices"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

type listener struct {
	elementID string
	trigger   string
	phase     domain.AnimationPhase
	fn        func(domain.AnimationEvent)
}

// Listen subscribes fn to the start or done phase of a trigger's animations on el.
// The returned func unsubscribes.
func (e *Engine) Listen(el ports.Element, triggerName string, phase domain.AnimationPhase, fn func(domain.AnimationEvent)) func() {
	l := &listener{elementID: el.ID(), trigger: triggerName, phase: phase, fn: fn}
	e.listeners = append(e.listeners, l)
	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(x *listener) bool { return x == l })
	}
}

func (e *Engine) notify(p *Player, phase domain.AnimationPhase) {
	ev := domain.AnimationEvent{
		ElementID:   p.element.ID(),
		TriggerName: p.trigger,
		FromState:   p.from,
		ToState:     p.to,
		Phase:       phase,
		TotalTime:   p.timeline.Duration,
	}
	for _, l := range slices.Clone(e.listeners) {
		if l.elementID == ev.ElementID && l.trigger == ev.TriggerName && l.phase == phase {
			l.fn(ev)
		}
	}
}
