package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/kinetic/internal/compiler"
	"github.com/aretw0/kinetic/pkg/domain"
)

// TriggerBuilder provides a fluent API for configuring a trigger.
type TriggerBuilder struct {
	name        string
	states      map[string]domain.State
	transitions []*TransitionBuilder
}

// NewTrigger starts a standalone trigger declaration.
func NewTrigger(name string) *TriggerBuilder {
	return &TriggerBuilder{
		name:   name,
		states: make(map[string]domain.State),
	}
}

// State declares the styles an element holds while in the named state.
// Use "*" as the name for styles shared by every undeclared state.
func (t *TriggerBuilder) State(name string, styles Styles) *TriggerBuilder {
	t.states[name] = domain.State{Name: name, Styles: domain.NewStyleMap(styles)}
	return t
}

// Transition adds a transition for the given expression. Transitions are matched in
// declaration order.
func (t *TriggerBuilder) Transition(expr string) *TransitionBuilder {
	tb := &TransitionBuilder{trigger: t, expr: expr}
	t.transitions = append(t.transitions, tb)
	return tb
}

// Build validates the declaration and returns the trigger.
func (t *TriggerBuilder) Build() (*domain.Trigger, error) {
	if t.name == "" {
		return nil, fmt.Errorf("trigger missing name")
	}

	trig := &domain.Trigger{Name: t.name, States: make(map[string]domain.State, len(t.states))}
	for name, s := range t.states {
		trig.States[name] = s
	}

	var errs []error
	for i, tb := range t.transitions {
		tr, err := tb.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("trigger %q transition %d: %w", t.name, i, err))
			continue
		}
		trig.Transitions = append(trig.Transitions, tr)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return trig, nil
}

// TransitionBuilder accumulates the steps of a single transition.
type TransitionBuilder struct {
	trigger *TriggerBuilder
	expr    string
	steps   []domain.Step
	err     error
}

// Style appends a style step, applied instantly at the current point of the sequence.
func (tb *TransitionBuilder) Style(styles Styles) *TransitionBuilder {
	tb.steps = append(tb.steps, domain.StyleStep(domain.NewStyleMap(styles)))
	return tb
}

// Animate appends an animate step towards target, which may be nil to animate towards
// the destination state's styles. Timing accepts the same values as the YAML format:
// milliseconds, a time.Duration, or a string such as "300ms 100ms ease-in".
func (tb *TransitionBuilder) Animate(timing any, target Styles) *TransitionBuilder {
	t, err := compiler.ParseTiming(timing)
	if err != nil {
		tb.fail(err)
		return tb
	}
	tb.steps = append(tb.steps, domain.AnimateStep(t, domain.NewStyleMap(target)))
	return tb
}

// Keyframes appends an animate step over explicit keyframes.
func (tb *TransitionBuilder) Keyframes(timing any, frames ...domain.KeyframeSpec) *TransitionBuilder {
	t, err := compiler.ParseTiming(timing)
	if err != nil {
		tb.fail(err)
		return tb
	}
	step := domain.AnimateStep(t, nil)
	for _, f := range frames {
		step.Keyframes = append(step.Keyframes, domain.KeyframeSpec{Offset: f.Offset, Styles: domain.NewStyleMap(f.Styles)})
	}
	tb.steps = append(tb.steps, step)
	return tb
}

// Transition declares the next transition of the same trigger.
func (tb *TransitionBuilder) Transition(expr string) *TransitionBuilder {
	return tb.trigger.Transition(expr)
}

// Trigger returns the owning trigger builder.
func (tb *TransitionBuilder) Trigger() *TriggerBuilder {
	return tb.trigger
}

func (tb *TransitionBuilder) fail(err error) {
	if tb.err == nil {
		tb.err = err
	}
}

func (tb *TransitionBuilder) build() (domain.Transition, error) {
	if tb.err != nil {
		return domain.Transition{}, tb.err
	}
	matchers, err := compiler.ParseTransitionExpr(tb.expr)
	if err != nil {
		return domain.Transition{}, err
	}
	if _, err := compiler.Compile(tb.steps, compiler.Options{}); err != nil {
		return domain.Transition{}, err
	}
	return domain.Transition{Expr: tb.expr, Matchers: matchers, Steps: tb.steps}, nil
}

// Frame declares a keyframe whose offset is distributed evenly.
func Frame(styles Styles) domain.KeyframeSpec {
	return domain.KeyframeSpec{Styles: styles}
}

// FrameAt declares a keyframe at an explicit offset in [0, 1].
func FrameAt(offset float64, styles Styles) domain.KeyframeSpec {
	return domain.KeyframeSpec{Offset: &offset, Styles: styles}
}
