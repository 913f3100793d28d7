package domain

import "time"

// StepKind identifies the type of a Step.
type StepKind string

const (
	StepStyle   StepKind = "style"
	StepAnimate StepKind = "animate"
)

// Timing describes the temporal shape of an animate step.
type Timing struct {
	Duration time.Duration `json:"duration"`
	Delay    time.Duration `json:"delay,omitempty"`
	Easing   string        `json:"easing,omitempty"`
}

// Total is the delay plus the duration.
func (t Timing) Total() time.Duration {
	return t.Delay + t.Duration
}

// KeyframeSpec is a declared keyframe inside an animate step.
// A nil Offset is distributed evenly across the segment.
type KeyframeSpec struct {
	Offset *float64 `json:"offset,omitempty"`
	Styles StyleMap `json:"styles"`
}

// Step is one entry of a transition's step sequence.
//
// A style step carries Styles. An animate step carries Timing and targets either
// Styles or Keyframes (never both).
type Step struct {
	Kind      StepKind       `json:"kind"`
	Styles    StyleMap       `json:"styles,omitempty"`
	Timing    Timing         `json:"timing,omitempty"`
	Keyframes []KeyframeSpec `json:"keyframes,omitempty"`
}

// StyleStep builds a style step.
func StyleStep(styles StyleMap) Step {
	return Step{Kind: StepStyle, Styles: styles}
}

// AnimateStep builds an animate step targeting a style map (which may be nil).
func AnimateStep(timing Timing, target StyleMap) Step {
	return Step{Kind: StepAnimate, Timing: timing, Styles: target}
}
