/*
Package domain contains the core domain models of the Kinetic animation engine.

It defines the declarative vocabulary (triggers, states, transitions and steps), the
compiled output (timelines of keyframes) and the events emitted while players run.
This package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Trigger: a named animation state machine bound to an element.
  - Transition: a (from, to) matcher paired with an ordered Step sequence.
  - Step: a style snapshot or an animate call (timing + target style or keyframes).
  - Timeline: compiled keyframes with normalized offsets in [0, 1].
  - StyleMap: CSS property to value mapping, possibly holding the wildcard tokens
    AutoStyle ("*") and PreStyle ("!").
*/
package domain
