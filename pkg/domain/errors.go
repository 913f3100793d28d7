package domain

import "errors"

// ErrDetached is returned when an element is no longer part of a rendered tree and
// cannot be measured.
var ErrDetached = errors.New("element detached")

// ErrNoTransition is returned when no transition rule matches a state change.
var ErrNoTransition = errors.New("no matching transition")

// ErrDriverUnavailable is returned when no animation driver can be used.
var ErrDriverUnavailable = errors.New("animation driver unavailable")

// ErrElementUnsupported is returned by drivers that need a capability the element lacks.
var ErrElementUnsupported = errors.New("element does not support this driver")

// ErrInvalidExpression is returned for malformed transition expressions.
var ErrInvalidExpression = errors.New("invalid transition expression")

// ErrInvalidTiming is returned for malformed animate timings.
var ErrInvalidTiming = errors.New("invalid timing")

// ErrInvalidTimeline is returned when a timeline breaks its offset invariants.
var ErrInvalidTimeline = errors.New("invalid timeline")

// ErrUnknownTrigger is returned when a trigger name is not registered.
var ErrUnknownTrigger = errors.New("unknown trigger")
