package ports

import "time"

// Clock is the time source of clock-driven animations.
type Clock interface {
	Now() time.Time
}

// FrameScheduler delivers frame callbacks to manually stepped animations.
type FrameScheduler interface {
	// RequestFrame schedules fn for the next frame. The returned func cancels it.
	RequestFrame(fn func(now time.Time)) (cancel func())
}
