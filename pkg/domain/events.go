package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventFlush           EventType = "flush"
	EventPlayerCreate    EventType = "player_create"
	EventPlayerDone      EventType = "player_done"
	EventPlayerDestroy   EventType = "player_destroy"
	EventResolveFallback EventType = "resolve_fallback"
)

// AnimationPhase is the phase reported to trigger listeners.
type AnimationPhase string

const (
	PhaseStart AnimationPhase = "start"
	PhaseDone  AnimationPhase = "done"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// FlushEvent summarizes one flush.
type FlushEvent struct {
	EventBase
	Requests int           `json:"requests"`
	Players  int           `json:"players"`
	Skipped  int           `json:"skipped"`
	Elapsed  time.Duration `json:"elapsed"`
}

// PlayerEvent describes a player lifecycle change.
type PlayerEvent struct {
	EventBase
	ElementID string `json:"element_id"`
	Trigger   string `json:"trigger"`
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	Driver    string `json:"driver"`
}

// FallbackEvent reports a wildcard that could not be measured and was degraded.
type FallbackEvent struct {
	EventBase
	ElementID string `json:"element_id"`
	Property  string `json:"property"`
	Token     string `json:"token"`
	Value     string `json:"value"`
	Cached    bool   `json:"cached"`
	Err       error  `json:"-"`
}

// AnimationEvent is delivered to trigger listeners.
type AnimationEvent struct {
	ElementID   string         `json:"element_id"`
	TriggerName string         `json:"trigger"`
	FromState   string         `json:"from_state"`
	ToState     string         `json:"to_state"`
	Phase       AnimationPhase `json:"phase"`
	TotalTime   time.Duration  `json:"total_time"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnFlush           func(context.Context, *FlushEvent)
	OnPlayerCreate    func(context.Context, *PlayerEvent)
	OnPlayerDone      func(context.Context, *PlayerEvent)
	OnPlayerDestroy   func(context.Context, *PlayerEvent)
	OnResolveFallback func(context.Context, *FallbackEvent)
}
