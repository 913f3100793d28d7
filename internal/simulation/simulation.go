// Package simulation runs a single state change of a trigger against an HTML fixture
// on a manual clock, recording the frames a driver renders.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/kinetic"
	"github.com/aretw0/kinetic/pkg/adapters/clock"
	"github.com/aretw0/kinetic/pkg/adapters/htmldom"
	"github.com/aretw0/kinetic/pkg/adapters/noop"
	"github.com/aretw0/kinetic/pkg/adapters/stepper"
	"github.com/aretw0/kinetic/pkg/adapters/webanim"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/observability"
	"github.com/aretw0/kinetic/pkg/ports"
)

const (
	// DefaultFrames is the number of frames sampled across the animation.
	DefaultFrames = 10
	// MaxFrames bounds the frames of one run. Larger requests are clamped.
	MaxFrames = 1000
)

// Scenario describes one state change and the host mutation that accompanies it.
type Scenario struct {
	Trigger   *domain.Trigger
	HTML      string
	ElementID string
	From      string
	To        string

	// SetStyles and AppendHTML are applied to the element after Register and before
	// Flush, the way a host renders the new state.
	SetStyles  map[string]string
	AppendHTML string

	// Driver is webanim, stepper or noop. Empty selects webanim.
	Driver string
	Frames int
	// Realtime plays a stepper animation on wall-clock frame ticks instead of the
	// manual clock. The run then lasts as long as the animation.
	Realtime bool
}

// Options carries the ambient collaborators of a run.
type Options struct {
	Logger *slog.Logger
	Hooks  domain.LifecycleHooks
	Cache  ports.StyleCache
}

// Frame is the style rendered at a point of the animation.
type Frame struct {
	At     time.Duration   `json:"at"`
	Styles domain.StyleMap `json:"styles"`
}

// Result is the outcome of a run. Timeline is nil when no rule animated the change.
type Result struct {
	Driver    string                 `json:"driver"`
	Timeline  *domain.Timeline       `json:"timeline,omitempty"`
	Frames    []Frame                `json:"frames,omitempty"`
	Fallbacks []domain.FallbackEvent `json:"fallbacks,omitempty"`
	Before    string                 `json:"before"`
	After     string                 `json:"after"`
}

type harness struct {
	clock   *clock.Manual
	queue   *stepper.FrameQueue
	web     *webanim.Driver
	driver  ports.Driver
	stepped bool
}

func newHarness(name string) (*harness, error) {
	h := &harness{
		clock: clock.NewManual(time.Unix(0, 0)),
		queue: stepper.NewFrameQueue(),
	}
	switch name {
	case "", webanim.Name:
		h.web = webanim.New(h.clock)
		h.driver = h.web
	case stepper.Name:
		h.driver = stepper.New(h.queue)
		h.stepped = true
	case noop.Name:
		h.driver = noop.New()
	default:
		return nil, fmt.Errorf("unknown driver %q", name)
	}
	return h, nil
}

// advance moves the clock and lets the driver observe the new time.
func (h *harness) advance(d time.Duration) {
	now := h.clock.Advance(d)
	switch {
	case h.stepped:
		h.queue.Tick(now)
	case h.web != nil:
		h.web.Update()
	}
}

// Run plays the scenario to completion.
func Run(ctx context.Context, sc Scenario, opts Options) (*Result, error) {
	if sc.Trigger == nil {
		return nil, fmt.Errorf("simulation: nil trigger")
	}
	doc, err := htmldom.ParseString(sc.HTML)
	if err != nil {
		return nil, err
	}
	el := doc.GetElementByID(sc.ElementID)
	if el == nil {
		return nil, fmt.Errorf("simulation: no element with id %q", sc.ElementID)
	}

	h, err := newHarness(sc.Driver)
	if err != nil {
		return nil, err
	}
	if sc.Realtime && !h.stepped {
		return nil, fmt.Errorf("simulation: realtime playback needs the %s driver", stepper.Name)
	}

	res := &Result{Driver: h.driver.Name(), Before: el.OuterHTML()}
	record := domain.LifecycleHooks{
		OnResolveFallback: func(_ context.Context, e *domain.FallbackEvent) {
			res.Fallbacks = append(res.Fallbacks, *e)
		},
	}

	engOpts := []kinetic.Option{
		kinetic.WithDriver(h.driver),
		kinetic.WithLifecycleHooks(observability.Merge(record, opts.Hooks)),
	}
	if opts.Logger != nil {
		engOpts = append(engOpts, kinetic.WithLogger(opts.Logger))
	}
	if opts.Cache != nil {
		engOpts = append(engOpts, kinetic.WithStyleCache(opts.Cache))
	}
	eng, err := kinetic.New(engOpts...)
	if err != nil {
		return nil, err
	}

	if err := eng.Register(ctx, el, sc.Trigger, sc.From, sc.To); err != nil {
		return nil, err
	}
	for prop, v := range sc.SetStyles {
		el.SetInlineStyle(domain.NormalizeProperty(prop), v)
	}
	if sc.AppendHTML != "" {
		if err := el.AppendHTML(sc.AppendHTML); err != nil {
			return nil, err
		}
	}
	eng.Flush(ctx)

	players := eng.Drain()
	if len(players) == 0 {
		res.After = el.OuterHTML()
		return res, nil
	}

	p := players[0]
	tl := p.Timeline()
	res.Timeline = &tl

	frames := clampFrames(sc.Frames)
	playback := play
	if sc.Realtime {
		playback = playRealtime
	}
	if err := playback(ctx, h, p, frames, res); err != nil {
		p.Destroy()
		return nil, err
	}
	res.After = el.OuterHTML()
	return res, nil
}

func clampFrames(frames int) int {
	switch {
	case frames <= 0:
		return DefaultFrames
	case frames > MaxFrames:
		return MaxFrames
	}
	return frames
}

func play(ctx context.Context, h *harness, p *kinetic.Player, frames int, res *Result) error {
	duration := p.Timeline().Duration

	// The first frame anchors a stepped animation at the current time.
	h.advance(0)
	res.Frames = append(res.Frames, Frame{At: 0, Styles: p.Snapshot()})

	step := duration / time.Duration(frames)
	for i := 1; i <= frames && step > 0; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.Status() == domain.StatusFinished {
			break
		}
		h.advance(step)
		res.Frames = append(res.Frames, Frame{At: time.Duration(i) * step, Styles: p.Snapshot()})
	}

	if p.Status() != domain.StatusFinished {
		p.Finish()
	}
	return nil
}

// playRealtime ticks the frame queue on a wall-clock interval and records a frame
// after every tick until the animation finishes. The player is only touched from
// the ticking goroutine while the queue runs.
func playRealtime(ctx context.Context, h *harness, p *kinetic.Player, frames int, res *Result) error {
	interval := p.Timeline().Duration / time.Duration(frames)
	if interval < time.Millisecond {
		interval = time.Millisecond
	}

	done := make(chan struct{})
	var first time.Time
	var record func(now time.Time)
	record = func(now time.Time) {
		if first.IsZero() {
			first = now
		}
		res.Frames = append(res.Frames, Frame{At: now.Sub(first), Styles: p.Snapshot()})
		if p.Status() == domain.StatusFinished {
			close(done)
			return
		}
		h.queue.RequestFrame(record)
	}
	h.queue.RequestFrame(record)

	runCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		h.queue.Run(runCtx, interval)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	cancel()
	<-stopped
	return err
}
