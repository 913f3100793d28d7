package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/kinetic/internal/compiler"
	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/pkg/adapters/memory"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Engine orchestrates animation requests: it queues registrations made during a
// rendering pass and realizes them into players on Flush.
//
// Engine is not safe for concurrent use and never starts goroutines.
type Engine struct {
	driver ports.Driver
	cache  ports.StyleCache
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	queue   []*request
	players []*Player
	// active holds every player that is not destroyed, including popped ones, so
	// that new transitions can overtake them.
	active    []*Player
	states    map[stateKey]string
	listeners []*listener
}

// EngineOption configures the runtime engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStyleCache sets the last-known style store. Defaults to an in-memory cache.
func WithStyleCache(cache ports.StyleCache) EngineOption {
	return func(e *Engine) {
		if cache != nil {
			e.cache = cache
		}
	}
}

// NewEngine creates an engine bound to an already selected driver.
func NewEngine(driver ports.Driver, opts ...EngineOption) *Engine {
	e := &Engine{
		driver: driver,
		cache:  memory.NewStyleCache(),
		logger: logging.NewNop(),
		states: make(map[stateKey]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Driver returns the driver the engine creates players with.
func (e *Engine) Driver() ports.Driver {
	return e.driver
}

// Register records a state change of trigger on el. The transition rule is matched
// and every "!" value is captured now, before the caller mutates the element for this
// change. Nothing is animated until Flush.
//
// A change to the same state is queued as a refresh of the state styles. A change no
// rule matches is queued too and applies the destination state styles without a player.
func (e *Engine) Register(ctx context.Context, el ports.Element, trigger *domain.Trigger, from, to string, opts ...RegisterOption) error {
	if el == nil {
		return fmt.Errorf("register: nil element")
	}
	if trigger == nil {
		return fmt.Errorf("register: nil trigger")
	}

	req := &request{
		element: el,
		trigger: trigger,
		from:    from,
		to:      to,
		fromSS:  trigger.StateStyles(from),
		toSS:    trigger.StateStyles(to),
	}
	for _, opt := range opts {
		opt(req)
	}
	e.states[stateKey{el.ID(), trigger.Name}] = to

	log := e.logger.With("element", el.ID(), "trigger", trigger.Name, "from", from, "to", to)

	if from != to {
		tl, tr, err := compiler.CompileTransition(trigger, from, to)
		switch {
		case errors.Is(err, domain.ErrNoTransition):
			log.Debug("no transition matches")
		case err != nil:
			// Triggers are validated when built; a failure here means a hand-made trigger.
			log.Warn("transition failed to compile", "err", err)
		default:
			req.transition = tr
			req.timeline = tl
			pre, post := compiler.Wildcards(tl)
			req.post = post
			req.pre = e.capture(ctx, el, pre, tl)
		}
	}

	e.queue = append(e.queue, req)
	log.Debug("animation registered", "queued", len(e.queue))
	return nil
}

// Flush realizes every queued request in registration order and clears the queue.
// It never fails: requests that cannot be animated degrade to applying their
// destination state styles.
func (e *Engine) Flush(ctx context.Context) {
	if len(e.queue) == 0 {
		return
	}

	start := time.Now()
	queue := e.queue
	e.queue = nil

	created, skipped := 0, 0
	for _, req := range queue {
		if e.realize(ctx, req) {
			created++
		} else {
			skipped++
		}
	}

	elapsed := time.Since(start)
	e.logger.Debug("flush complete", "requests", len(queue), "players", created, "skipped", skipped, "elapsed", elapsed)
	if e.hooks.OnFlush != nil {
		e.hooks.OnFlush(ctx, &domain.FlushEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFlush},
			Requests:  len(queue),
			Players:   created,
			Skipped:   skipped,
			Elapsed:   elapsed,
		})
	}
}

func (e *Engine) realize(ctx context.Context, req *request) bool {
	if req.transition == nil {
		e.commitStates(req)
		return false
	}

	e.overtake(req)

	res := compiler.Resolution{Pre: req.pre, Post: e.measure(ctx, req)}
	tl := res.Apply(req.timeline)

	native, err := e.driver.Create(req.element, tl)
	if err != nil {
		e.logger.Warn("driver failed to create player",
			"element", req.element.ID(), "trigger", req.trigger.Name, "driver", e.driver.Name(), "err", err)
		e.commitStates(req)
		return false
	}

	p := &Player{
		engine:   e,
		native:   native,
		element:  req.element,
		trigger:  req.trigger.Name,
		from:     req.from,
		to:       req.to,
		timeline: tl,
	}
	doneCtx := context.WithoutCancel(ctx)
	native.OnDone(func() { e.finished(doneCtx, p, req) })
	native.OnDestroy(func() { e.release(doneCtx, p) })

	e.players = append(e.players, p)
	e.active = append(e.active, p)
	e.emitPlayer(ctx, e.hooks.OnPlayerCreate, domain.EventPlayerCreate, p)
	e.notify(p, domain.PhaseStart)
	e.logger.Debug("player created", "element", p.element.ID(), "trigger", p.trigger, "keyframes", len(tl.Keyframes))

	native.Play()
	return true
}

// overtake destroys the in-flight players of the element that run the same trigger or
// animate a property the new request animates. Finished players are left alone.
func (e *Engine) overtake(req *request) {
	props := req.timeline.Properties()
	for _, p := range slices.Clone(e.active) {
		if p.element.ID() != req.element.ID() || !p.inFlight() {
			continue
		}
		if p.trigger == req.trigger.Name || overlaps(p.timeline.Properties(), props) {
			e.logger.Debug("overtaking player", "element", p.element.ID(), "trigger", p.trigger)
			p.Destroy()
		}
	}
}

func (e *Engine) finished(ctx context.Context, p *Player, req *request) {
	e.commitStates(req)
	if err := e.cache.Store(ctx, p.element.ID(), p.timeline.Final().Concrete()); err != nil {
		e.logger.Warn("failed to cache final styles", "element", p.element.ID(), "err", err)
	}
	e.emitPlayer(ctx, e.hooks.OnPlayerDone, domain.EventPlayerDone, p)
	e.notify(p, domain.PhaseDone)
}

func (e *Engine) release(ctx context.Context, p *Player) {
	e.players = slices.DeleteFunc(e.players, func(x *Player) bool { return x == p })
	e.active = slices.DeleteFunc(e.active, func(x *Player) bool { return x == p })
	e.emitPlayer(ctx, e.hooks.OnPlayerDestroy, domain.EventPlayerDestroy, p)
	e.logger.Debug("player destroyed", "element", p.element.ID(), "trigger", p.trigger)
}

// commitStates persists the destination state's concrete styles inline and removes
// what the source state left behind.
func (e *Engine) commitStates(req *request) {
	dest := req.toSS.Concrete()
	for prop := range req.fromSS {
		if _, ok := dest[prop]; !ok {
			req.element.RemoveInlineStyle(prop)
		}
	}
	for prop, v := range dest {
		req.element.SetInlineStyle(prop, v)
	}
}

// Players returns the players created by Flush and not yet consumed, newest last.
func (e *Engine) Players() []*Player {
	return slices.Clone(e.players)
}

// PopPlayer removes and returns the newest player. The caller owns it from then on.
func (e *Engine) PopPlayer() (*Player, bool) {
	n := len(e.players)
	if n == 0 {
		return nil, false
	}
	p := e.players[n-1]
	e.players = e.players[:n-1]
	return p, true
}

// Drain removes and returns every player, oldest first.
func (e *Engine) Drain() []*Player {
	out := e.players
	e.players = nil
	return out
}

// Pending returns the number of queued requests.
func (e *Engine) Pending() int {
	return len(e.queue)
}

// State returns the last value registered for a trigger on an element.
func (e *Engine) State(el ports.Element, triggerName string) (string, bool) {
	v, ok := e.states[stateKey{el.ID(), triggerName}]
	return v, ok
}

func (e *Engine) emitPlayer(ctx context.Context, hook func(context.Context, *domain.PlayerEvent), typ domain.EventType, p *Player) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.PlayerEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ},
		ElementID: p.element.ID(),
		Trigger:   p.trigger,
		FromState: p.from,
		ToState:   p.to,
		Driver:    e.driver.Name(),
	})
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}
