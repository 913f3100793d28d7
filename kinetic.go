package kinetic

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/internal/runtime"
	"github.com/aretw0/kinetic/pkg/adapters/noop"
	"github.com/aretw0/kinetic/pkg/adapters/stepper"
	"github.com/aretw0/kinetic/pkg/adapters/webanim"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
	"github.com/aretw0/kinetic/pkg/registry"
)

// Player is the engine-facing handle of one animation.
type Player = runtime.Player

// RegisterOption configures a single registration.
type RegisterOption = runtime.RegisterOption

// Preview applies the structural change of a state change for measurement and returns
// its revert func.
type Preview = runtime.Preview

// WithPreview attaches a preview mutation used while measuring "*" values at flush.
func WithPreview(preview Preview) RegisterOption {
	return runtime.WithPreview(preview)
}

// Engine is the high-level entry point of the library. It selects a driver once and
// wraps the runtime engine together with a trigger registry.
type Engine struct {
	runtime   *runtime.Engine
	registry  *registry.Registry
	drivers   []ports.Driver
	clock     ports.Clock
	scheduler ports.FrameScheduler
	cache     ports.StyleCache
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDriver puts d first in the driver preference list.
func WithDriver(d ports.Driver) Option {
	return func(e *Engine) {
		e.drivers = append([]ports.Driver{d}, e.drivers...)
	}
}

// WithDrivers replaces the driver preference list. The first available driver wins.
func WithDrivers(drivers ...ports.Driver) Option {
	return func(e *Engine) {
		e.drivers = drivers
	}
}

// WithClock enables the webanim driver on top of clock.
func WithClock(clock ports.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithFrameScheduler enables the stepper driver on top of scheduler.
func WithFrameScheduler(scheduler ports.FrameScheduler) Option {
	return func(e *Engine) {
		e.scheduler = scheduler
	}
}

// WithStyleCache sets the store of last-known styles used when an element cannot be
// measured.
func WithStyleCache(cache ports.StyleCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithRegistry shares a trigger registry with the engine.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// New creates an engine. Unless WithDriver(s) says otherwise, drivers are probed in the
// order webanim (needs WithClock), stepper (needs WithFrameScheduler), noop. The choice
// is made once.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.registry == nil {
		eng.registry = registry.NewRegistry()
	}

	drivers := eng.drivers
	if len(drivers) == 0 {
		drivers = eng.defaultDrivers()
	}
	driver, err := selectDriver(drivers)
	if err != nil {
		return nil, err
	}
	eng.logger.Info("animation driver selected", "driver", driver.Name())

	runtimeOpts := []runtime.EngineOption{
		runtime.WithLogger(eng.logger.With("driver", driver.Name())),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithStyleCache(eng.cache),
	}
	eng.runtime = runtime.NewEngine(driver, runtimeOpts...)
	return eng, nil
}

func (e *Engine) defaultDrivers() []ports.Driver {
	drivers := make([]ports.Driver, 0, 3)
	if e.clock != nil {
		drivers = append(drivers, webanim.New(e.clock))
	}
	if e.scheduler != nil {
		drivers = append(drivers, stepper.New(e.scheduler))
	}
	return append(drivers, noop.New())
}

func selectDriver(drivers []ports.Driver) (ports.Driver, error) {
	for _, d := range drivers {
		if d != nil && d.IsAvailable() {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%d driver(s) probed: %w", len(drivers), domain.ErrDriverUnavailable)
}

// Driver returns the driver selected at construction.
func (e *Engine) Driver() ports.Driver {
	return e.runtime.Driver()
}

// Registry returns the trigger registry used by the name-based methods.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// LoadTriggers reads YAML or JSON trigger definitions into the registry.
func (e *Engine) LoadTriggers(r io.Reader) error {
	return e.registry.Load(r)
}

// AddTriggers registers built triggers.
func (e *Engine) AddTriggers(triggers ...*domain.Trigger) error {
	return e.registry.Register(triggers...)
}

// Register records a state change of trigger on el. See runtime.Engine.Register.
func (e *Engine) Register(ctx context.Context, el ports.Element, trigger *domain.Trigger, from, to string, opts ...RegisterOption) error {
	return e.runtime.Register(ctx, el, trigger, from, to, opts...)
}

// RegisterByName is Register with a trigger looked up in the registry.
func (e *Engine) RegisterByName(ctx context.Context, el ports.Element, triggerName, from, to string, opts ...RegisterOption) error {
	trigger, err := e.registry.Get(triggerName)
	if err != nil {
		return err
	}
	return e.runtime.Register(ctx, el, trigger, from, to, opts...)
}

// SetState registers a change of a named trigger from the value last registered on el
// to state. The first change of an element starts from the void state.
func (e *Engine) SetState(ctx context.Context, el ports.Element, triggerName, state string, opts ...RegisterOption) error {
	from, ok := e.runtime.State(el, triggerName)
	if !ok {
		from = domain.VoidState
	}
	return e.RegisterByName(ctx, el, triggerName, from, state, opts...)
}

// State returns the value last registered for a trigger on el.
func (e *Engine) State(el ports.Element, triggerName string) (string, bool) {
	return e.runtime.State(el, triggerName)
}

// Flush realizes every queued registration into players and starts them.
func (e *Engine) Flush(ctx context.Context) {
	e.runtime.Flush(ctx)
}

// Pending returns the number of registrations waiting for Flush.
func (e *Engine) Pending() int {
	return e.runtime.Pending()
}

// Players returns the unconsumed players, newest last.
func (e *Engine) Players() []*Player {
	return e.runtime.Players()
}

// PopPlayer removes and returns the newest player.
func (e *Engine) PopPlayer() (*Player, bool) {
	return e.runtime.PopPlayer()
}

// Drain removes and returns every player, oldest first.
func (e *Engine) Drain() []*Player {
	return e.runtime.Drain()
}

// Listen subscribes fn to the start or done phase of a trigger on el. The returned func
// unsubscribes.
func (e *Engine) Listen(el ports.Element, triggerName string, phase domain.AnimationPhase, fn func(domain.AnimationEvent)) func() {
	return e.runtime.Listen(el, triggerName, phase, fn)
}
