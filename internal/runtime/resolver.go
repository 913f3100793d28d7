package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/kinetic/internal/compiler"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// capture reads the "!" values of props as the element renders them right now. An
// in-flight player animating a property is the source of its current value.
func (e *Engine) capture(ctx context.Context, el ports.Element, props []string, tl domain.Timeline) domain.StyleMap {
	values := make(domain.StyleMap, len(props))
	var failed []string
	var cause error

	for _, prop := range props {
		if v, ok := e.inflight(el, prop); ok {
			values[prop] = v
			continue
		}
		v, err := el.ComputedStyle(prop)
		if err != nil {
			failed = append(failed, prop)
			cause = err
			continue
		}
		values[prop] = v
	}

	e.remember(ctx, el, values)
	e.fallback(ctx, el, domain.PreStyle, failed, cause, tl, values)
	return values
}

// measure resolves the "*" values of a request inside a scoped measurement: the
// source state styles are erased, the destination state's concrete styles and the
// preview mutation are applied, and everything is reverted before returning.
func (e *Engine) measure(ctx context.Context, req *request) domain.StyleMap {
	if len(req.post) == 0 {
		return domain.StyleMap{}
	}

	values, failed, cause := e.scoped(req)
	e.remember(ctx, req.element, values)
	e.fallback(ctx, req.element, domain.AutoStyle, failed, cause, req.timeline, values)
	return values
}

func (e *Engine) scoped(req *request) (values domain.StyleMap, failed []string, cause error) {
	el := req.element
	values = make(domain.StyleMap, len(req.post))

	var undo []func()
	defer func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}()

	save := func(prop string) {
		v, ok := el.InlineStyle(prop)
		undo = append(undo, func() {
			if ok {
				el.SetInlineStyle(prop, v)
			} else {
				el.RemoveInlineStyle(prop)
			}
		})
	}

	dest := req.toSS.Concrete()
	for prop := range req.fromSS {
		if _, ok := dest[prop]; !ok {
			save(prop)
			el.RemoveInlineStyle(prop)
		}
	}
	for prop, v := range dest {
		save(prop)
		el.SetInlineStyle(prop, v)
	}

	if req.preview != nil {
		revert, err := req.preview()
		if err != nil {
			return values, req.post, fmt.Errorf("preview: %w", err)
		}
		if revert != nil {
			undo = append(undo, revert)
		}
	}

	for _, prop := range req.post {
		v, err := el.ComputedStyle(prop)
		if err != nil {
			failed = append(failed, prop)
			cause = err
			continue
		}
		values[prop] = v
	}
	return values, failed, cause
}

// inflight returns the value an active player currently renders for prop on el.
func (e *Engine) inflight(el ports.Element, prop string) (string, bool) {
	for i := len(e.active) - 1; i >= 0; i-- {
		p := e.active[i]
		if p.element.ID() != el.ID() || !p.inFlight() {
			continue
		}
		if v, ok := p.Snapshot()[prop]; ok {
			return v, true
		}
	}
	return "", false
}

// fallback degrades the properties that could not be read: the last known value in
// the style cache wins, then the first literal the timeline declares. Properties with
// neither stay unresolved and are not animated.
func (e *Engine) fallback(ctx context.Context, el ports.Element, token string, props []string, cause error, tl domain.Timeline, values domain.StyleMap) {
	if len(props) == 0 {
		return
	}

	cached, err := e.cache.Load(ctx, el.ID())
	if err != nil {
		e.logger.Warn("failed to load cached styles", "element", el.ID(), "err", err)
		cached = domain.StyleMap{}
	}

	for _, prop := range props {
		v, fromCache := cached[prop]
		if !fromCache {
			v, _ = compiler.Literal(tl, prop)
		}
		if v != "" {
			values[prop] = v
		}

		e.logger.Warn("style could not be measured",
			"element", el.ID(), "property", prop, "token", token, "fallback", v, "cached", fromCache, "err", cause)
		if e.hooks.OnResolveFallback != nil {
			e.hooks.OnResolveFallback(ctx, &domain.FallbackEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventResolveFallback},
				ElementID: el.ID(),
				Property:  prop,
				Token:     token,
				Value:     v,
				Cached:    fromCache,
				Err:       cause,
			})
		}
	}
}

func (e *Engine) remember(ctx context.Context, el ports.Element, values domain.StyleMap) {
	if len(values) == 0 {
		return
	}
	if err := e.cache.Store(ctx, el.ID(), values); err != nil {
		e.logger.Warn("failed to cache styles", "element", el.ID(), "err", err)
	}
}
