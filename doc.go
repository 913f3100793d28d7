/*
Package kinetic is a declarative animation orchestration engine.

Animations are declared as triggers: named sets of states with style maps, and
transition rules that describe how to move between them. A host rendering layer tells the
engine when a trigger changes value on an element and flushes once per rendering pass. The
engine then compiles the matching transition into a keyframe timeline, resolves the
wildcard styles against the live element and hands the timeline to an animation driver.

# Wildcard Styles

Two style values are resolved at runtime:

  - "*" is the value the element computes after the change. It is measured at Flush, after
    the host has applied its mutation.
  - "!" is the value the element renders before the change. It is captured at Register,
    so Register must be called before the host mutates the element.

An element that cannot be measured degrades to the last value the engine saw for it,
then to the first literal the timeline declares. A property with neither is not animated.

# Drivers

The engine picks one driver at construction. The default preference order is webanim
(clock-driven effects, enabled by WithClock), stepper (frame callbacks writing inline
styles, enabled by WithFrameScheduler) and noop (finishes immediately).

# Usage

	trigger, err := dsl.NewTrigger("expand").
		State("closed", dsl.Styles{"height": "0px"}).
		State("open", dsl.Styles{"height": "*"}).
		Transition("open <=> closed").Animate("300ms ease-out", nil).
		Trigger().
		Build()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := kinetic.New(kinetic.WithClock(clock.System{}))
	if err != nil {
		log.Fatal(err)
	}

	// Rendering pass: register, mutate, flush.
	_ = eng.Register(ctx, box, trigger, "closed", "open")
	renderOpenContent(box)
	eng.Flush(ctx)

	for _, p := range eng.Players() {
		p.OnDone(func() { log.Println("expanded") })
	}
*/
package kinetic
