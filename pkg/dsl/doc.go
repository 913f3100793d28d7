/*
Package dsl provides a fluent Go builder for declaring animation triggers.

It is the programmatic counterpart of the YAML definition format: states, transition
expressions and step sequences are declared in code and validated once at Build time.

Example usage:

	b := dsl.New()

	b.Add("expand").
		State("collapsed", dsl.Styles{"height": "0px"}).
		State("expanded", dsl.Styles{"height": "*"})

	b.Add("expand").
		Transition("collapsed <=> expanded").
		Animate("300ms ease-out", nil)

	b.Add("fade").
		Transition(":enter").
		Style(dsl.Styles{"opacity": "0"}).
		Animate(200, dsl.Styles{"opacity": "1"})

	reg, err := b.Build()
	// ... pass the triggers to kinetic.New(...)
*/
package dsl
