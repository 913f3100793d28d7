package compiler

import (
	"fmt"

	"github.com/aretw0/kinetic/pkg/domain"
)

// CompileTransition matches the rule of trigger for from => to and compiles it, framed
// by the two state styles. A "*" in the source state means the value shown before the
// change and is compiled as domain.PreStyle.
func CompileTransition(trigger *domain.Trigger, from, to string) (domain.Timeline, *domain.Transition, error) {
	tr, ok := trigger.Match(from, to)
	if !ok {
		return domain.Timeline{}, nil, fmt.Errorf("%s: %s => %s: %w", trigger.Name, from, to, domain.ErrNoTransition)
	}
	tl, err := Compile(tr.Steps, Options{
		FromStyles: SourceStyles(trigger.StateStyles(from)),
		ToStyles:   trigger.StateStyles(to),
	})
	if err != nil {
		return domain.Timeline{}, nil, fmt.Errorf("%s: %s: %w", trigger.Name, tr.Expr, err)
	}
	return tl, tr, nil
}

// SourceStyles rewrites "*" to "!" in the styles of a transition's source state.
func SourceStyles(styles domain.StyleMap) domain.StyleMap {
	out := styles.Clone()
	for k, v := range out {
		if v == domain.AutoStyle {
			out[k] = domain.PreStyle
		}
	}
	return out
}
