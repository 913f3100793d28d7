package tui

import (
	"fmt"
	"sort"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/xlab/treeprint"
)

// TriggerTree renders triggers with their states, rules and steps as a tree.
func TriggerTree(triggers []*domain.Trigger) string {
	root := treeprint.NewWithRoot("triggers")
	for _, t := range triggers {
		tb := root.AddBranch(t.Name)

		if len(t.States) > 0 {
			sb := tb.AddBranch("states")
			names := make([]string, 0, len(t.States))
			for name := range t.States {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				sb.AddMetaNode(name, t.States[name].Styles.String())
			}
		}

		rb := tb.AddBranch("transitions")
		for _, tr := range t.Transitions {
			eb := rb.AddBranch(tr.Expr)
			for _, step := range tr.Steps {
				eb.AddNode(describeStep(step))
			}
		}
	}
	return root.String()
}

func describeStep(s domain.Step) string {
	if s.Kind == domain.StepStyle {
		return fmt.Sprintf("style %s", s.Styles)
	}

	timing := s.Timing.Duration.String()
	if s.Timing.Delay > 0 {
		timing += " " + s.Timing.Delay.String()
	}
	if s.Timing.Easing != "" {
		timing += " " + s.Timing.Easing
	}
	if len(s.Keyframes) > 0 {
		return fmt.Sprintf("animate %s keyframes(%d)", timing, len(s.Keyframes))
	}
	if len(s.Styles) == 0 {
		return fmt.Sprintf("animate %s", timing)
	}
	return fmt.Sprintf("animate %s %s", timing, s.Styles)
}
