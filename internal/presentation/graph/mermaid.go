package graph

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/kinetic/pkg/domain"
)

// StateOverlay marks the runtime position of a trigger on the diagram.
type StateOverlay struct {
	Visited []string
	Current string
}

const anyStateID = "any_state"

// GenerateMermaid produces a Mermaid flowchart of a trigger's states and rules.
// Shapes:
// - void: ((Circle))
// - wildcard: {{Hexagon}}
// - declared state: [Rectangle]
// Edges are labelled with the rule expression and its total time. Rules written with
// <=> produce one edge per direction.
func GenerateMermaid(t *domain.Trigger, overlay *StateOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, state := range states(t) {
		safeID := sanitizeMermaidID(state)
		opener, closer := "[", "]"
		switch state {
		case domain.VoidState:
			opener, closer = "((", "))"
		case domain.WildcardState:
			opener, closer = "{{", "}}"
		}
		label := state
		if styles := t.StateStyles(state); state != domain.WildcardState && len(styles) > 0 {
			label = fmt.Sprintf("%s <br/> %s", state, strings.ReplaceAll(styles.String(), "\"", "'"))
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)
	}

	for _, tr := range t.Transitions {
		label := strings.ReplaceAll(tr.Expr, "\"", "'")
		if d := totalTime(tr.Steps); d > 0 {
			label = fmt.Sprintf("%s · %s", label, d)
		}
		for _, m := range tr.Matchers {
			arrow := fmt.Sprintf("-- \"%s\" -->", label)
			if !m.Exact() {
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(m.From), arrow, sanitizeMermaidID(m.To))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.Visited {
			safeID := sanitizeMermaidID(s)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

// states lists the declared states plus every state a matcher names, sorted.
func states(t *domain.Trigger) []string {
	set := make(map[string]struct{}, len(t.States))
	for name := range t.States {
		set[name] = struct{}{}
	}
	for _, tr := range t.Transitions {
		for _, m := range tr.Matchers {
			set[m.From] = struct{}{}
			set[m.To] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func totalTime(steps []domain.Step) time.Duration {
	var d time.Duration
	for _, s := range steps {
		if s.Kind == domain.StepAnimate {
			d += s.Timing.Total()
		}
	}
	return d
}

func sanitizeMermaidID(id string) string {
	if id == domain.WildcardState {
		return anyStateID
	}
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
