package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/kinetic/internal/presentation/graph"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	trig, err := dsl.NewTrigger("expand").
		State("closed", dsl.Styles{"height": "0px"}).
		State("open", dsl.Styles{"height": "*"}).
		Transition("open <=> closed").Animate("300ms 100ms", nil).
		Transition(":enter").Animate(200, dsl.Styles{"opacity": "1"}).
		Trigger().
		Build()
	require.NoError(t, err)

	out := graph.GenerateMermaid(trig, nil)

	tests := []struct {
		name     string
		contains []string
	}{
		{"Header", []string{"graph LR\n"}},
		{"Void Shape", []string{`void(("void"))`}},
		{"Wildcard Shape", []string{`any_state{{"*"}}`}},
		{"State Styles", []string{`closed["closed <br/> height: 0px;"]`}},
		{"Both Directions", []string{
			`open -- "open <=> closed · 400ms" --> closed`,
			`closed -- "open <=> closed · 400ms" --> open`,
		}},
		{"Wildcard Edge", []string{`void -. ":enter · 200ms" .-> any_state`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	trig := &domain.Trigger{
		Name: "fade",
		Transitions: []domain.Transition{{
			Expr:     "a.b => c-d",
			Matchers: []domain.StateMatcher{{From: "a.b", To: "c-d"}},
		}},
	}

	out := graph.GenerateMermaid(trig, &graph.StateOverlay{
		Visited: []string{"a.b", "a.b"},
		Current: "c-d",
	})

	assert.Equal(t, 1, strings.Count(out, "class a_b visited;"))
	assert.Contains(t, out, "class c_d current;")
	assert.Contains(t, out, `a_b -- "a.b => c-d" --> c_d`)
}
