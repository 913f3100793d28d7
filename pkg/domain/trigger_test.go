package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMatcher_WildcardCoversVoid(t *testing.T) {
	m := StateMatcher{From: WildcardState, To: WildcardState}

	assert.True(t, m.Matches("open", "closed"))
	assert.True(t, m.Matches(VoidState, "open"), "first render")
	assert.True(t, m.Matches("open", VoidState), "removal")

	enter := StateMatcher{From: VoidState, To: WildcardState}
	assert.True(t, enter.Matches(VoidState, "open"))
	assert.False(t, enter.Matches("closed", "open"))
	assert.False(t, enter.Exact())
}

func TestTrigger_Match_ExactBeatsWildcard(t *testing.T) {
	trig := &Trigger{
		Name: "fade",
		Transitions: []Transition{
			{Expr: "* => *", Matchers: []StateMatcher{{From: "*", To: "*"}}},
			{Expr: "a => b", Matchers: []StateMatcher{{From: "a", To: "b"}}},
			{Expr: "a => *", Matchers: []StateMatcher{{From: "a", To: "*"}}},
		},
	}

	got, ok := trig.Match("a", "b")
	require.True(t, ok)
	assert.Equal(t, "a => b", got.Expr)

	got, ok = trig.Match("a", "c")
	require.True(t, ok)
	assert.Equal(t, "* => *", got.Expr, "first declared wildcard rule wins")

	got, ok = trig.Match(VoidState, "a")
	require.True(t, ok)
	assert.Equal(t, "* => *", got.Expr)

	onlyNamed := &Trigger{Name: "t", Transitions: []Transition{
		{Expr: "a => b", Matchers: []StateMatcher{{From: "a", To: "b"}}},
	}}
	_, ok = onlyNamed.Match(VoidState, "b")
	assert.False(t, ok)
}

func TestTrigger_StateStyles(t *testing.T) {
	trig := &Trigger{
		Name: "expand",
		States: map[string]State{
			"open": {Name: "open", Styles: StyleMap{"height": "*"}},
			"*":    {Name: "*", Styles: StyleMap{"opacity": "1"}},
		},
	}

	assert.Equal(t, StyleMap{"height": "*"}, trig.StateStyles("open"))
	assert.Equal(t, StyleMap{"opacity": "1"}, trig.StateStyles("other"))
	assert.Empty(t, trig.StateStyles(VoidState))

	s := trig.StateStyles("open")
	s["height"] = "1px"
	assert.Equal(t, "*", trig.States["open"].Styles["height"], "returned styles must be a copy")
}
