package compiler

import (
	"testing"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransitionExpr(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []domain.StateMatcher
	}{
		{"Simple", "open => closed", []domain.StateMatcher{{From: "open", To: "closed"}}},
		{"NoSpaces", "a=>b", []domain.StateMatcher{{From: "a", To: "b"}}},
		{"Bidirectional", "a <=> b", []domain.StateMatcher{{From: "a", To: "b"}, {From: "b", To: "a"}}},
		{"Wildcard", "* => *", []domain.StateMatcher{{From: "*", To: "*"}}},
		{"Enter", ":enter", []domain.StateMatcher{{From: "void", To: "*"}}},
		{"Leave", ":leave", []domain.StateMatcher{{From: "*", To: "void"}}},
		{"List", "a => b, :enter", []domain.StateMatcher{{From: "a", To: "b"}, {From: "void", To: "*"}}},
		{"DashedNames", "is-open => is-closed", []domain.StateMatcher{{From: "is-open", To: "is-closed"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransitionExpr(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTransitionExpr_Invalid(t *testing.T) {
	for _, expr := range []string{"", "a", "a -> b", "a => b,", "=> b", ":enterx", "a => b => c"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseTransitionExpr(expr)
			assert.ErrorIs(t, err, domain.ErrInvalidExpression)
		})
	}
}
