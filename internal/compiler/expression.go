package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/kinetic/pkg/domain"
)

var exprPattern = regexp.MustCompile(`^(\*|[-\w]+)\s*(<=>|=>)\s*(\*|[-\w]+)$`)

// ParseTransitionExpr parses a transition expression into state matchers.
//
// Supported forms, comma separated:
//
//	open => closed
//	open <=> closed   (both directions)
//	* => *            (any change between non-void states)
//	:enter            (void => *)
//	:leave            (* => void)
func ParseTransitionExpr(expr string) ([]domain.StateMatcher, error) {
	parts := strings.Split(expr, ",")
	matchers := make([]domain.StateMatcher, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			return nil, fmt.Errorf("%w: empty clause in %q", domain.ErrInvalidExpression, expr)
		case ":enter":
			matchers = append(matchers, domain.StateMatcher{From: domain.VoidState, To: domain.WildcardState})
			continue
		case ":leave":
			matchers = append(matchers, domain.StateMatcher{From: domain.WildcardState, To: domain.VoidState})
			continue
		}

		m := exprPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidExpression, part)
		}
		from, op, to := m[1], m[2], m[3]
		matchers = append(matchers, domain.StateMatcher{From: from, To: to})
		if op == "<=>" {
			matchers = append(matchers, domain.StateMatcher{From: to, To: from})
		}
	}
	return matchers, nil
}
