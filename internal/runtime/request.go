package runtime

import (
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// Preview applies the structural change a state change will cause so the element can
// be measured in its post-change shape. It returns a func that reverts the change.
type Preview func() (revert func(), err error)

// RegisterOption configures a single registration.
type RegisterOption func(*request)

// WithPreview attaches a preview mutation used while measuring "*" values at flush.
func WithPreview(preview Preview) RegisterOption {
	return func(r *request) {
		r.preview = preview
	}
}

type request struct {
	element ports.Element
	trigger *domain.Trigger
	from    string
	to      string
	fromSS  domain.StyleMap
	toSS    domain.StyleMap
	preview Preview

	// Set when a rule matched.
	transition *domain.Transition
	timeline   domain.Timeline
	pre        domain.StyleMap
	post       []string
}

type stateKey struct {
	elementID string
	trigger   string
}
