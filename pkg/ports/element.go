package ports

import "github.com/aretw0/kinetic/pkg/domain"

// Element is the capability interface of a rendered element.
type Element interface {
	// ID returns a stable identifier, used as the style cache key.
	ID() string

	// IsConnected reports whether the element is attached to a rendered tree.
	IsConnected() bool

	// ComputedStyle returns the rendered value of a property, animation effects included.
	// Detached elements return domain.ErrDetached.
	ComputedStyle(prop string) (string, error)

	// InlineStyle reads a property of the raw style attribute.
	InlineStyle(prop string) (string, bool)
	SetInlineStyle(prop, value string)
	RemoveInlineStyle(prop string)
}

// Structural is implemented by elements whose children can be queried and mutated,
// which scoped measurements use to preview a structural change.
type Structural interface {
	Element
	Children() []Element
	AppendChild(child Element) error
	RemoveChild(child Element) error
}

// Effect is an animation effect composited on top of an element's own styles.
type Effect interface {
	Sample() domain.StyleMap
}

// EffectHost is implemented by elements that composite animation effects, the way a
// native animation API does. Later effects win over earlier ones. AttachEffect returns
// the func that removes that attachment; calling it more than once is a no-op.
type EffectHost interface {
	Element
	AttachEffect(e Effect) (detach func())
}
