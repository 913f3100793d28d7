package domain

const (
	// WildcardState matches any state, VoidState included.
	WildcardState = "*"
	// VoidState is the reserved pseudo-state of an element that is not (or no longer) rendered.
	VoidState = "void"
)

// Trigger is a named animation state machine attached to an element binding.
// It is immutable once built.
type Trigger struct {
	Name        string           `json:"name"`
	States      map[string]State `json:"states,omitempty"`
	Transitions []Transition     `json:"transitions,omitempty"`
}

// State is a named set of styles the element holds while the trigger rests in it.
type State struct {
	Name   string   `json:"name"`
	Styles StyleMap `json:"styles"`
}

// Transition pairs one or more state matchers with an ordered step sequence.
type Transition struct {
	Expr     string         `json:"expr"`
	Matchers []StateMatcher `json:"matchers"`
	Steps    []Step         `json:"steps"`
}

// StateMatcher matches a single (from, to) state pair. Either side may be WildcardState.
type StateMatcher struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Matches reports whether the matcher accepts the state change.
// The wildcard matches every state, VoidState included.
func (m StateMatcher) Matches(from, to string) bool {
	return matchSide(m.From, from) && matchSide(m.To, to)
}

// Exact reports whether neither side is a wildcard.
func (m StateMatcher) Exact() bool {
	return m.From != WildcardState && m.To != WildcardState
}

func matchSide(pattern, state string) bool {
	return pattern == WildcardState || pattern == state
}

// Matches reports whether any matcher of the transition accepts the state change.
func (t Transition) Matches(from, to string) bool {
	for _, m := range t.Matchers {
		if m.Matches(from, to) {
			return true
		}
	}
	return false
}

func (t Transition) matchesExactly(from, to string) bool {
	for _, m := range t.Matchers {
		if m.Exact() && m.Matches(from, to) {
			return true
		}
	}
	return false
}

// Match selects the rule for a state change. An exact state-pair match wins over a
// wildcard match; within each class the first declared rule wins.
func (t *Trigger) Match(from, to string) (*Transition, bool) {
	for i := range t.Transitions {
		if t.Transitions[i].matchesExactly(from, to) {
			return &t.Transitions[i], true
		}
	}
	for i := range t.Transitions {
		if t.Transitions[i].Matches(from, to) {
			return &t.Transitions[i], true
		}
	}
	return nil, false
}

// StateStyles returns the styles declared for a state, falling back to the "*" state
// declaration when present. Unknown states yield an empty map.
func (t *Trigger) StateStyles(name string) StyleMap {
	if s, ok := t.States[name]; ok {
		return s.Styles.Clone()
	}
	if name != VoidState {
		if s, ok := t.States[WildcardState]; ok {
			return s.Styles.Clone()
		}
	}
	return StyleMap{}
}
