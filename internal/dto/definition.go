package dto

// Definitions is the root of a trigger definition document.
// It uses "mapstructure" tags so YAML and JSON documents decode through the same path.
type Definitions struct {
	Triggers []TriggerDefinition `json:"triggers" mapstructure:"triggers"`
}

// TriggerDefinition declares one trigger with its states and transitions.
type TriggerDefinition struct {
	Name        string                       `json:"name" mapstructure:"name"`
	States      map[string]map[string]string `json:"states,omitempty" mapstructure:"states"`
	Transitions []TransitionDefinition       `json:"transitions" mapstructure:"transitions"`
}

// TransitionDefinition pairs a transition expression with its steps.
type TransitionDefinition struct {
	Expr  string           `json:"expr" mapstructure:"expr"`
	Steps []StepDefinition `json:"steps" mapstructure:"steps"`
}

// StepDefinition is a style step when Animate is empty, an animate step otherwise.
// Animate accepts milliseconds or a timing string ("300ms 50ms ease-out").
type StepDefinition struct {
	Style     map[string]string    `json:"style,omitempty" mapstructure:"style"`
	Animate   any                  `json:"animate,omitempty" mapstructure:"animate"`
	Keyframes []KeyframeDefinition `json:"keyframes,omitempty" mapstructure:"keyframes"`
}

// KeyframeDefinition is one keyframe of an animate step.
type KeyframeDefinition struct {
	Offset *float64          `json:"offset,omitempty" mapstructure:"offset"`
	Style  map[string]string `json:"style" mapstructure:"style"`
}
