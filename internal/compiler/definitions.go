package compiler

import (
	"fmt"
	"io"

	"github.com/aretw0/kinetic/internal/dto"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadDefinitions reads a YAML (or JSON, which is valid YAML) document of trigger
// definitions and builds the triggers it declares.
func LoadDefinitions(r io.Reader) ([]*domain.Trigger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	return ParseDefinitions(data)
}

// ParseDefinitions is LoadDefinitions over an in-memory document.
func ParseDefinitions(data []byte) ([]*domain.Trigger, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}

	var defs dto.Definitions
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &defs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definitions: %w", err)
	}

	triggers := make([]*domain.Trigger, 0, len(defs.Triggers))
	seen := make(map[string]bool)
	for _, def := range defs.Triggers {
		if seen[def.Name] {
			return nil, fmt.Errorf("duplicate trigger %q", def.Name)
		}
		seen[def.Name] = true

		trig, err := BuildTrigger(def)
		if err != nil {
			return nil, err
		}
		triggers = append(triggers, trig)
	}
	return triggers, nil
}

// BuildTrigger converts a decoded definition into a domain trigger, validating
// expressions, timings and keyframe offsets.
func BuildTrigger(def dto.TriggerDefinition) (*domain.Trigger, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("trigger missing name")
	}

	trig := &domain.Trigger{
		Name:   def.Name,
		States: make(map[string]domain.State, len(def.States)),
	}
	for name, styles := range def.States {
		trig.States[name] = domain.State{Name: name, Styles: domain.NewStyleMap(styles)}
	}

	for i, td := range def.Transitions {
		matchers, err := ParseTransitionExpr(td.Expr)
		if err != nil {
			return nil, fmt.Errorf("trigger %q transition %d: %w", def.Name, i, err)
		}
		steps := make([]domain.Step, 0, len(td.Steps))
		for j, sd := range td.Steps {
			step, err := buildStep(sd)
			if err != nil {
				return nil, fmt.Errorf("trigger %q transition %d step %d: %w", def.Name, i, j, err)
			}
			steps = append(steps, step)
		}
		if _, err := Compile(steps, Options{}); err != nil {
			return nil, fmt.Errorf("trigger %q transition %d: %w", def.Name, i, err)
		}
		trig.Transitions = append(trig.Transitions, domain.Transition{
			Expr:     td.Expr,
			Matchers: matchers,
			Steps:    steps,
		})
	}
	return trig, nil
}

func buildStep(sd dto.StepDefinition) (domain.Step, error) {
	if sd.Animate == nil {
		if len(sd.Keyframes) > 0 {
			return domain.Step{}, fmt.Errorf("keyframes require an animate timing")
		}
		return domain.StyleStep(domain.NewStyleMap(sd.Style)), nil
	}

	timing, err := ParseTiming(sd.Animate)
	if err != nil {
		return domain.Step{}, err
	}
	step := domain.AnimateStep(timing, domain.NewStyleMap(sd.Style))
	for _, kd := range sd.Keyframes {
		step.Keyframes = append(step.Keyframes, domain.KeyframeSpec{
			Offset: kd.Offset,
			Styles: domain.NewStyleMap(kd.Style),
		})
	}
	return step, nil
}
