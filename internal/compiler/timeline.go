package compiler

import (
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/kinetic/pkg/domain"
)

// Options carries the state styles that frame a transition.
type Options struct {
	// FromStyles are the source state's styles; they backfill the first keyframe.
	FromStyles domain.StyleMap
	// ToStyles are the destination state's styles; they backfill the last keyframe.
	ToStyles domain.StyleMap
}

// Resolution holds the concrete values substituted for wildcard tokens.
type Resolution struct {
	Pre  domain.StyleMap
	Post domain.StyleMap
}

type frame struct {
	at     time.Duration
	easing string
	styles domain.StyleMap
}

// Compile walks a step sequence and produces a timeline that may still hold wildcard
// tokens. Use Resolution.Apply (or CompileResolved) to obtain a concrete timeline.
//
// Every keyframe of the result carries every animated property: properties missing
// at offset 0 are backfilled with domain.PreStyle and later keyframes inherit the
// nearest prior value.
func Compile(steps []domain.Step, opts Options) (domain.Timeline, error) {
	frames, total, err := walk(steps)
	if err != nil {
		return domain.Timeline{}, err
	}

	var keyframes []domain.Keyframe
	if total == 0 {
		final := domain.StyleMap{}
		for _, f := range frames {
			for k, v := range f.styles {
				final[k] = v
			}
		}
		keyframes = []domain.Keyframe{
			{Offset: 0, Styles: frames[0].styles.Clone()},
			{Offset: 1, Styles: final},
		}
	} else {
		keyframes = normalize(frames, total)
	}

	keyframes[0].Styles.Fill(opts.FromStyles)
	keyframes[len(keyframes)-1].Styles.Fill(opts.ToStyles)
	inherit(keyframes)

	tl := domain.Timeline{Keyframes: keyframes, Duration: total}
	if err := tl.Validate(); err != nil {
		return domain.Timeline{}, err
	}
	return tl, nil
}

// CompileResolved compiles steps and substitutes the resolved wildcard values.
func CompileResolved(steps []domain.Step, opts Options, res Resolution) (domain.Timeline, error) {
	tl, err := Compile(steps, opts)
	if err != nil {
		return domain.Timeline{}, err
	}
	return res.Apply(tl), nil
}

func walk(steps []domain.Step) ([]*frame, time.Duration, error) {
	frames := []*frame{{styles: domain.StyleMap{}}}
	cursor := time.Duration(0)

	at := func(t time.Duration) *frame {
		last := frames[len(frames)-1]
		if last.at == t {
			return last
		}
		f := &frame{at: t, styles: domain.StyleMap{}}
		frames = append(frames, f)
		return f
	}
	push := func(t time.Duration, styles domain.StyleMap) {
		frames = append(frames, &frame{at: t, styles: domain.NewStyleMap(styles)})
	}

	for i, step := range steps {
		switch step.Kind {
		case domain.StepStyle:
			s := at(cursor)
			for k, v := range domain.NewStyleMap(step.Styles) {
				s.styles[k] = v
			}

		case domain.StepAnimate:
			timing := step.Timing
			if timing.Duration < 0 || timing.Delay < 0 {
				return nil, 0, fmt.Errorf("%w: step %d has negative timing", domain.ErrInvalidTiming, i)
			}
			if timing.Delay > 0 {
				at(cursor)
				cursor += timing.Delay
				at(cursor)
			}
			start := at(cursor)
			start.easing = timing.Easing

			if len(step.Keyframes) > 0 {
				if len(step.Styles) > 0 {
					return nil, 0, fmt.Errorf("step %d: animate targets both a style and keyframes", i)
				}
				offsets, err := keyframeOffsets(step.Keyframes)
				if err != nil {
					return nil, 0, fmt.Errorf("step %d: %w", i, err)
				}
				for j, spec := range step.Keyframes {
					push(cursor+time.Duration(offsets[j]*float64(timing.Duration)), spec.Styles)
				}
				cursor += timing.Duration
				at(cursor)
				continue
			}

			cursor += timing.Duration
			push(cursor, step.Styles)

		default:
			return nil, 0, fmt.Errorf("step %d: unknown step kind %q", i, step.Kind)
		}
	}
	return frames, cursor, nil
}

func keyframeOffsets(specs []domain.KeyframeSpec) ([]float64, error) {
	offsets := make([]float64, len(specs))
	prev := 0.0
	for i, spec := range specs {
		switch {
		case spec.Offset != nil:
			offsets[i] = *spec.Offset
		case len(specs) == 1:
			offsets[i] = 1
		default:
			offsets[i] = float64(i) / float64(len(specs)-1)
		}
		if offsets[i] < 0 || offsets[i] > 1 {
			return nil, fmt.Errorf("%w: keyframe offset %v outside [0, 1]", domain.ErrInvalidTimeline, offsets[i])
		}
		if offsets[i] < prev {
			return nil, fmt.Errorf("%w: keyframe offsets must not decrease", domain.ErrInvalidTimeline)
		}
		prev = offsets[i]
	}
	return offsets, nil
}

// normalize merges consecutive frames sharing a time and maps times onto [0, 1].
func normalize(frames []*frame, total time.Duration) []domain.Keyframe {
	keyframes := make([]domain.Keyframe, 0, len(frames))
	for _, f := range frames {
		offset := float64(f.at) / float64(total)
		if n := len(keyframes); n > 0 && keyframes[n-1].Offset == offset {
			for k, v := range f.styles {
				keyframes[n-1].Styles[k] = v
			}
			if f.easing != "" {
				keyframes[n-1].Easing = f.easing
			}
			continue
		}
		keyframes = append(keyframes, domain.Keyframe{Offset: offset, Easing: f.easing, Styles: f.styles.Clone()})
	}
	keyframes[len(keyframes)-1].Offset = 1
	return keyframes
}

func inherit(keyframes []domain.Keyframe) {
	props := make(map[string]struct{})
	for _, kf := range keyframes {
		for k := range kf.Styles {
			props[k] = struct{}{}
		}
	}
	for prop := range props {
		if _, ok := keyframes[0].Styles[prop]; !ok {
			keyframes[0].Styles[prop] = domain.PreStyle
		}
		for i := 1; i < len(keyframes); i++ {
			if _, ok := keyframes[i].Styles[prop]; !ok {
				keyframes[i].Styles[prop] = keyframes[i-1].Styles[prop]
			}
		}
	}
}

// Wildcards lists the properties that need a pre-change capture and those that need a
// post-change measurement.
func Wildcards(tl domain.Timeline) (pre, post []string) {
	preSet := make(map[string]struct{})
	postSet := make(map[string]struct{})
	for _, kf := range tl.Keyframes {
		for k, v := range kf.Styles {
			switch v {
			case domain.PreStyle:
				preSet[k] = struct{}{}
			case domain.AutoStyle:
				postSet[k] = struct{}{}
			}
		}
	}
	return sortedKeys(preSet), sortedKeys(postSet)
}

// Literal returns the first concrete value a timeline declares for a property.
func Literal(tl domain.Timeline, prop string) (string, bool) {
	for _, kf := range tl.Keyframes {
		if v, ok := kf.Styles[prop]; ok && !domain.IsWildcard(v) {
			return v, true
		}
	}
	return "", false
}

// Apply substitutes wildcard tokens. Properties with a token the resolution cannot
// satisfy are removed from every keyframe, so they are not animated at all.
func (r Resolution) Apply(tl domain.Timeline) domain.Timeline {
	unresolved := make(map[string]struct{})
	out := domain.Timeline{Duration: tl.Duration, Easing: tl.Easing, Keyframes: make([]domain.Keyframe, len(tl.Keyframes))}
	for i, kf := range tl.Keyframes {
		styles := make(domain.StyleMap, len(kf.Styles))
		for k, v := range kf.Styles {
			switch v {
			case domain.PreStyle:
				if rv, ok := r.Pre[k]; ok {
					v = rv
				} else {
					unresolved[k] = struct{}{}
				}
			case domain.AutoStyle:
				if rv, ok := r.Post[k]; ok {
					v = rv
				} else {
					unresolved[k] = struct{}{}
				}
			}
			styles[k] = v
		}
		out.Keyframes[i] = domain.Keyframe{Offset: kf.Offset, Easing: kf.Easing, Styles: styles}
	}
	for k := range unresolved {
		for i := range out.Keyframes {
			delete(out.Keyframes[i].Styles, k)
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
