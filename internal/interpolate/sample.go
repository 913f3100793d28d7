package interpolate

import (
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/fogleman/ease"
)

// Sample returns the styles of a timeline at normalized position p.
//
// The timeline easing shapes the overall progress; each keyframe's easing shapes the
// segment it opens. Position 1 yields the last keyframe verbatim.
func Sample(tl domain.Timeline, p float64) domain.StyleMap {
	n := len(tl.Keyframes)
	switch {
	case n == 0:
		return domain.StyleMap{}
	case n == 1:
		return tl.Keyframes[0].Styles.Clone()
	}

	p = Clamp(p)
	if p >= 1 {
		return tl.Keyframes[n-1].Styles.Clone()
	}
	p = easingOrLinear(tl.Easing)(p)

	i := 0
	for i < n-2 && tl.Keyframes[i+1].Offset <= p {
		i++
	}
	from, to := tl.Keyframes[i], tl.Keyframes[i+1]

	span := to.Offset - from.Offset
	if span <= 0 {
		return to.Styles.Clone()
	}
	local := Clamp((p - from.Offset) / span)
	local = easingOrLinear(from.Easing)(local)

	out := make(domain.StyleMap, len(to.Styles))
	for prop, a := range from.Styles {
		z, ok := to.Styles[prop]
		if !ok {
			out[prop] = a
			continue
		}
		out[prop] = Value(a, z, local)
	}
	for prop, z := range to.Styles {
		if _, ok := out[prop]; !ok {
			out[prop] = z
		}
	}
	return out
}

// Clamp limits p to [0, 1].
func Clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func easingOrLinear(name string) EasingFunc {
	fn, err := Easing(name)
	if err != nil {
		return ease.Linear
	}
	return fn
}
