package interpolate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/fogleman/ease"
)

// EasingFunc maps linear progress in [0, 1] to eased progress.
type EasingFunc func(t float64) float64

var bezierPattern = regexp.MustCompile(`^cubic-bezier\(\s*([^,]+),\s*([^,]+),\s*([^,]+),\s*([^)]+)\)$`)

var cssKeywords = map[string][4]float64{
	"ease":        {0.25, 0.1, 0.25, 1},
	"ease-in":     {0.42, 0, 1, 1},
	"ease-out":    {0, 0, 0.58, 1},
	"ease-in-out": {0.42, 0, 0.58, 1},
}

var penner = map[string]EasingFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"inquart":      ease.InQuart,
	"outquart":     ease.OutQuart,
	"inoutquart":   ease.InOutQuart,
	"inquint":      ease.InQuint,
	"outquint":     ease.OutQuint,
	"inoutquint":   ease.InOutQuint,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"incirc":       ease.InCirc,
	"outcirc":      ease.OutCirc,
	"inoutcirc":    ease.InOutCirc,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"inbounce":     ease.InBounce,
	"outbounce":    ease.OutBounce,
	"inoutbounce":  ease.InOutBounce,
	"inelastic":    ease.InElastic,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// Easing resolves an easing name. It accepts the empty string (linear), the CSS
// keywords, cubic-bezier(x1, y1, x2, y2) and Penner names in any case and separator
// style ("in-out-quad", "InOutQuad").
func Easing(name string) (EasingFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ease.Linear, nil
	}
	if p, ok := cssKeywords[name]; ok {
		return CubicBezier(p[0], p[1], p[2], p[3]), nil
	}
	if m := bezierPattern.FindStringSubmatch(name); m != nil {
		var p [4]float64
		for i := range p {
			f, err := strconv.ParseFloat(strings.TrimSpace(m[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTiming, name)
			}
			p[i] = f
		}
		if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
			return nil, fmt.Errorf("%w: bezier x values must be within [0, 1]: %q", domain.ErrInvalidTiming, name)
		}
		return CubicBezier(p[0], p[1], p[2], p[3]), nil
	}
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	if fn, ok := penner[key]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: unknown easing %q", domain.ErrInvalidTiming, name)
}

// IsEasing reports whether name resolves to an easing function.
func IsEasing(name string) bool {
	_, err := Easing(name)
	return err == nil
}

// CubicBezier builds the CSS cubic-bezier timing function with fixed end points
// (0,0) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			d := sampleX(t) - x
			if math.Abs(d) < 1e-7 {
				return t
			}
			s := slopeX(t)
			if math.Abs(s) < 1e-6 {
				break
			}
			t -= d / s
		}
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 50 && lo < hi; i++ {
			v := sampleX(t)
			if math.Abs(v-x) < 1e-7 {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return sampleY(solve(x))
	}
}
