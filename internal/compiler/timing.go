package compiler

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/kinetic/internal/interpolate"
	"github.com/aretw0/kinetic/pkg/domain"
)

var timingPattern = regexp.MustCompile(`^(-?[.\d]+)(m?s)(?:\s+(-?[.\d]+)(m?s))?(?:\s+(.+))?$`)

// ParseTiming reads an animate timing. Accepted inputs are a number of milliseconds
// (int or float), a time.Duration, a domain.Timing, or a string of the form
// "<duration> [<delay>] [<easing>]" such as "1s", "250ms 100ms ease-out" or
// "0.5s cubic-bezier(0.4, 0, 0.2, 1)".
func ParseTiming(v any) (domain.Timing, error) {
	switch t := v.(type) {
	case domain.Timing:
		return t, validateTiming(t)
	case time.Duration:
		return domain.Timing{Duration: t}, validateTiming(domain.Timing{Duration: t})
	case int:
		return msTiming(float64(t))
	case int64:
		return msTiming(float64(t))
	case float64:
		return msTiming(t)
	case string:
		return parseTimingString(t)
	case nil:
		return domain.Timing{}, fmt.Errorf("%w: missing timing", domain.ErrInvalidTiming)
	}
	return domain.Timing{}, fmt.Errorf("%w: unsupported type %T", domain.ErrInvalidTiming, v)
}

func msTiming(ms float64) (domain.Timing, error) {
	if ms < 0 || math.IsNaN(ms) {
		return domain.Timing{}, fmt.Errorf("%w: negative duration %v", domain.ErrInvalidTiming, ms)
	}
	return domain.Timing{Duration: time.Duration(ms * float64(time.Millisecond))}, nil
}

func parseTimingString(s string) (domain.Timing, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return msTiming(ms)
	}

	m := timingPattern.FindStringSubmatch(s)
	if m == nil {
		return domain.Timing{}, fmt.Errorf("%w: %q", domain.ErrInvalidTiming, s)
	}

	var timing domain.Timing
	d, err := parseDuration(m[1], m[2])
	if err != nil {
		return domain.Timing{}, err
	}
	timing.Duration = d

	if m[3] != "" {
		delay, err := parseDuration(m[3], m[4])
		if err != nil {
			return domain.Timing{}, err
		}
		timing.Delay = delay
	}
	timing.Easing = strings.TrimSpace(m[5])

	return timing, validateTiming(timing)
}

func parseDuration(num, unit string) (time.Duration, error) {
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidTiming, num+unit)
	}
	if unit == "s" {
		f *= 1000
	}
	return time.Duration(f * float64(time.Millisecond)), nil
}

func validateTiming(t domain.Timing) error {
	if t.Duration < 0 {
		return fmt.Errorf("%w: negative duration %s", domain.ErrInvalidTiming, t.Duration)
	}
	if t.Delay < 0 {
		return fmt.Errorf("%w: negative delay %s", domain.ErrInvalidTiming, t.Delay)
	}
	if t.Easing != "" && !interpolate.IsEasing(t.Easing) {
		return fmt.Errorf("%w: unknown easing %q", domain.ErrInvalidTiming, t.Easing)
	}
	return nil
}
