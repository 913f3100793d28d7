package domain

import (
	"fmt"
	"sort"
	"time"
)

// Keyframe is a style snapshot at a normalized offset. Easing shapes the segment that
// starts at this keyframe.
type Keyframe struct {
	Offset float64  `json:"offset"`
	Easing string   `json:"easing,omitempty"`
	Styles StyleMap `json:"styles"`
}

// Timeline is the compiled, ordered keyframe sequence of one animation.
type Timeline struct {
	Keyframes []Keyframe    `json:"keyframes"`
	Duration  time.Duration `json:"duration"`
	Easing    string        `json:"easing,omitempty"`
}

// Properties returns every animated property, sorted.
func (t Timeline) Properties() []string {
	seen := make(map[string]struct{})
	for _, kf := range t.Keyframes {
		for k := range kf.Styles {
			seen[k] = struct{}{}
		}
	}
	props := make([]string, 0, len(seen))
	for k := range seen {
		props = append(props, k)
	}
	sort.Strings(props)
	return props
}

// First returns the starting snapshot.
func (t Timeline) First() StyleMap {
	if len(t.Keyframes) == 0 {
		return StyleMap{}
	}
	return t.Keyframes[0].Styles.Clone()
}

// Final returns the final snapshot.
func (t Timeline) Final() StyleMap {
	if len(t.Keyframes) == 0 {
		return StyleMap{}
	}
	return t.Keyframes[len(t.Keyframes)-1].Styles.Clone()
}

// Validate checks the timeline invariants: at least two keyframes, offsets within [0, 1]
// and non-decreasing, first offset 0 and last offset 1.
func (t Timeline) Validate() error {
	n := len(t.Keyframes)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 keyframes, got %d", ErrInvalidTimeline, n)
	}
	if t.Keyframes[0].Offset != 0 {
		return fmt.Errorf("%w: first offset is %v", ErrInvalidTimeline, t.Keyframes[0].Offset)
	}
	if t.Keyframes[n-1].Offset != 1 {
		return fmt.Errorf("%w: last offset is %v", ErrInvalidTimeline, t.Keyframes[n-1].Offset)
	}
	for i := 1; i < n; i++ {
		if t.Keyframes[i].Offset < t.Keyframes[i-1].Offset {
			return fmt.Errorf("%w: offset %v after %v", ErrInvalidTimeline, t.Keyframes[i].Offset, t.Keyframes[i-1].Offset)
		}
	}
	return nil
}

// Flatten renders the keyframes in the Web Animations shape: one map per keyframe with
// its styles plus an "offset" entry.
func (t Timeline) Flatten() []map[string]any {
	out := make([]map[string]any, 0, len(t.Keyframes))
	for _, kf := range t.Keyframes {
		m := make(map[string]any, len(kf.Styles)+2)
		for k, v := range kf.Styles {
			m[k] = v
		}
		m["offset"] = kf.Offset
		if kf.Easing != "" {
			m["easing"] = kf.Easing
		}
		out = append(out, m)
	}
	return out
}
