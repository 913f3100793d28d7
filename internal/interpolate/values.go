package interpolate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	numberPattern = regexp.MustCompile(`-?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
	lengthPattern = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))([a-zA-Z%]*)$`)
	rgbPattern    = regexp.MustCompile(`^rgba?\(\s*([\d.]+)\s*,\s*([\d.]+)\s*,\s*([\d.]+)\s*(?:,\s*([\d.]+)\s*)?\)$`)
)

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"gray":   "#808080",
	"grey":   "#808080",
}

// Value interpolates between two CSS values at progress t.
//
// Colours blend in RGB space. Values sharing the same textual skeleton (for example
// "10px" and "20px", or "translate(0px, 5px)" and "translate(10px, 0px)") interpolate
// every number. Anything else is discrete: the nearer endpoint wins and a tie goes to
// the later one.
func Value(from, to string, t float64) string {
	switch {
	case from == to:
		return to
	case t <= 0:
		return from
	case t >= 1:
		return to
	}

	if c1, a1, ok := ParseColor(from); ok {
		if c2, a2, ok := ParseColor(to); ok {
			return formatColor(c1.BlendRgb(c2, t).Clamped(), a1+(a2-a1)*t)
		}
	}

	from, to = alignUnits(from, to)
	if out, ok := numeric(from, to, t); ok {
		return out
	}

	if t < 0.5 {
		return from
	}
	return to
}

// IsNumeric reports whether v holds at least one number token.
func IsNumeric(v string) bool {
	return numberPattern.MatchString(v)
}

// ParseLength splits a single number with an optional unit ("12.5px" -> 12.5, "px").
func ParseLength(v string) (float64, string, bool) {
	m := lengthPattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return 0, "", false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return f, strings.ToLower(m[2]), true
}

// ParseColor understands hex notations, rgb()/rgba() and a few named colours.
// The second result is the alpha channel.
func ParseColor(v string) (colorful.Color, float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if strings.HasPrefix(v, "#") {
		if len(v) == 4 {
			v = "#" + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2) + strings.Repeat(v[3:4], 2)
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		return c, 1, true
	}
	m := rgbPattern.FindStringSubmatch(v)
	if m == nil {
		return colorful.Color{}, 0, false
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		ch[i] = f / 255
	}
	alpha := 1.0
	if m[4] != "" {
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return colorful.Color{}, 0, false
		}
		alpha = a
	}
	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, alpha, true
}

func formatColor(c colorful.Color, alpha float64) string {
	if alpha >= 1 {
		return c.Hex()
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, FormatNumber(alpha))
}

// alignUnits gives a unitless zero the unit of its counterpart, so "0" and "100px"
// interpolate as lengths.
func alignUnits(from, to string) (string, string) {
	fv, fu, fok := ParseLength(from)
	tv, tu, tok := ParseLength(to)
	if !fok || !tok || fu == tu {
		return from, to
	}
	if fu == "" && fv == 0 {
		return "0" + tu, to
	}
	if tu == "" && tv == 0 {
		return from, "0" + fu
	}
	return from, to
}

func numeric(from, to string, t float64) (string, bool) {
	fromNums := numberPattern.FindAllStringIndex(from, -1)
	toNums := numberPattern.FindAllStringIndex(to, -1)
	if len(fromNums) == 0 || len(fromNums) != len(toNums) {
		return "", false
	}
	if skeleton(from, fromNums) != skeleton(to, toNums) {
		return "", false
	}

	var b strings.Builder
	last := 0
	for i, loc := range toNums {
		a, err1 := strconv.ParseFloat(from[fromNums[i][0]:fromNums[i][1]], 64)
		z, err2 := strconv.ParseFloat(to[loc[0]:loc[1]], 64)
		if err1 != nil || err2 != nil {
			return "", false
		}
		b.WriteString(to[last:loc[0]])
		b.WriteString(FormatNumber(a + (z-a)*t))
		last = loc[1]
	}
	b.WriteString(to[last:])
	return b.String(), true
}

func skeleton(v string, locs [][]int) string {
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(v[last:loc[0]])
		b.WriteString("#")
		last = loc[1]
	}
	b.WriteString(v[last:])
	return b.String()
}

// FormatNumber prints a float with at most four decimals and no trailing zeros.
func FormatNumber(v float64) string {
	v = math.Round(v*10000) / 10000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
