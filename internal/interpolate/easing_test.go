package interpolate

import (
	"errors"
	"testing"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasing_Names(t *testing.T) {
	for _, name := range []string{"", "linear", "ease", "ease-in", "ease-out", "ease-in-out", "in-out-quad", "InOutCubic", "out_bounce", "cubic-bezier(0.4, 0, 0.2, 1)"} {
		fn, err := Easing(name)
		require.NoError(t, err, name)
		assert.InDelta(t, 0, fn(0), 1e-6, name)
		assert.InDelta(t, 1, fn(1), 1e-6, name)
	}
}

func TestEasing_Invalid(t *testing.T) {
	for _, name := range []string{"wobbly", "cubic-bezier(2, 0, 0.5, 1)", "cubic-bezier(a, 0, 0.5, 1)"} {
		_, err := Easing(name)
		assert.True(t, errors.Is(err, domain.ErrInvalidTiming), name)
	}
}

func TestCubicBezier_MatchesLinearDiagonal(t *testing.T) {
	fn := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		assert.InDelta(t, x, fn(x), 1e-4)
	}

	easeIn, err := Easing("ease-in")
	require.NoError(t, err)
	assert.Less(t, easeIn(0.5), 0.5, "ease-in starts slow")
}
