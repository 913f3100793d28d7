package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kinetic/pkg/adapters/memory"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expand(t *testing.T) *domain.Trigger {
	t.Helper()
	trig, err := dsl.NewTrigger("expand").
		State("closed", dsl.Styles{"height": "0px"}).
		State("open", dsl.Styles{"height": "*"}).
		Transition("closed <=> open").Animate(100, nil).
		Trigger().
		Build()
	require.NoError(t, err)
	return trig
}

func scenario(t *testing.T, driver string) Scenario {
	return Scenario{
		Trigger:    expand(t),
		HTML:       `<div id="box" style="height: 0px; line-height: 20px"></div>`,
		ElementID:  "box",
		From:       "closed",
		To:         "open",
		AppendHTML: `<p>one</p><p>two</p>`,
		Driver:     driver,
		Frames:     4,
	}
}

func heights(frames []Frame) []string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = f.Styles["height"]
	}
	return out
}

func TestRun_FrameDrivers(t *testing.T) {
	for _, driver := range []string{"webanim", "stepper"} {
		t.Run(driver, func(t *testing.T) {
			res, err := Run(context.Background(), scenario(t, driver), Options{})
			require.NoError(t, err)

			assert.Equal(t, driver, res.Driver)
			require.NotNil(t, res.Timeline)
			assert.Equal(t, "40px", res.Timeline.Final()["height"])
			assert.Equal(t, []string{"0px", "10px", "20px", "30px", "40px"}, heights(res.Frames))
			assert.Equal(t, 75*time.Millisecond, res.Frames[3].At)

			assert.Contains(t, res.Before, `height: 0px;`)
			assert.NotContains(t, res.After, "height: 0px", "the open state leaves the height to the content")
			assert.Contains(t, res.After, "<p>two</p>")
			assert.Empty(t, res.Fallbacks)
		})
	}
}

func TestRun_Noop(t *testing.T) {
	res, err := Run(context.Background(), scenario(t, "noop"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"40px"}, heights(res.Frames))
}

func TestRun_NotAnimated(t *testing.T) {
	sc := scenario(t, "")
	sc.From = "open"
	sc.To = "open"
	sc.AppendHTML = ""

	res, err := Run(context.Background(), sc, Options{Cache: memory.NewStyleCache()})
	require.NoError(t, err)
	assert.Equal(t, "webanim", res.Driver)
	assert.Nil(t, res.Timeline)
	assert.Empty(t, res.Frames)
}

func TestRun_SetStyles(t *testing.T) {
	trig, err := dsl.NewTrigger("size").
		Transition("* => *").Animate(100, dsl.Styles{"width": "*"}).
		Trigger().
		Build()
	require.NoError(t, err)

	res, err := Run(context.Background(), Scenario{
		Trigger:   trig,
		HTML:      `<div id="box" style="width: 100px"></div>`,
		ElementID: "box",
		From:      "small",
		To:        "large",
		SetStyles: map[string]string{"width": "300px"},
		Frames:    2,
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.StyleMap{"width": "100px"}, res.Timeline.First())
	assert.Equal(t, domain.StyleMap{"width": "300px"}, res.Timeline.Final())
	assert.Equal(t, "200px", res.Frames[1].Styles["width"])
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	sc := scenario(t, "")
	sc.ElementID = "missing"
	_, err := Run(ctx, sc, Options{})
	assert.ErrorContains(t, err, "missing")

	sc = scenario(t, "gpu")
	_, err = Run(ctx, sc, Options{})
	assert.ErrorContains(t, err, "unknown driver")

	_, err = Run(ctx, Scenario{}, Options{})
	assert.Error(t, err)
}

func TestRun_FramesAreCapped(t *testing.T) {
	sc := scenario(t, "stepper")
	sc.Frames = 2_000_000

	res, err := Run(context.Background(), sc, Options{})
	require.NoError(t, err)
	require.Len(t, res.Frames, MaxFrames+1)
	assert.Equal(t, 100*time.Microsecond, res.Frames[1].At)
	assert.Equal(t, "40px", res.Frames[MaxFrames].Styles["height"])
}

func TestRun_Realtime(t *testing.T) {
	sc := scenario(t, "stepper")
	sc.Realtime = true

	res, err := Run(context.Background(), sc, Options{})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Frames), 2)
	assert.Equal(t, "0px", res.Frames[0].Styles["height"])
	last := res.Frames[len(res.Frames)-1]
	assert.Equal(t, "40px", last.Styles["height"])
	assert.GreaterOrEqual(t, last.At, 100*time.Millisecond)
	assert.Contains(t, res.After, "<p>two</p>")

	sc = scenario(t, "webanim")
	sc.Realtime = true
	_, err = Run(context.Background(), sc, Options{})
	assert.ErrorContains(t, err, "realtime")
}

func TestRun_RealtimeCancelled(t *testing.T) {
	sc := scenario(t, "stepper")
	sc.Realtime = true
	sc.Trigger.Transitions[0].Steps[0].Timing.Duration = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Run(ctx, sc, Options{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
