package runtime_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/kinetic/internal/runtime"
	"github.com/aretw0/kinetic/pkg/adapters/clock"
	"github.com/aretw0/kinetic/pkg/adapters/htmldom"
	"github.com/aretw0/kinetic/pkg/adapters/webanim"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/dsl"
	"github.com/stretchr/testify/require"
)

func buildTrigger(t *testing.T, tb *dsl.TriggerBuilder) *domain.Trigger {
	t.Helper()
	trig, err := tb.Build()
	require.NoError(t, err)
	return trig
}

func parse(t *testing.T, markup string) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.ParseString(markup)
	require.NoError(t, err)
	return doc
}

func newWebEngine(opts ...runtime.EngineOption) (*runtime.Engine, *clock.Manual, *webanim.Driver) {
	c := clock.NewManual(time.Unix(0, 0))
	d := webanim.New(c)
	return runtime.NewEngine(d, opts...), c, d
}

func heightOf(t *testing.T, n *htmldom.Node) float64 {
	t.Helper()
	v, err := n.ComputedStyle("height")
	require.NoError(t, err)
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	require.NoError(t, err)
	return f
}
