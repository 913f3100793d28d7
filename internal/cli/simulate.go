package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/kinetic/internal/presentation/tui"
	"github.com/aretw0/kinetic/internal/simulation"
	"github.com/aretw0/kinetic/pkg/adapters/redis"
	"github.com/aretw0/kinetic/pkg/ports"
)

// SimulateOptions configures the simulate command.
type SimulateOptions struct {
	File      string
	Trigger   string
	HTMLFile  string
	ElementID string
	From      string
	To        string
	// Set holds "prop=value" inline styles applied between register and flush.
	Set []string
	// Append is markup appended to the element between register and flush.
	Append    string
	Driver    string
	Frames    int
	// Realtime steps the animation on wall-clock frames (stepper driver only).
	Realtime  bool
	RedisAddr string
	JSON      bool
	Debug     bool
}

// Simulate plays a state change against an HTML fixture and prints every frame.
func Simulate(ctx *SignalContext, opts SimulateOptions, stdin io.Reader, w io.Writer) error {
	triggers, err := loadTriggers(opts.File, stdin)
	if err != nil {
		return err
	}
	trigger, err := findTrigger(triggers, opts.Trigger)
	if err != nil {
		return err
	}

	markup, err := os.ReadFile(opts.HTMLFile)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	set, err := parseStyles(opts.Set)
	if err != nil {
		return err
	}

	logger := createLogger(opts.Debug)
	simOpts := simulation.Options{
		Logger: logger,
		Hooks:  createDebugHooks(logger, opts.Debug),
	}
	if opts.RedisAddr != "" {
		cache := redis.New(opts.RedisAddr, "", 0)
		defer cache.Close()
		simOpts.Cache = ports.StyleCache(cache)
	}

	res, err := simulation.Run(ctx, simulation.Scenario{
		Trigger:    trigger,
		HTML:       string(markup),
		ElementID:  opts.ElementID,
		From:       opts.From,
		To:         opts.To,
		SetStyles:  set,
		AppendHTML: opts.Append,
		Driver:     opts.Driver,
		Frames:     opts.Frames,
		Realtime:   opts.Realtime,
	}, simOpts)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}
	return printResult(w, trigger.Name, opts, res)
}

func printResult(w io.Writer, name string, opts SimulateOptions, res *simulation.Result) error {
	fmt.Fprintf(w, "%s: %s => %s on #%s (driver %s)\n", name, opts.From, opts.To, opts.ElementID, res.Driver)
	for _, fb := range res.Fallbacks {
		fmt.Fprintf(w, "fallback: %s %s=%q cached=%t\n", fb.Token, fb.Property, fb.Value, fb.Cached)
	}

	if res.Timeline == nil {
		fmt.Fprintln(w, "no animation: state styles applied")
	} else {
		if err := tui.WriteTimeline(w, *res.Timeline, colorProfile(w)); err != nil {
			return err
		}
		fmt.Fprintln(w)
		for _, f := range res.Frames {
			fmt.Fprintf(w, "%8s  %s\n", f.At, f.Styles)
		}
	}

	fmt.Fprintf(w, "before: %s\nafter:  %s\n", res.Before, res.After)
	return nil
}
