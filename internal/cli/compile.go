package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/kinetic/internal/compiler"
	"github.com/aretw0/kinetic/internal/presentation/tui"
	"github.com/aretw0/kinetic/pkg/domain"
)

// CompileOptions configures the compile command.
type CompileOptions struct {
	File    string
	Trigger string
	From    string
	To      string
	// Pre and Post hold "prop=value" pairs substituted for "!" and "*".
	Pre    []string
	Post   []string
	Format string
}

// Compile prints the timeline of one state change.
func Compile(opts CompileOptions, stdin io.Reader, w io.Writer) error {
	triggers, err := loadTriggers(opts.File, stdin)
	if err != nil {
		return err
	}
	trigger, err := findTrigger(triggers, opts.Trigger)
	if err != nil {
		return err
	}

	tl, tr, err := compiler.CompileTransition(trigger, opts.From, opts.To)
	if err != nil {
		return err
	}

	pre, err := parseStyles(opts.Pre)
	if err != nil {
		return err
	}
	post, err := parseStyles(opts.Post)
	if err != nil {
		return err
	}
	if len(pre) > 0 || len(post) > 0 {
		tl = compiler.Resolution{Pre: pre, Post: post}.Apply(tl)
	}

	title := fmt.Sprintf("%s: %s => %s (%s)", trigger.Name, opts.From, opts.To, tr.Expr)
	return writeTimeline(w, opts.Format, title, tl)
}

func writeTimeline(w io.Writer, format, title string, tl domain.Timeline) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(map[string]any{
			"duration_ms": tl.Duration.Milliseconds(),
			"keyframes":   tl.Flatten(),
		})
	case "markdown":
		md := tui.TimelineMarkdown(title, tl)
		if !isTerminal(w) {
			_, err := io.WriteString(w, md)
			return err
		}
		render, err := tui.NewRenderer(terminalWidth(w))
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case "", "table":
		fmt.Fprintf(w, "%s  duration=%s\n", title, tl.Duration)
		return tui.WriteTimeline(w, tl, colorProfile(w))
	}
	return fmt.Errorf("unknown format %q (table, json, markdown)", format)
}
