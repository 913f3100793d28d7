package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/kinetic/internal/presentation/graph"
	"github.com/aretw0/kinetic/internal/presentation/tui"
	"github.com/aretw0/kinetic/pkg/domain"
)

// InspectOptions configures the inspect command.
type InspectOptions struct {
	File    string
	Trigger string
	Format  string
	// Current highlights a state in the mermaid output.
	Current string
}

// Inspect prints the declared triggers.
func Inspect(opts InspectOptions, stdin io.Reader, w io.Writer) error {
	triggers, err := loadTriggers(opts.File, stdin)
	if err != nil {
		return err
	}
	if opts.Trigger != "" {
		t, err := findTrigger(triggers, opts.Trigger)
		if err != nil {
			return err
		}
		triggers = []*domain.Trigger{t}
	}

	switch opts.Format {
	case "", "tree":
		_, err = io.WriteString(w, tui.TriggerTree(triggers))
		return err
	case "mermaid":
		var overlay *graph.StateOverlay
		if opts.Current != "" {
			overlay = &graph.StateOverlay{Current: opts.Current}
		}
		for _, t := range triggers {
			fmt.Fprintf(w, "%%%% %s\n%s", t.Name, graph.GenerateMermaid(t, overlay))
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(triggers)
	}
	return fmt.Errorf("unknown format %q (tree, mermaid, json)", opts.Format)
}
