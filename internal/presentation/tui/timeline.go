package tui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/kinetic/internal/interpolate"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/muesli/termenv"
)

// TimelineMarkdown renders a timeline as a markdown table, one row per keyframe and one
// column per property.
func TimelineMarkdown(title string, tl domain.Timeline) string {
	props := tl.Properties()

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", title)
	fmt.Fprintf(&sb, "Duration: **%s**\n\n", tl.Duration)

	sb.WriteString("| offset | easing |")
	for _, p := range props {
		fmt.Fprintf(&sb, " %s |", p)
	}
	sb.WriteString("\n|---|---|")
	sb.WriteString(strings.Repeat("---|", len(props)))
	sb.WriteString("\n")

	for _, kf := range tl.Keyframes {
		easing := kf.Easing
		if easing == "" {
			easing = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s |", interpolate.FormatNumber(kf.Offset), easing)
		for _, p := range props {
			fmt.Fprintf(&sb, " `%s` |", kf.Styles[p])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteTimeline writes a timeline as an aligned table. Wildcard tokens are highlighted
// with the colour profile p; termenv.Ascii disables colour.
func WriteTimeline(w io.Writer, tl domain.Timeline, p termenv.Profile) error {
	props := tl.Properties()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := append([]string{"OFFSET", "EASING"}, props...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, kf := range tl.Keyframes {
		row := []string{interpolate.FormatNumber(kf.Offset), kf.Easing}
		for _, prop := range props {
			row = append(row, Highlight(kf.Styles[prop], p))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Highlight colours wildcard tokens so unresolved values stand out.
func Highlight(v string, p termenv.Profile) string {
	if p == termenv.Ascii {
		return v
	}
	switch v {
	case domain.AutoStyle:
		return p.String(v).Foreground(p.Color("#f472b6")).Bold().String()
	case domain.PreStyle:
		return p.String(v).Foreground(p.Color("#818cf8")).Bold().String()
	}
	return v
}
