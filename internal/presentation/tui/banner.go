package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the kinetic banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _     _             _   _      ", "#818cf8"},
		{"| | __(_)_ __   ___ | |_(_) ___ ", "#a78bfa"},
		{"| |/ /| | '_ \\ / _ \\| __| |/ __|", "#c084fc"},
		{"|   < | | | | |  __/| |_| | (__ ", "#e879f9"},
		{"|_|\\_\\|_|_| |_|\\___| \\__|_|\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
