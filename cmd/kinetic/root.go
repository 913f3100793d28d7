package main

import (
	"fmt"
	"os"

	"github.com/aretw0/kinetic/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "kinetic",
	Short: "Kinetic compiles and previews declarative animations",
	Long: `Kinetic reads trigger definitions (states, transitions and animate steps) and
compiles state changes into keyframe timelines. It can inspect definitions, simulate a
state change against an HTML fixture and serve previews over HTTP.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "Trigger definitions file (YAML or JSON, - for stdin)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log engine events to stderr")
}
