package main

import (
	"github.com/aretw0/kinetic/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the triggers of a definitions file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		trigger, _ := cmd.Flags().GetString("trigger")
		format, _ := cmd.Flags().GetString("format")
		current, _ := cmd.Flags().GetString("current")

		return cli.Inspect(cli.InspectOptions{
			File:    file,
			Trigger: trigger,
			Format:  format,
			Current: current,
		}, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("trigger", "t", "", "Only show this trigger")
	inspectCmd.Flags().String("format", "tree", "Output format: tree, mermaid, json")
	inspectCmd.Flags().String("current", "", "State to highlight in mermaid output")
}
