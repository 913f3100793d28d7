package main

import (
	"github.com/aretw0/kinetic/internal/cli"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a state change into a keyframe timeline",
	Long: `Compiles the transition a trigger takes from one state to another. Wildcard values
can be supplied with --pre (for "!") and --post (for "*"); unresolved ones are printed as is.`,
	Example: `  kinetic compile -f defs.yaml -t expand --from open --to closed --pre height=100px
  kinetic compile -f defs.yaml -t expand --from closed --to open --post height=240px --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		trigger, _ := cmd.Flags().GetString("trigger")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		pre, _ := cmd.Flags().GetStringArray("pre")
		post, _ := cmd.Flags().GetStringArray("post")
		format, _ := cmd.Flags().GetString("format")

		return cli.Compile(cli.CompileOptions{
			File:    file,
			Trigger: trigger,
			From:    from,
			To:      to,
			Pre:     pre,
			Post:    post,
			Format:  format,
		}, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringP("trigger", "t", "", "Trigger name (optional when the file declares one)")
	compileCmd.Flags().String("from", "", "Source state")
	compileCmd.Flags().String("to", "", "Destination state")
	compileCmd.Flags().StringArray("pre", nil, "Captured pre-change value, prop=value (repeatable)")
	compileCmd.Flags().StringArray("post", nil, "Measured post-change value, prop=value (repeatable)")
	compileCmd.Flags().String("format", "table", "Output format: table, json, markdown")
	_ = compileCmd.MarkFlagRequired("from")
	_ = compileCmd.MarkFlagRequired("to")
}
