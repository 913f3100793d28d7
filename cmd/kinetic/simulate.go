package main

import (
	"context"

	"github.com/aretw0/kinetic/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a state change against an HTML fixture",
	Long: `Registers a state change on an element of an HTML fixture, applies the host mutation
(--set, --append), flushes and steps the animation on a manual clock, printing every frame.`,
	Example: `  kinetic simulate -f defs.yaml -t expand --html box.html --id box --from closed --to open \
    --append "<p>more content</p>" --driver stepper --frames 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")
		trigger, _ := cmd.Flags().GetString("trigger")
		htmlFile, _ := cmd.Flags().GetString("html")
		id, _ := cmd.Flags().GetString("id")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		set, _ := cmd.Flags().GetStringArray("set")
		appendHTML, _ := cmd.Flags().GetString("append")
		driver, _ := cmd.Flags().GetString("driver")
		frames, _ := cmd.Flags().GetInt("frames")
		realtime, _ := cmd.Flags().GetBool("realtime")
		redisAddr, _ := cmd.Flags().GetString("redis")
		jsonMode, _ := cmd.Flags().GetBool("json")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Simulate(ctx, cli.SimulateOptions{
			File:      file,
			Trigger:   trigger,
			HTMLFile:  htmlFile,
			ElementID: id,
			From:      from,
			To:        to,
			Set:       set,
			Append:    appendHTML,
			Driver:    driver,
			Frames:    frames,
			Realtime:  realtime,
			RedisAddr: redisAddr,
			JSON:      jsonMode,
			Debug:     debug,
		}, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringP("trigger", "t", "", "Trigger name (optional when the file declares one)")
	simulateCmd.Flags().String("html", "", "HTML fixture")
	simulateCmd.Flags().String("id", "", "Id of the animated element")
	simulateCmd.Flags().String("from", "", "Source state")
	simulateCmd.Flags().String("to", "", "Destination state")
	simulateCmd.Flags().StringArray("set", nil, "Inline style set by the host after registering, prop=value (repeatable)")
	simulateCmd.Flags().String("append", "", "Markup appended to the element by the host after registering")
	simulateCmd.Flags().String("driver", "webanim", "Animation driver: webanim, stepper, noop")
	simulateCmd.Flags().Int("frames", 10, "Number of frames to sample (at most 1000)")
	simulateCmd.Flags().Bool("realtime", false, "Step the animation on wall-clock frames (stepper driver)")
	simulateCmd.Flags().String("redis", "", "Redis address for the last-known style cache")
	simulateCmd.Flags().Bool("json", false, "Print the result as JSON")
	_ = simulateCmd.MarkFlagRequired("html")
	_ = simulateCmd.MarkFlagRequired("id")
}
