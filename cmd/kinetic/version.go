package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/kinetic"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kinetic",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kinetic version %s\n", strings.TrimSpace(kinetic.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
