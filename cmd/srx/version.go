package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version, overridable at build time via
// -ldflags "-X main.Version=...".
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the srx version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "srx %s\n", Version)
	},
}
