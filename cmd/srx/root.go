package main

import (
	"github.com/spf13/cobra"
)

var (
	rulesPath  string
	schemaPath string
)

var rootCmd = &cobra.Command{
	Use:   "srx",
	Short: "srx - SRX-driven sentence segmenter",
	Long: `srx splits natural-language text into sentences using segmentation
rules in the SRX 2.0 format. It reads text from standard input and
writes one segment per output line.

Rules can come from an SRX XML file, a YAML ruleset, or the builtin
default ruleset embedded in the binary.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Path to ruleset file (SRX XML or YAML; default builtin)")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to an SRX schema; enables ruleset validation")

	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
