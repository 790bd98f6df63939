package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the language rules and maps of the active ruleset",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	header := color.New(color.FgCyan, color.Bold)

	cascade := "no"
	if doc.Cascade() {
		cascade = "yes"
	}
	header.Fprintln(out, "Ruleset")
	fmt.Fprintf(out, "  cascade: %s\n\n", cascade)

	header.Fprintln(out, "Language maps")
	for _, lm := range doc.LanguageMaps() {
		fmt.Fprintf(out, "  %-20s -> %s\n", lm.Pattern(), lm.LanguageRule().Name)
	}
	fmt.Fprintln(out)

	header.Fprintln(out, "Language rules")
	printed := make(map[string]bool)
	for _, lm := range doc.LanguageMaps() {
		lr := lm.LanguageRule()
		if printed[lr.Name] {
			continue
		}
		printed[lr.Name] = true

		breaks, exceptions := 0, 0
		for _, r := range lr.Rules() {
			if r.Break {
				breaks++
			} else {
				exceptions++
			}
		}
		fmt.Fprintf(out, "  %-20s %d break, %d exception\n", lr.Name, breaks, exceptions)
	}

	return nil
}
