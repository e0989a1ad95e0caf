package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sunfmin/go-debug-worksheets/pkg/catalog"
)

// listCmd prints the catalog
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List worksheets, exercises and opt-in switches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, sheet := range catalog.Sheets() {
		fmt.Fprintf(out, "%s: %s\n", sheet.Name, sheet.Title)
		for i, ex := range sheet.Exercises {
			line := fmt.Sprintf("  %2d. %-16s %s", i+1, ex.Name, ex.Title)
			if ex.Disabled {
				line += "  [disabled]"
			}
			if len(ex.Paths) > 0 {
				line += "  paths: " + strings.Join(ex.Paths, ", ")
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Opt-in switches (--enable): %s\n", strings.Join(catalog.Switches(), ", "))
	return nil
}
