package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunfmin/go-debug-worksheets/pkg/catalog"
	"github.com/sunfmin/go-debug-worksheets/pkg/worksheet"
)

var contextLines int

// compareCmd diffs the buggy and fixed narrations
var compareCmd = &cobra.Command{
	Use:   "compare [sheet...]",
	Short: "Show how the fixed variant's output differs from the buggy one",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().IntVar(&contextLines, "context", 3, "lines of context around each change")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range sheetNames(cfg, args) {
		sheets, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		for _, sheet := range sheets {
			diff, err := worksheet.Compare(sheet, cfg.Enable, contextLines)
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintf(out, "%s: no differences\n", sheet.Name)
				continue
			}
			fmt.Fprint(out, diff)
		}
	}
	return nil
}
