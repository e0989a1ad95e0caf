package main

import (
	"github.com/spf13/cobra"

	"github.com/sunfmin/go-debug-worksheets/pkg/catalog"
	"github.com/sunfmin/go-debug-worksheets/pkg/worksheet"
)

// runCmd narrates worksheets to stdout
var runCmd = &cobra.Command{
	Use:   "run [sheet...]",
	Short: "Run worksheets (basics, advanced or all)",
	Long: `Run worksheets and print their narration.

An opted-in crash path is not recovered: the process dies the way the defect
would make a real program die.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := worksheet.RunOptions{Variant: cfg.VariantValue(), Enable: cfg.Enable}
	for _, name := range sheetNames(cfg, args) {
		sheets, err := catalog.Lookup(name)
		if err != nil {
			return err
		}
		for _, sheet := range sheets {
			if err := sheet.RunAll(cmd.OutOrStdout(), opts); err != nil {
				return err
			}
		}
	}
	return nil
}
