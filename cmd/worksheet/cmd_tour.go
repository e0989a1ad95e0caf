package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunfmin/go-debug-worksheets/pkg/catalog"
	"github.com/sunfmin/go-debug-worksheets/pkg/debugger"
	"github.com/sunfmin/go-debug-worksheets/pkg/tour"
)

var maxStops int

// tourCmd walks a worksheet under Delve
var tourCmd = &cobra.Command{
	Use:   "tour [sheet]",
	Short: "Run a worksheet under Delve and stop at every breakpoint marker",
	Long: `Build this command with optimizations disabled, run the worksheet under an
embedded Delve server and report the watched variables at every marker hit.

Needs the Go toolchain and must run from the module root (or set source_root).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTour,
}

func init() {
	tourCmd.Flags().IntVar(&maxStops, "max-stops", -1, "stop after this many hits (default from config)")
}

func runTour(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sheet := catalog.All
	if len(args) > 0 {
		sheet = args[0]
	}
	if _, err := catalog.Lookup(sheet); err != nil {
		return err
	}
	if maxStops >= 0 {
		cfg.Tour.MaxStops = maxStops
	}

	report, err := tour.Run(cmd.Context(), debugger.NewClient(), tour.Options{
		SourceRoot: cfg.SourceRoot,
		Package:    cfg.Tour.Package,
		Sheet:      sheet,
		Variant:    cfg.Variant,
		Enable:     cfg.Enable,
		MaxStops:   cfg.Tour.MaxStops,
		Depth:      cfg.Tour.Depth,
		Watch:      cfg.Tour.Watch,
	})
	if err != nil {
		return fmt.Errorf("tour failed: %w", err)
	}
	return report.Write(cmd.OutOrStdout())
}
