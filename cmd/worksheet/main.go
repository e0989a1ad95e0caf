// Command worksheet runs the debugging worksheets, walks them under Delve and
// serves them to MCP clients.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunfmin/go-debug-worksheets/pkg/catalog"
	"github.com/sunfmin/go-debug-worksheets/pkg/config"
	"github.com/sunfmin/go-debug-worksheets/pkg/logger"
)

// Version is set during build
var Version = "dev"

var (
	configPath string
	variant    string
	enable     []string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "worksheet",
	Short: "Debugging worksheets for practicing with a debugger",
	Long: `Each worksheet is a series of short exercises, most with an intentional defect
to find with a debugger. Crash paths are disabled by default and can be opted
into with --enable. The fixed variant runs the corrected code.

Set breakpoints on the BREAKPOINT marker comments in pkg/basics and pkg/advanced,
or let "worksheet tour" stop at every one of them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "buggy or fixed (default from config, else buggy)")
	rootCmd.PersistentFlags().StringSliceVar(&enable, "enable", nil, "disabled exercise or crash path to opt into (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(listCmd, runCmd, compareCmd, tourCmd, serveCmd)
}

// loadConfig reads the config file and applies the command line over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if variant != "" {
		cfg.Variant = variant
	}
	cfg.Enable = append(cfg.Enable, enable...)
	if verbose {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if cfg.Debug {
		logger.SetDebug(true)
	}
	logger.Debug("Loaded config", "path", configPath, "variant", cfg.Variant, "enable", cfg.Enable)
	return cfg, nil
}

// sheetNames returns the sheets named on the command line, else the configured ones.
func sheetNames(cfg config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}
	if len(cfg.Sheets) > 0 {
		return cfg.Sheets
	}
	return []string{catalog.All}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
