// padtool inspects controller models and palettes without opening a window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "padtool",
	Short: "Inspect padforge models and palettes",
	Long: `padtool lists the parts of a controller model the way the configurator
registers them and matches colors against the configured palette.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to padforge.yaml (defaults to the standard locations)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
