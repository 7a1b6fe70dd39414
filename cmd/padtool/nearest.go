package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faultbox/padforge/internal/config"
	"github.com/Faultbox/padforge/pkg/paint"
)

var nearestCmd = &cobra.Command{
	Use:   "nearest [#rrggbb]",
	Short: "Find the palette swatch closest to a color",
	Args:  cobra.ExactArgs(1),
	RunE:  runNearest,
}

func init() {
	rootCmd.AddCommand(nearestCmd)
}

func runNearest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	palette, err := cfg.Configurator.BuildPalette()
	if err != nil {
		return err
	}
	return writeNearest(cmd.OutOrStdout(), palette, args[0])
}

// writeNearest prints the swatch of palette closest to value.
func writeNearest(out io.Writer, palette *paint.Palette, value string) error {
	c, err := paint.ParseHex(value)
	if err != nil {
		return err
	}
	i := palette.Closest(c)
	if i < 0 {
		return errors.New("palette is empty")
	}
	s := palette.At(i)
	exact := ""
	if s.Color() == c {
		exact = " (exact)"
	}
	fmt.Fprintf(out, "%d %s %s distance %.1f%s\n", i+1, s.Name, s.Color().Hex(), paint.Distance(c, s.Color()), exact)
	return nil
}
