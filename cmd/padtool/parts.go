package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/padforge/internal/assets"
	"github.com/Faultbox/padforge/internal/config"
	"github.com/Faultbox/padforge/internal/configurator"
)

var partsCmd = &cobra.Command{
	Use:   "parts [model]",
	Short: "List the parts of a model",
	Long: `List every named mesh in registration order with whether it can be selected,
its display name and its color after material overrides.`,
	Args: cobra.ExactArgs(1),
	RunE: runParts,
}

func init() {
	rootCmd.AddCommand(partsCmd)
}

func runParts(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	model, err := assets.NewLoader(assets.NewManager(cfg.Model.SearchDirs...), nil).Load(args[0])
	if err != nil {
		return err
	}
	return writeParts(cmd.OutOrStdout(), cfg, model)
}

// writeParts prints a part table for model.
func writeParts(out io.Writer, cfg *config.Config, model *assets.Model) error {
	overrides, err := cfg.Model.BuildMaterialOverrides()
	if err != nil {
		return err
	}
	reg, _ := configurator.Build(model.Root, overrides)

	fmt.Fprintf(out, "%s: %d meshes, %d materials, %d textures\n\n",
		model.Path, model.MeshCount, model.MaterialCount, model.TextureCount)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPART\tSELECTABLE\tDISPLAY NAME\tCOLOR")
	for i, name := range reg.Names() {
		mesh, _ := reg.Get(name)
		selectable := "yes"
		if slices.Contains(cfg.Configurator.ExcludedParts, name) {
			selectable = "no"
		}
		color := "-"
		if mesh.Material != nil {
			color = mesh.Material.Color.Hex()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, name, selectable,
			configurator.DisplayName(cfg.Configurator.DisplayNames, name), color)
	}
	return w.Flush()
}
