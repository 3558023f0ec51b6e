package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/padring/pkg/encode"
	"github.com/OpenTraceLab/padring/pkg/encode/def"
	"github.com/OpenTraceLab/padring/pkg/encode/gds"
	"github.com/OpenTraceLab/padring/pkg/encode/svg"
	"github.com/OpenTraceLab/padring/pkg/layout"
)

var (
	gdsOutput string
	defOutput string
	svgOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate <config>",
	Short: "Generate the pad ring layout",
	Long: `Lay out the pad ring described in <config>, fill every gap with
filler cells and write the result as GDSII, and optionally DEF and SVG.

Without -o the GDSII file is named after the description file.

Examples:
  padring generate ring.cfg -L pads.lef -L fill.lef
  padring generate ring.cfg -L libs/ -o out.gds --svg preview.svg
  padring generate ring.cfg --project padring.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addLibraryFlags(generateCmd)
	generateCmd.Flags().StringVar(&fillerPrefix, "filler", "",
		"only use filler cells whose name starts with this prefix")
	generateCmd.Flags().StringVarP(&gdsOutput, "output", "o", "",
		"GDSII output file")
	generateCmd.Flags().StringVar(&defOutput, "def", "",
		"DEF output file")
	generateCmd.Flags().StringVar(&svgOutput, "svg", "",
		"SVG preview file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := currentOptions(cmd, runOptions{gds: gdsOutput, def: defOutput, svg: svgOutput})
	if err != nil {
		return err
	}
	if opts.gds == "" {
		opts.gds = defaultOutput(args[0])
	}

	placed, err := placeRing(ctx, args[0], opts)
	if err != nil {
		return err
	}
	design, err := placed.design()
	if err != nil {
		return err
	}

	if err := writeFile(opts.gds, func(w io.Writer) error {
		return gds.Encode(w, design)
	}); err != nil {
		return err
	}
	logger.Info("wrote GDSII", "file", opts.gds)

	if opts.def != "" {
		dbu, _ := placed.lib.DatabaseUnits()
		if err := writeFile(opts.def, func(w io.Writer) error {
			return def.Encode(w, design, def.WithDatabaseUnits(dbu), def.WithLogger(logger))
		}); err != nil {
			return err
		}
		logger.Info("wrote DEF", "file", opts.def)
	}

	if opts.svg != "" {
		if err := writeFile(opts.svg, func(w io.Writer) error {
			return svg.Encode(w, design)
		}); err != nil {
			return err
		}
		logger.Info("wrote SVG", "file", opts.svg)
	}

	printSummary(cmd.OutOrStdout(), design, opts.gds)
	return nil
}

// defaultOutput derives the GDSII name from the description file.
func defaultOutput(configPath string) string {
	base := filepath.Base(configPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".gds"
}

// writeFile creates path and removes it again when encoding fails.
func writeFile(path string, encodeTo func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := encodeTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func printSummary(w io.Writer, d *encode.Design, gdsPath string) {
	counts := make(map[layout.Kind]int)
	for _, p := range d.Placements {
		counts[p.Kind]++
	}
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(w, "✓ %s", d.Name)
	fmt.Fprintf(w, " %gx%g: %d placements (%d pads, %d corners, %d fillers) -> %s\n",
		d.Die.Width, d.Die.Height, len(d.Placements),
		counts[layout.KindCell], counts[layout.KindCorner], counts[layout.KindFiller], gdsPath)
}
