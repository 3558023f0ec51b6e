package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/padring/pkg/filler"
	"github.com/OpenTraceLab/padring/pkg/library"
)

var cellsCmd = &cobra.Command{
	Use:   "cells",
	Short: "List the cells of the loaded libraries",
	Long: `Load the given LEF files and list every macro with its class and size.
Filler cells are marked; with --filler only cells matching the prefix are.

Examples:
  padring cells -L pads.lef -L fill.lef
  padring cells -L libs/ --filler FILL`,
	Args: cobra.NoArgs,
	RunE: runCells,
}

func init() {
	rootCmd.AddCommand(cellsCmd)

	addLibraryFlags(cellsCmd)
	cellsCmd.Flags().StringVar(&fillerPrefix, "filler", "",
		"mark cells whose name starts with this prefix as fillers")
}

func runCells(cmd *cobra.Command, args []string) error {
	opts, err := currentOptions(cmd, runOptions{})
	if err != nil {
		return err
	}
	lib, err := loadLibrary(loggerFromContext(cmd.Context()), opts)
	if err != nil {
		return err
	}
	printCells(cmd.OutOrStdout(), lib, filler.FromLibrary(lib, opts.filler))
	return nil
}

var fillerColor = color.New(color.FgBlue)

func printCells(w io.Writer, lib *library.MemoryLibrary, catalog *filler.Catalog) {
	fillers := make(map[string]bool, catalog.Len())
	for _, e := range catalog.Entries() {
		fillers[e.Name] = true
	}

	cells := lib.Cells()
	width := runewidth.StringWidth("Name")
	for _, c := range cells {
		width = max(width, runewidth.StringWidth(c.Name))
	}

	headerColor.Fprintf(w, "%s  %-12s %10s %10s\n", runewidth.FillRight("Name", width), "Class", "Width", "Height")
	for _, c := range cells {
		class := c.Class
		if c.SubClass != "" {
			class += " " + c.SubClass
		}
		line := fmt.Sprintf("%s  %-12s %10g %10g", runewidth.FillRight(c.Name, width), class, c.Size.Width, c.Size.Height)
		if fillers[c.Name] {
			fillerColor.Fprintln(w, line+"  filler")
			continue
		}
		fmt.Fprintln(w, line)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d cells, %d fillers", lib.Len(), catalog.Len())
	if dbu, ok := lib.DatabaseUnits(); ok {
		fmt.Fprintf(w, ", %d database units per micron", dbu)
	}
	fmt.Fprintln(w)
}
