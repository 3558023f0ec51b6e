package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/padring/pkg/ring"
)

var checkCmd = &cobra.Command{
	Use:   "check <config>",
	Short: "Lay out and fill the ring without writing any output",
	Long: `Run the full layout and fill of <config> and print a report per edge.
The command fails with the same errors generate would report.

Examples:
  padring check ring.cfg -L pads.lef
  padring check ring.cfg --project padring.toml -v`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	addLibraryFlags(checkCmd)
	checkCmd.Flags().StringVar(&fillerPrefix, "filler", "",
		"only use filler cells whose name starts with this prefix")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := currentOptions(cmd, runOptions{})
	if err != nil {
		return err
	}
	placed, err := placeRing(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), placed.ring.Report())
	return nil
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen, color.Bold)
)

func printReport(w io.Writer, rep ring.Report) {
	headerColor.Fprintf(w, "Pad ring %s\n", rep.Design)
	fmt.Fprintln(w, "==================")
	labelColor.Fprint(w, "Die:     ")
	fmt.Fprintf(w, "%g x %g\n", rep.Die.Width, rep.Die.Height)
	labelColor.Fprint(w, "Grid:    ")
	fmt.Fprintf(w, "%g\n", rep.Grid)
	labelColor.Fprint(w, "Pads:    ")
	fmt.Fprintf(w, "%d\n", rep.Pads)
	labelColor.Fprint(w, "Corners: ")
	fmt.Fprintf(w, "%d\n", rep.Corners)
	labelColor.Fprint(w, "Fillers: ")
	fmt.Fprintf(w, "%d\n", rep.Fillers)
	fmt.Fprintln(w)

	fmt.Fprintln(w, edgeTable(rep.Edges))
	okColor.Fprintln(w, "✓ layout and fill succeeded")
}

func edgeTable(edges []ring.EdgeReport) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Edge", "Length", "Used", "Flex", "Pads", "Gaps").
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return cell
			}
			return cell.Align(lipgloss.Right)
		})
	for _, e := range edges {
		t.Row(e.Location.String(),
			strconv.FormatFloat(e.Length, 'g', -1, 64),
			strconv.FormatFloat(e.MinSize, 'g', -1, 64),
			strconv.FormatFloat(e.FlexTotal, 'g', -1, 64),
			strconv.Itoa(e.Pads),
			strconv.Itoa(e.Gaps))
	}
	return t.String()
}
