package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "padring",
	Short: "Pad ring generator for ASIC dies",
	Long: `Place I/O pads, corner cells and fillers around a die from a
pad ring description and a set of LEF cell libraries.

Examples:
  padring generate ring.cfg -L pads.lef -o ring.gds    # Write GDSII
  padring generate ring.cfg -L pads.lef --def ring.def # Also write DEF
  padring check ring.cfg -L pads.lef                   # Lay out and report only
  padring cells -L pads.lef                            # List library cells`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		logger := newLogger(cmd.ErrOrStderr(), logLevel(verbose, quiet))
		cmd.SetContext(withLogger(ctx, logger))
		return nil
	},
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only report errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}
