// =============================================================================
// GRIR Report Toolkit - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the 'run' and 'version' commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (grir)
//   ├── runCmd     (grir run)
//   └── versionCmd (grir version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "grir",
	Short: "GRIR Report Toolkit - Reconcile goods receipts against invoice receipts",
	Long: `GRIR Report Toolkit reconciles purchase-order goods-receipt and
invoice-receipt postings against purchase-order line metadata, classifies
every PO line into an issue category, and produces a formatted summary
workbook plus per-plant notification digests for procurement and
accounts-payable staff.

Example Usage:
  grir run                          # Reconcile using config.yaml
  grir run --config ./my.yaml       # Use a custom configuration file
  grir run --send-emails            # Also dispatch the plant notifications`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
