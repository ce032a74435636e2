// =============================================================================
// GRIR Report Toolkit - Main Entry Point
// =============================================================================
//
// This is the main entry point for the GRIR reconciliation CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   grir run           - Reconcile movements and generate the reports
//   grir version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core reconciliation, reporting and dispatch logic
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/jordaannt/GRIR-Project/cmd"
)

func main() {
	cmd.Execute()
}
