// =============================================================================
// GRIR Report Toolkit - Run Command
// =============================================================================
//
// This file defines the 'run' command, which executes the full
// reconciliation over one snapshot of movement and PO line data.
//
// PROCESSING PIPELINE:
//   1. Load configuration (YAML + SMTP environment)
//   2. Read the movement, PO line and contacts workbooks
//   3. Reconcile: normalize -> aggregate -> merge -> classify
//   4. Write the formatted master summary workbook
//   5. Build per-plant digests and per-plant report workbooks
//   6. Optionally dispatch notification emails, one per plant contact
//
// A completed run always yields the summary workbook; notification
// failures are reported per recipient and never fail the run.
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jordaannt/GRIR-Project/internal/config"
	"github.com/jordaannt/GRIR-Project/internal/digest"
	"github.com/jordaannt/GRIR-Project/internal/mail"
	"github.com/jordaannt/GRIR-Project/internal/recon"
	"github.com/jordaannt/GRIR-Project/internal/report"
	"github.com/jordaannt/GRIR-Project/internal/types"
	"github.com/jordaannt/GRIR-Project/internal/xlsxreader"
	"github.com/jordaannt/GRIR-Project/pkg/utils"
)

// sendEmails dispatches the plant notifications when set.
var sendEmails bool

// tolerance overrides the configured price tolerance when positive.
var tolerance float64

// outputDir overrides the configured output directory when set.
var outputDir string

// runCmd represents the 'run' command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile movements against PO lines and generate the reports",
	Long: `The run command loads the movement history, PO line and contacts
workbooks, reconciles goods receipts against invoice receipts per PO line,
classifies each line into an issue category, and writes the formatted
summary workbook plus one filtered workbook per plant with issues.

With --send-emails each plant contact receives an HTML digest of their
plant's issues with the plant report attached. Delivery failures are
reported per recipient and do not abort the run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(
		&sendEmails,
		"send-emails",
		false,
		"Dispatch the per-plant notification emails",
	)

	runCmd.Flags().Float64Var(
		&tolerance,
		"tolerance",
		0,
		"Price discrepancy tolerance (overrides the configured value)",
	)

	runCmd.Flags().StringVar(
		&outputDir,
		"output",
		"",
		"Output directory (overrides the configured value)",
	)
}

// runAnalysis orchestrates one full reconciliation run.
func runAnalysis(cmd *cobra.Command) error {
	start := time.Now()

	// =========================================================================
	// STEP 1: CONFIGURATION
	// =========================================================================

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("send-emails") {
		cfg.SendEmails = sendEmails
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.PriceTolerance = tolerance
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	fm := utils.NewFileManager(cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: READ INPUTS
	// =========================================================================

	fmt.Println("=== GRIR Report Toolkit ===")
	fmt.Println("Reading input workbooks...")

	movements, err := xlsxreader.ReadWorkbook(cfg.MovementsFile)
	if err != nil {
		return fmt.Errorf("failed to read movements: %w", err)
	}
	poLines, err := xlsxreader.ReadWorkbook(cfg.POLinesFile)
	if err != nil {
		return fmt.Errorf("failed to read PO lines: %w", err)
	}
	contacts, contactWarnings, err := xlsxreader.ReadContacts(cfg.ContactsFile)
	if err != nil {
		return fmt.Errorf("failed to read contacts: %w", err)
	}
	for _, w := range contactWarnings {
		log.Warnw("contact skipped", "row", w.Row, "reason", w.Reason)
	}

	// =========================================================================
	// STEP 3: RECONCILE
	// =========================================================================

	fmt.Println("Reconciling...")

	pipeline := recon.New(log, cfg.Tolerance())
	rows, stats, err := pipeline.Run(movements, poLines)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 4: MASTER SUMMARY WORKBOOK
	// =========================================================================

	masterPath := fm.OutputPath(utils.ReportName(cfg.ReportNameFormat, ""))
	if err := report.WriteSummaryFile(masterPath, rows); err != nil {
		return err
	}
	log.Infow("wrote summary report", "path", masterPath)

	if archived, err := fm.ArchiveReport(masterPath); err != nil {
		log.Warnw("failed to archive report", "error", err)
	} else if archived != "" {
		log.Debugw("archived summary report", "path", archived)
	}

	// =========================================================================
	// STEP 5: PER-PLANT DIGESTS AND REPORTS
	// =========================================================================

	month := time.Now().Month().String()
	digests := digest.Build(rows, month)

	plantReports := make(map[string]string, len(digests))
	for _, plant := range sortedPlants(digests) {
		path := fm.OutputPath(utils.ReportName("GRIR_Report_{plant}", plant))
		if err := report.WriteSummaryFile(path, report.FilterByPlant(rows, plant)); err != nil {
			return fmt.Errorf("failed to write report for plant %s: %w", plant, err)
		}
		plantReports[plant] = path
		log.Debugw("wrote plant report", "plant", plant, "path", path)
	}

	// =========================================================================
	// STEP 6: NOTIFICATIONS
	// =========================================================================

	var failures []mail.DispatchError
	if cfg.SendEmails {
		var notifications []mail.Notification
		for _, contact := range contacts {
			body, flagged := digests[contact.Plant]
			if !flagged {
				log.Infow("no issues for plant, no email sent", "plant", contact.Plant)
				continue
			}
			notifications = append(notifications, mail.Notification{
				Plant:          contact.Plant,
				To:             contact.Email,
				CC:             contact.CC,
				Subject:        mail.Subject(contact.Plant, month),
				HTMLBody:       mail.HTMLBody(body),
				AttachmentPath: plantReports[contact.Plant],
			})
		}
		failures = mail.New(log, cfg.SMTP).Dispatch(notifications)
	}

	// =========================================================================
	// STEP 7: PRINT SUMMARY
	// =========================================================================

	fmt.Println("\n=== GRIR Analysis Complete ===")
	fmt.Printf("Summary rows:    %d\n", stats.SummaryRows)
	fmt.Printf("Flagged rows:    %d\n", stats.FlaggedRows)
	for _, category := range issueCategories {
		if n := countByCategory(rows, category); n > 0 {
			fmt.Printf("  %-18s %d\n", category+":", n)
		}
	}
	fmt.Printf("Report:          %s\n", masterPath)
	fmt.Printf("Plant reports:   %d\n", len(plantReports))
	fmt.Printf("Time elapsed:    %s\n", time.Since(start).Round(time.Millisecond))

	if len(failures) > 0 {
		fmt.Printf("\n%d notification(s) failed:\n", len(failures))
		for _, f := range failures {
			fmt.Printf("  ✗ %s (plant %s): %v\n", f.Recipient, f.Plant, f.Err)
		}
	}

	return nil
}

// issueCategories is the display order for the category counts.
var issueCategories = []string{
	"Not Invoiced",
	"Short Supply",
	"Over-Receipted",
	"Under-Receipted",
	"Price Discrepancy",
}

func countByCategory(rows []types.SummaryRow, category string) int {
	n := 0
	for _, row := range rows {
		if types.IssueCategory(row.Action) == category {
			n++
		}
	}
	return n
}

func sortedPlants(digests map[string]string) []string {
	plants := make([]string, 0, len(digests))
	for plant := range digests {
		plants = append(plants, plant)
	}
	sort.Strings(plants)
	return plants
}

// newLogger builds the console logger. --verbose forces debug level.
func newLogger(level string) (*zap.SugaredLogger, error) {
	if verbose {
		level = "debug"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "console"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
