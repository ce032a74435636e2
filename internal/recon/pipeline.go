// =============================================================================
// GRIR Report Toolkit - Reconciliation Pipeline
// =============================================================================
//
// Runs the four processing stages over one snapshot of movement and PO
// line data:
//
//   normalize -> aggregate -> merge -> classify
//
// The stages are sequential and each consumes the previous stage's
// immutable output. Normalization, aggregation, merge and classification
// are deterministic pure transforms; their errors propagate immediately
// and are never retried.
//
// =============================================================================

package recon

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jordaannt/GRIR-Project/internal/types"
	"github.com/jordaannt/GRIR-Project/internal/xlsxreader"
)

// Pipeline reconciles one snapshot of movement data against PO line
// metadata and classifies every PO line.
type Pipeline struct {
	log       *zap.SugaredLogger
	tolerance decimal.Decimal
}

// Stats describes one completed pipeline run.
type Stats struct {
	GoodsReceiptMovements   int
	InvoiceReceiptMovements int
	DeletedLines            int
	SummaryRows             int
	FlaggedRows             int
}

// New creates a Pipeline with the given price tolerance.
func New(log *zap.SugaredLogger, tolerance decimal.Decimal) *Pipeline {
	return &Pipeline{log: log, tolerance: tolerance}
}

// Run executes the full reconciliation over the raw input tables and
// returns the classified, sorted summary rows.
func (p *Pipeline) Run(movements, poLines *xlsxreader.Table) ([]types.SummaryRow, Stats, error) {
	var stats Stats

	normalized, err := Normalize(movements, poLines)
	if err != nil {
		return nil, stats, fmt.Errorf("normalization failed: %w", err)
	}
	for _, w := range normalized.Warnings {
		p.log.Warnw("data quality", "warning", w)
	}

	stats.GoodsReceiptMovements = len(normalized.GoodsReceipts)
	stats.InvoiceReceiptMovements = len(normalized.InvoiceReceipts)
	stats.DeletedLines = len(normalized.DeletedLines)
	p.log.Debugw("normalized movements",
		"goods_receipts", stats.GoodsReceiptMovements,
		"invoice_receipts", stats.InvoiceReceiptMovements,
		"deleted_po_lines", stats.DeletedLines,
	)

	gr := AggregateGoodsReceipts(normalized.GoodsReceipts)
	ir := AggregateInvoiceReceipts(normalized.InvoiceReceipts)
	p.log.Debugw("aggregated", "gr_groups", len(gr), "ir_groups", len(ir))

	merged, err := Merge(gr, ir, normalized.POLines)
	if err != nil {
		return nil, stats, err
	}

	rows := Classify(merged, p.tolerance)
	stats.SummaryRows = len(rows)
	for _, row := range rows {
		if row.Action != "" {
			stats.FlaggedRows++
		}
		if row.Description == "" {
			p.log.Debugw("no PO line metadata match", "po", row.PO, "line", row.Line)
		}
	}

	p.log.Infow("reconciliation complete",
		"summary_rows", stats.SummaryRows,
		"flagged_rows", stats.FlaggedRows,
	)

	return rows, stats, nil
}
