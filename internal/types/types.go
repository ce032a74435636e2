// =============================================================================
// GRIR Report Toolkit - Shared Types
// =============================================================================
//
// This package contains the domain records shared across the pipeline stages.
// Types defined here are used by:
//   - xlsxreader
//   - recon
//   - report
//   - digest
//   - mail
//
// =============================================================================

package types

import "github.com/shopspring/decimal"

// =============================================================================
// MOVEMENT HISTORY
// =============================================================================

// EventType identifies the kind of purchase-order history event.
// The movement export encodes goods receipts as 1 and invoice receipts as 2.
type EventType int

const (
	EventGoodsReceipt   EventType = 1
	EventInvoiceReceipt EventType = 2
)

// MovementRecord is a single normalized purchase-order history row.
// Quantity and Amount are already signed: rows with debit/credit
// indicator "H" have been negated during normalization.
type MovementRecord struct {
	// Event is the history event kind this record belongs to.
	Event EventType

	// PONumber is the purchase order number. Taken from the
	// "Purchasing Document" column when the export carries one,
	// otherwise from "Reference Document".
	PONumber string

	// Line is the PO line item, zero-padded to five digits so it joins
	// bit-exact against the PO line export.
	Line string

	// Material is the material (line/shade) identifier.
	Material string

	// Plant is only populated on goods receipts; invoice receipt rows
	// carry no plant.
	Plant string

	// Quantity is the signed movement quantity.
	Quantity decimal.Decimal

	// Amount is the signed movement value. Goods receipts use the
	// local-currency amount column, invoice receipts the invoice amount.
	Amount decimal.Decimal
}

// =============================================================================
// PURCHASE ORDER LINES
// =============================================================================

// POLine is one row of the purchase-order line export, after key
// standardization. Lines flagged for deletion are removed during
// normalization and never reach the merge.
type POLine struct {
	PONumber  string
	Line      string // zero-padded to five digits
	ShortText string
}

// LineKey identifies a single PO line. It is the join key for the
// deletion filter and the description lookup.
type LineKey struct {
	PONumber string
	Line     string
}

// =============================================================================
// AGGREGATES AND SUMMARY
// =============================================================================

// AggregatedLine holds the summed signed quantity and value for one
// aggregation group. Goods receipts additionally group by plant;
// invoice receipt aggregates leave Plant empty.
type AggregatedLine struct {
	PONumber string
	Line     string
	Material string
	Plant    string
	Qty      decimal.Decimal
	Value    decimal.Decimal
}

// SummaryRow is one reconciled PO line with business-facing fields.
// Numeric fields default to zero when the corresponding aggregate side
// is missing; Plant defaults to the empty string. Action starts empty
// and is assigned (at most once) by the classifier.
type SummaryRow struct {
	PO          string
	Line        int
	Material    string
	Description string
	Plant       string
	GRQty       decimal.Decimal
	IRQty       decimal.Decimal
	GRValue     decimal.Decimal
	IRValue     decimal.Decimal
	Action      string
}

// =============================================================================
// CONTACTS
// =============================================================================

// PlantContact routes a plant's notification. Plant is trimmed on load
// and is the join key against SummaryRow.Plant.
type PlantContact struct {
	Plant string
	Email string
	CC    string
}
