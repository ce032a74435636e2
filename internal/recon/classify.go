// =============================================================================
// GRIR Report Toolkit - Issue Classifier
// =============================================================================
//
// Assigns at most one issue action per summary row. The decision runs in
// two passes over each contiguous PO group:
//
//   pass 1: group-level facts — is every line "receipted but not invoiced",
//           or only some of them?
//   pass 2: per-row decision table, first match wins:
//     1. whole PO receipted with no invoices  -> flag the FIRST row only
//        (it is a PO-level condition; flagging every line is redundant)
//     2. some-but-not-all, and this row is GR-without-IR -> short supply
//     3. receipted more than invoiced         -> over-receipted
//     4. receipted less than invoiced         -> under-receipted
//     5. |GR value - IR value| > tolerance    -> price discrepancy
//     6. otherwise the line is reconciled
//
// The tolerance comparison is strictly greater-than: a difference exactly
// equal to the tolerance does not flag.
//
// Classify is a pure function of the sorted rows: it returns a new slice
// and never mutates its input, so it is deterministic and safe to re-run.
//
// =============================================================================

package recon

import (
	"github.com/shopspring/decimal"

	"github.com/jordaannt/GRIR-Project/internal/types"
)

// groupFacts are the PO-level predicates consumed by the per-row
// decision table.
type groupFacts struct {
	// everyLine is true when every row of the PO has goods receipts and
	// no invoices.
	everyLine bool

	// someButNotAll is true when at least one row, but not every row,
	// has goods receipts and no invoices.
	someButNotAll bool
}

// Classify assigns issue actions to the sorted summary rows. Rows must
// be ordered by (PO, line) with each PO's rows contiguous, as produced
// by Merge.
func Classify(rows []types.SummaryRow, tolerance decimal.Decimal) []types.SummaryRow {
	out := make([]types.SummaryRow, len(rows))
	copy(out, rows)

	for start := 0; start < len(out); {
		end := start + 1
		for end < len(out) && out[end].PO == out[start].PO {
			end++
		}

		facts := factsFor(out[start:end])
		for i := start; i < end; i++ {
			out[i].Action = decide(out[i], facts, i == start, tolerance)
		}

		start = end
	}

	return out
}

// factsFor computes the group-level predicates for one PO's rows.
func factsFor(group []types.SummaryRow) groupFacts {
	any, all := false, true
	for _, row := range group {
		if grWithoutIR(row) {
			any = true
		} else {
			all = false
		}
	}
	return groupFacts{
		everyLine:     any && all,
		someButNotAll: any && !all,
	}
}

// grWithoutIR is the per-row predicate: goods receipted, nothing invoiced.
func grWithoutIR(row types.SummaryRow) bool {
	return row.GRQty.IsPositive() && row.IRQty.IsZero()
}

// decide applies the ordered decision table to one row.
func decide(row types.SummaryRow, facts groupFacts, firstOfGroup bool, tolerance decimal.Decimal) string {
	switch {
	case facts.everyLine:
		// PO-level condition: only the first row carries the message.
		if firstOfGroup {
			return types.ActionNotInvoiced
		}
		return ""
	case facts.someButNotAll && grWithoutIR(row):
		return types.ActionShortSupply
	case row.GRQty.GreaterThan(row.IRQty):
		return types.ActionOverReceipt
	case row.GRQty.LessThan(row.IRQty):
		return types.ActionUnderReceipt
	case row.GRValue.Sub(row.IRValue).Abs().GreaterThan(tolerance):
		return types.ActionPriceDiscrepancy
	default:
		return ""
	}
}
