// =============================================================================
// GRIR Report Toolkit - Reconciler (Merger)
// =============================================================================
//
// Performs the three-way merge:
//   1. full outer join of goods-receipt and invoice-receipt aggregates on
//      (PO, line, material)
//   2. left join of the PO line descriptions on (PO, line), anchored on
//      the aggregate side — PO lines with no movements do not become rows
//   3. rename to business-facing columns, cast line to an integer, and
//      sort by (PO asc, line asc)
//
// The sort is load-bearing: the classifier and the report formatter both
// rely on rows of one PO being contiguous, with "first line" meaning the
// first row of the contiguous group.
//
// Numeric fields of a one-sided row are zeroed after the join, so a
// genuine zero invoice and a missing invoice end up identical in the
// output but were distinguishable during the merge.
//
// =============================================================================

package recon

import (
	"errors"
	"sort"
	"strconv"

	"github.com/jordaannt/GRIR-Project/internal/types"
)

// ErrEmptySummary is returned when the merge produces no rows at all,
// which means the movement export had nothing to reconcile.
var ErrEmptySummary = errors.New("merge produced no summary rows: no goods receipt or invoice receipt movements found")

// Merge outer-joins the two aggregate sets, attaches PO line
// descriptions, and returns the sorted summary rows.
func Merge(gr, ir []types.AggregatedLine, poLines []types.POLine) ([]types.SummaryRow, error) {
	descriptions := make(map[types.LineKey]string, len(poLines))
	for _, line := range poLines {
		descriptions[types.LineKey{PONumber: line.PONumber, Line: line.Line}] = line.ShortText
	}

	type joinKey struct {
		po, line, material string
	}

	irIndex := make(map[joinKey]int, len(ir))
	for i, agg := range ir {
		irIndex[joinKey{agg.PONumber, agg.Line, agg.Material}] = i
	}

	var rows []types.SummaryRow
	matched := make(map[joinKey]bool, len(ir))

	// GR side plus matches.
	for _, g := range gr {
		key := joinKey{g.PONumber, g.Line, g.Material}
		row := types.SummaryRow{
			PO:       g.PONumber,
			Line:     lineNumber(g.Line),
			Material: g.Material,
			Plant:    g.Plant,
			GRQty:    g.Qty,
			GRValue:  g.Value,
		}
		if i, ok := irIndex[key]; ok {
			matched[key] = true
			row.IRQty = ir[i].Qty
			row.IRValue = ir[i].Value
		}
		row.Description = descriptions[types.LineKey{PONumber: g.PONumber, Line: g.Line}]
		rows = append(rows, row)
	}

	// IR-only rows: kept with the GR side zeroed and no plant.
	for _, inv := range ir {
		key := joinKey{inv.PONumber, inv.Line, inv.Material}
		if matched[key] {
			continue
		}
		rows = append(rows, types.SummaryRow{
			PO:          inv.PONumber,
			Line:        lineNumber(inv.Line),
			Material:    inv.Material,
			Description: descriptions[types.LineKey{PONumber: inv.PONumber, Line: inv.Line}],
			IRQty:       inv.Qty,
			IRValue:     inv.Value,
		})
	}

	if len(rows) == 0 {
		return nil, ErrEmptySummary
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PO != rows[j].PO {
			return rows[i].PO < rows[j].PO
		}
		return rows[i].Line < rows[j].Line
	})

	return rows, nil
}

// lineNumber converts a zero-padded line string to its integer form.
// Non-numeric line values collapse to 0 rather than failing the merge.
func lineNumber(line string) int {
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0
	}
	return n
}
