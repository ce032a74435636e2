// =============================================================================
// GRIR Report Toolkit - Plant Digest Builder
// =============================================================================
//
// Assembles the per-plant notification digests from the classified summary.
// Only flagged rows participate. Rows are grouped by plant, then by PO
// within the plant, keeping the summary's (PO, line) ordering. A PO whose
// every flagged row carries the PO-level "not yet invoiced" message is
// collapsed into one combined line; any other PO gets one block per line
// with the receipted and invoiced quantities and values.
//
// Plants with no flagged rows produce no digest at all — absence, not an
// empty string — so the notification step naturally skips them.
//
// =============================================================================

package digest

import (
	"fmt"
	"strings"

	"github.com/jordaannt/GRIR-Project/internal/types"
)

// Build returns one HTML digest per plant with flagged rows, keyed by
// plant. monthName appears in the digest heading (e.g. "August").
func Build(rows []types.SummaryRow, monthName string) map[string]string {
	flagged := make(map[string][]types.SummaryRow)
	var plantOrder []string

	for _, row := range rows {
		if row.Action == "" {
			continue
		}
		if _, seen := flagged[row.Plant]; !seen {
			plantOrder = append(plantOrder, row.Plant)
		}
		flagged[row.Plant] = append(flagged[row.Plant], row)
	}

	digests := make(map[string]string, len(plantOrder))
	for _, plant := range plantOrder {
		digests[plant] = buildPlantDigest(plant, flagged[plant], monthName)
	}
	return digests
}

func buildPlantDigest(plant string, rows []types.SummaryRow, monthName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>GRIR Report %s - %s</h2>", monthName, plant)

	// Rows arrive in summary order, so PO groups are contiguous runs.
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].PO == rows[start].PO {
			end++
		}
		writePOBlock(&b, rows[start:end])
		start = end
	}

	return b.String()
}

func writePOBlock(b *strings.Builder, group []types.SummaryRow) {
	fmt.Fprintf(b, "<br><b style='background-color: #FFFF00;'>PO %s</b><br>", group[0].PO)

	if allNotInvoiced(group) {
		// PO-level message: the action text alone covers the whole order.
		fmt.Fprintf(b, "<span style='color: red;'>%s</span><br><br>", group[0].Action)
		return
	}

	for _, row := range group {
		fmt.Fprintf(b, "Line %d | %s | %s<br>", row.Line, row.Material, row.Description)
		fmt.Fprintf(b, "You goods receipted: %d @ $%s<br>", row.GRQty.IntPart(), row.GRValue.StringFixed(2))
		fmt.Fprintf(b, "You were invoiced: %d @ $%s<br>", row.IRQty.IntPart(), row.IRValue.StringFixed(2))
		fmt.Fprintf(b, "<span style='color: red;'>%s</span><br><br>", row.Action)
	}
}

func allNotInvoiced(group []types.SummaryRow) bool {
	for _, row := range group {
		if !types.IsNotInvoiced(row.Action) {
			return false
		}
	}
	return true
}
