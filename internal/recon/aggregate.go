// =============================================================================
// GRIR Report Toolkit - Aggregator
// =============================================================================
//
// Sums signed quantities and values per aggregation group. Goods receipts
// group by (PO, line, material, plant); invoice receipts carry no plant and
// group by (PO, line, material). Group order follows first occurrence in
// the input, the same way the movement export orders its rows.
//
// Rows with missing key fields are not dropped: an empty key value is a
// key value like any other, so such rows aggregate into their own group.
//
// =============================================================================

package recon

import "github.com/jordaannt/GRIR-Project/internal/types"

type aggKey struct {
	po, line, material, plant string
}

// AggregateGoodsReceipts sums signed goods-receipt movements per
// (PO, line, material, plant).
func AggregateGoodsReceipts(records []types.MovementRecord) []types.AggregatedLine {
	return aggregate(records, true)
}

// AggregateInvoiceReceipts sums signed invoice-receipt movements per
// (PO, line, material). Invoice rows carry no plant.
func AggregateInvoiceReceipts(records []types.MovementRecord) []types.AggregatedLine {
	return aggregate(records, false)
}

func aggregate(records []types.MovementRecord, byPlant bool) []types.AggregatedLine {
	index := make(map[aggKey]int)
	var groups []types.AggregatedLine

	for _, rec := range records {
		key := aggKey{po: rec.PONumber, line: rec.Line, material: rec.Material}
		if byPlant {
			key.plant = rec.Plant
		}

		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, types.AggregatedLine{
				PONumber: rec.PONumber,
				Line:     rec.Line,
				Material: rec.Material,
				Plant:    key.plant,
			})
		}

		groups[i].Qty = groups[i].Qty.Add(rec.Quantity)
		groups[i].Value = groups[i].Value.Add(rec.Amount)
	}

	return groups
}
