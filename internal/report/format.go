// =============================================================================
// GRIR Report Toolkit - Report Formatter
// =============================================================================
//
// Builds the presentation model for the summary workbook:
//   - run-length groups of contiguous rows sharing a PO number
//   - an alternating two-color band per group, purely positional
//   - currency formatting on the two value columns
//   - red text on any non-empty Action cell
//   - a vertical merge of the Action column for multi-row groups whose
//     first row carries the PO-level "not yet invoiced" message
//   - column widths sized to the longest rendered value
//
// The model is computed here and rendered by the XLSX writer, which keeps
// the grouping and merge decisions testable without touching a workbook.
//
// If the "PO" or "Action" header is absent, banding, highlighting and
// merging are skipped; header styling and column widths still apply.
//
// =============================================================================

package report

import (
	"strconv"

	"github.com/jordaannt/GRIR-Project/internal/types"
)

// Headers is the business-facing column order of the summary table.
var Headers = []string{
	"PO",
	"Line",
	"Line/Shade",
	"Description",
	"Plant",
	"Goods Receipt Qty",
	"Invoice Qty",
	"Goods Receipt Value",
	"Invoice Receipt Value",
	"Action",
}

// currencyHeaders are the columns rendered with a currency number format.
var currencyHeaders = map[string]bool{
	"Goods Receipt Value":   true,
	"Invoice Receipt Value": true,
}

// widthPadding is added to the longest rendered value of each column.
const widthPadding = 2

// Group is a run of contiguous rows sharing one PO number. Start and End
// are inclusive data-row indexes.
type Group struct {
	PO    string
	Start int
	End   int
}

// Merge is a vertical cell merge in the Action column, in data-row indexes.
type Merge struct {
	Col   int
	Start int
	End   int
}

// Layout is the presentation model consumed by the XLSX writer.
type Layout struct {
	Headers []string

	// Cells holds the rendered value of every data cell; widths and the
	// grouping decisions are computed from these.
	Cells [][]string

	// Groups are the run-length PO groups, empty when degraded.
	Groups []Group

	// Bands holds the band index (0 or 1) per data row; nil when the PO
	// or Action column is absent and row styling is skipped.
	Bands []int

	// RedAction flags data rows whose Action cell is non-empty.
	RedAction []bool

	// Merges are the Action-column merges for PO-level messages.
	Merges []Merge

	// Widths is the computed width per column.
	Widths []float64

	// CurrencyCols are the column indexes carrying the currency format.
	CurrencyCols []int

	// POCol and ActionCol are the resolved column indexes, -1 when absent.
	POCol     int
	ActionCol int
}

// Build renders the classified summary rows and computes the layout.
func Build(rows []types.SummaryRow) *Layout {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{
			row.PO,
			strconv.Itoa(row.Line),
			row.Material,
			row.Description,
			row.Plant,
			row.GRQty.String(),
			row.IRQty.String(),
			row.GRValue.StringFixed(2),
			row.IRValue.StringFixed(2),
			row.Action,
		}
	}
	return Compose(Headers, cells)
}

// Compose computes the layout for an arbitrary header/cell table. It is
// the degradation point: tables without a "PO" or "Action" header get
// widths and currency columns but no banding, highlighting or merging.
func Compose(headers []string, cells [][]string) *Layout {
	l := &Layout{
		Headers:   headers,
		Cells:     cells,
		POCol:     columnIndex(headers, "PO"),
		ActionCol: columnIndex(headers, "Action"),
	}

	for i, h := range headers {
		if currencyHeaders[h] {
			l.CurrencyCols = append(l.CurrencyCols, i)
		}
	}

	l.Widths = columnWidths(headers, cells)

	if l.POCol < 0 || l.ActionCol < 0 {
		return l
	}

	l.Groups = runLengthGroups(cells, l.POCol)
	l.Bands = make([]int, len(cells))
	l.RedAction = make([]bool, len(cells))

	// The band cycle is positional: it advances once per group,
	// starting at 1, regardless of PO identity.
	band := 0
	for _, g := range l.Groups {
		band = (band + 1) % 2
		for r := g.Start; r <= g.End; r++ {
			l.Bands[r] = band
			l.RedAction[r] = cells[r][l.ActionCol] != ""
		}

		// A multi-row group whose first row opens with the PO-level
		// message gets its Action cells merged into one; the classifier
		// guarantees the sibling rows are empty.
		if g.End > g.Start && types.IsNotInvoiced(cells[g.Start][l.ActionCol]) {
			l.Merges = append(l.Merges, Merge{Col: l.ActionCol, Start: g.Start, End: g.End})
		}
	}

	return l
}

// FilterByPlant returns the subset of rows belonging to one plant, in
// the original order.
func FilterByPlant(rows []types.SummaryRow, plant string) []types.SummaryRow {
	var out []types.SummaryRow
	for _, row := range rows {
		if row.Plant == plant {
			out = append(out, row)
		}
	}
	return out
}

// runLengthGroups splits the rows into runs of contiguous equal values
// in the given column.
func runLengthGroups(cells [][]string, col int) []Group {
	var groups []Group
	for i := 0; i < len(cells); {
		j := i + 1
		for j < len(cells) && cells[j][col] == cells[i][col] {
			j++
		}
		groups = append(groups, Group{PO: cells[i][col], Start: i, End: j - 1})
		i = j
	}
	return groups
}

// columnWidths sizes each column to its longest rendered value.
func columnWidths(headers []string, cells [][]string) []float64 {
	widths := make([]float64, len(headers))
	for i, h := range headers {
		widths[i] = float64(len(h) + widthPadding)
	}
	for _, row := range cells {
		for i, v := range row {
			if i >= len(widths) {
				continue
			}
			if w := float64(len(v) + widthPadding); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}
