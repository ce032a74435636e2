// =============================================================================
// GRIR Report Toolkit - XLSX Report Writer
// =============================================================================
//
// Renders the presentation model into a styled workbook:
//   - dark blue header row with white bold text
//   - thin borders on every cell
//   - alternating band fills per PO group
//   - $#,##0.00 number format on the value columns
//   - red Action text on flagged rows, merged Action cells for PO-level
//     messages
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jordaannt/GRIR-Project/internal/types"
)

const sheetName = "Sheet1"

// Fill colors as they appear in the finished workbook.
const (
	headerFillColor = "1F4E79"
	actionFontColor = "FF0000"
)

// bandFillColors is the two-color cycle applied per PO group.
var bandFillColors = [2]string{"D9E1F2", "FFFFFF"}

const currencyFormat = "$#,##0.00"

// WriteSummaryFile writes the classified summary rows to a formatted
// workbook at the given path.
func WriteSummaryFile(path string, rows []types.SummaryRow) error {
	layout := Build(rows)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeWorkbook(f, rows, layout); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

// styleSet holds the style IDs used by the writer. Band-dependent styles
// come in pairs, indexed by band.
type styleSet struct {
	header   int
	base     [2]int
	currency [2]int
	red      [2]int
	merged   [2]int
}

func writeWorkbook(f *excelize.File, rows []types.SummaryRow, layout *Layout) error {
	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	// Header row.
	for c, h := range layout.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	if len(layout.Headers) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, 1)
		last, _ := excelize.CoordinatesToCellName(len(layout.Headers), 1)
		if err := f.SetCellStyle(sheetName, first, last, styles.header); err != nil {
			return err
		}
	}

	// Data rows, typed values.
	for r, row := range rows {
		values := []interface{}{
			row.PO,
			row.Line,
			row.Material,
			row.Description,
			row.Plant,
			row.GRQty.InexactFloat64(),
			row.IRQty.InexactFloat64(),
			row.GRValue.InexactFloat64(),
			row.IRValue.InexactFloat64(),
			row.Action,
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	// Row styling only when the layout carries banding information.
	if layout.Bands != nil {
		currency := make(map[int]bool, len(layout.CurrencyCols))
		for _, c := range layout.CurrencyCols {
			currency[c] = true
		}

		for r := range rows {
			band := layout.Bands[r]
			for c := range layout.Headers {
				style := styles.base[band]
				if currency[c] {
					style = styles.currency[band]
				} else if c == layout.ActionCol && layout.RedAction[r] {
					style = styles.red[band]
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+2)
				if err != nil {
					return err
				}
				if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
					return err
				}
			}
		}

		for _, m := range layout.Merges {
			top, err := excelize.CoordinatesToCellName(m.Col+1, m.Start+2)
			if err != nil {
				return err
			}
			bottom, err := excelize.CoordinatesToCellName(m.Col+1, m.End+2)
			if err != nil {
				return err
			}
			if err := f.MergeCell(sheetName, top, bottom); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheetName, top, bottom, styles.merged[layout.Bands[m.Start]]); err != nil {
				return err
			}
		}
	}

	// Column widths.
	for c, width := range layout.Widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return err
		}
	}

	return nil
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	numFmt := currencyFormat

	var s styleSet
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for band, color := range bandFillColors {
		fill := excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}

		s.base[band], err = f.NewStyle(&excelize.Style{Fill: fill, Border: thin})
		if err != nil {
			return nil, err
		}
		s.currency[band], err = f.NewStyle(&excelize.Style{Fill: fill, Border: thin, CustomNumFmt: &numFmt})
		if err != nil {
			return nil, err
		}
		s.red[band], err = f.NewStyle(&excelize.Style{
			Fill:   fill,
			Border: thin,
			Font:   &excelize.Font{Color: actionFontColor},
		})
		if err != nil {
			return nil, err
		}
		s.merged[band], err = f.NewStyle(&excelize.Style{
			Fill:      fill,
			Border:    thin,
			Font:      &excelize.Font{Color: actionFontColor},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		})
		if err != nil {
			return nil, err
		}
	}

	return &s, nil
}
