// =============================================================================
// GRIR Report Toolkit - XLSX Input Reader
// =============================================================================
//
// This module reads the three tabular inputs of a reconciliation run from
// XLSX workbooks:
//   - the purchase-order history export (goods receipt / invoice receipt
//     events)
//   - the purchase-order line export (line metadata, deletion indicators)
//   - the plant contacts table
//
// Columns are resolved by header name from the first sheet's first row, so
// column order in the export does not matter. A required column that is
// absent is a SchemaError and aborts the run: silently defaulting a missing
// quantity or indicator column would corrupt every downstream number.
//
// =============================================================================

package xlsxreader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is a workbook sheet read into memory: a header row plus data rows
// keyed by header name. Cells are kept as strings; typed interpretation
// happens in the normalizer.
type Table struct {
	// File is the path the table was read from, used in error messages.
	File string

	// Headers are the trimmed first-row values, in sheet order.
	Headers []string

	// Rows holds one map per data row, keyed by header. Cells beyond the
	// header width are ignored; short rows simply lack the trailing keys.
	Rows []map[string]string
}

// SchemaError reports required columns missing from an input workbook.
// This is fatal for the run.
type SchemaError struct {
	File    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s): %s", e.File, strings.Join(e.Missing, ", "))
}

// =============================================================================
// READING
// =============================================================================

// ReadWorkbook reads the first sheet of an XLSX workbook into a Table.
// The first row is taken as the header row; fully empty rows are skipped.
func ReadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s has no header row", path)
	}

	table := &Table{File: path}
	for _, h := range rows[0] {
		table.Headers = append(table.Headers, strings.TrimSpace(h))
	}

	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		record := make(map[string]string, len(table.Headers))
		for i, header := range table.Headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// TABLE METHODS
// =============================================================================

// HasColumn reports whether a header is present in the table.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// RequireColumns returns a SchemaError listing every named column that is
// absent, or nil when all are present.
func (t *Table) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{File: t.File, Missing: missing}
	}
	return nil
}

// Cell returns the trimmed value of a column in a row, or the empty
// string when the column is absent.
func Cell(row map[string]string, column string) string {
	return strings.TrimSpace(row[column])
}
