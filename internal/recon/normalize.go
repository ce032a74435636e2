// =============================================================================
// GRIR Report Toolkit - Record Normalizer
// =============================================================================
//
// This module standardizes the raw purchase-order history and PO line
// exports before aggregation:
//   - splits history rows into goods-receipt and invoice-receipt sets
//   - resolves the authoritative PO number column
//   - zero-pads line numbers so join keys are bit-exact
//   - drops PO lines flagged for deletion, and their movements
//   - converts quantities and amounts into signed decimals
//
// All transformations are pure; the only failure mode is a missing
// required column, reported as a SchemaError by the reader layer.
//
// =============================================================================

package recon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jordaannt/GRIR-Project/internal/types"
	"github.com/jordaannt/GRIR-Project/internal/xlsxreader"
)

// Movement export column headers, as produced by the history export.
const (
	colEventType     = "Trans./event type"
	colPurchasingDoc = "Purchasing Document"
	colReferenceDoc  = "Reference Document"
	colItem          = "Item"
	colMaterial      = "Material"
	colPlant         = "Plant"
	colDebitCredit   = "Debit/Credit ind"
	colQuantity      = "Quantity"
	colAmount        = "Amount"
	colAmountLocal   = "Amt.in loc.cur."
)

// PO line export column headers.
const (
	colShortText         = "Short Text"
	colDeletionIndicator = "Deletion indicator"
)

// deletionFlag marks a PO line as logically deleted in the export.
const deletionFlag = "L"

// lineNumberWidth is the fixed width line numbers are zero-padded to on
// both sides of the join.
const lineNumberWidth = 5

// Normalized is the output of the normalization stage.
type Normalized struct {
	// GoodsReceipts and InvoiceReceipts are the two movement sets, with
	// signed quantities and amounts and standardized keys.
	GoodsReceipts   []types.MovementRecord
	InvoiceReceipts []types.MovementRecord

	// POLines is the line metadata with deleted lines removed.
	POLines []types.POLine

	// DeletedLines holds the keys of lines flagged for deletion. Movements
	// matching these keys have already been dropped from both sets.
	DeletedLines map[types.LineKey]struct{}

	// Warnings collects data-quality notes (unparseable numbers treated
	// as zero). They do not abort the run.
	Warnings []string
}

// Normalize standardizes the raw movement and PO line tables.
func Normalize(movements, poLines *xlsxreader.Table) (*Normalized, error) {
	if err := movements.RequireColumns(colEventType, colItem, colMaterial, colDebitCredit, colQuantity, colAmount, colAmountLocal); err != nil {
		return nil, err
	}
	// One of the two document-number columns must exist; which one is
	// present decides the authoritative PO number for the whole table.
	if !movements.HasColumn(colPurchasingDoc) && !movements.HasColumn(colReferenceDoc) {
		return nil, &xlsxreader.SchemaError{File: movements.File, Missing: []string{colPurchasingDoc + " or " + colReferenceDoc}}
	}
	if err := poLines.RequireColumns(colPurchasingDoc, colItem, colShortText); err != nil {
		return nil, err
	}

	poColumn := colPurchasingDoc
	if !movements.HasColumn(colPurchasingDoc) {
		poColumn = colReferenceDoc
	}

	out := &Normalized{DeletedLines: make(map[types.LineKey]struct{})}

	// PO lines: standardize keys, collect deleted line keys, drop
	// deleted lines from the metadata set.
	hasDeletion := poLines.HasColumn(colDeletionIndicator)
	for _, row := range poLines.Rows {
		line := types.POLine{
			PONumber:  xlsxreader.Cell(row, colPurchasingDoc),
			Line:      padLine(xlsxreader.Cell(row, colItem)),
			ShortText: xlsxreader.Cell(row, colShortText),
		}
		if hasDeletion && xlsxreader.Cell(row, colDeletionIndicator) == deletionFlag {
			out.DeletedLines[types.LineKey{PONumber: line.PONumber, Line: line.Line}] = struct{}{}
			continue
		}
		out.POLines = append(out.POLines, line)
	}

	// Movements: split by event type, standardize keys, drop rows whose
	// PO line is deleted, compute signed quantity and amount.
	for i, row := range movements.Rows {
		event, err := strconv.Atoi(xlsxreader.Cell(row, colEventType))
		if err != nil {
			continue
		}
		if types.EventType(event) != types.EventGoodsReceipt && types.EventType(event) != types.EventInvoiceReceipt {
			continue
		}

		rec := types.MovementRecord{
			Event:    types.EventType(event),
			PONumber: xlsxreader.Cell(row, poColumn),
			Line:     padLine(xlsxreader.Cell(row, colItem)),
			Material: xlsxreader.Cell(row, colMaterial),
		}

		// Anti-join against the deleted line keys: matching rows are
		// dropped entirely, everything else passes through unchanged.
		if _, deleted := out.DeletedLines[types.LineKey{PONumber: rec.PONumber, Line: rec.Line}]; deleted {
			continue
		}

		amountColumn := colAmount
		if rec.Event == types.EventGoodsReceipt {
			rec.Plant = xlsxreader.Cell(row, colPlant)
			amountColumn = colAmountLocal
		}

		negate := xlsxreader.Cell(row, colDebitCredit) == "H"
		rec.Quantity = signedNumber(row, colQuantity, i, negate, &out.Warnings)
		rec.Amount = signedNumber(row, amountColumn, i, negate, &out.Warnings)

		if rec.Event == types.EventGoodsReceipt {
			out.GoodsReceipts = append(out.GoodsReceipts, rec)
		} else {
			out.InvoiceReceipts = append(out.InvoiceReceipts, rec)
		}
	}

	return out, nil
}

// padLine zero-pads a line number to the fixed join width. Values already
// at or beyond the width are returned unchanged.
func padLine(s string) string {
	if len(s) >= lineNumberWidth {
		return s
	}
	return strings.Repeat("0", lineNumberWidth-len(s)) + s
}

// signedNumber parses a numeric cell and applies the debit/credit sign.
// Unparseable or empty cells are treated as zero with a warning; a single
// bad cell must not sink the whole snapshot.
func signedNumber(row map[string]string, column string, rowIndex int, negate bool, warnings *[]string) decimal.Decimal {
	raw := strings.ReplaceAll(xlsxreader.Cell(row, column), ",", "")
	if raw == "" {
		return decimal.Zero
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("movement row %d: unparseable %s %q treated as 0", rowIndex+1, column, raw))
		return decimal.Zero
	}

	if negate {
		return value.Neg()
	}
	return value
}
