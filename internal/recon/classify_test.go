package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordaannt/GRIR-Project/internal/recon"
	"github.com/jordaannt/GRIR-Project/internal/types"
)

var defaultTolerance = decimal.RequireFromString("0.05")

func summaryRow(po string, line int, grQty, irQty, grValue, irValue string) types.SummaryRow {
	return types.SummaryRow{
		PO:      po,
		Line:    line,
		GRQty:   decimal.RequireFromString(grQty),
		IRQty:   decimal.RequireFromString(irQty),
		GRValue: decimal.RequireFromString(grValue),
		IRValue: decimal.RequireFromString(irValue),
	}
}

func TestClassifyWholeGroupNotInvoicedFlagsFirstRowOnly(t *testing.T) {
	rows := []types.SummaryRow{
		summaryRow("4500012345", 10, "10", "0", "100.00", "0"),
		summaryRow("4500012345", 20, "5", "0", "50.00", "0"),
		summaryRow("4500012345", 30, "2", "0", "20.00", "0"),
	}

	got := recon.Classify(rows, defaultTolerance)

	assert.Equal(t, types.ActionNotInvoiced, got[0].Action)
	assert.Empty(t, got[1].Action)
	assert.Empty(t, got[2].Action)
}

func TestClassifySingleLinePONotInvoiced(t *testing.T) {
	// A single-line PO with GR and no IR is simultaneously the first
	// and only row of its group.
	rows := []types.SummaryRow{
		summaryRow("4500012345", 10, "20", "0", "200.00", "0"),
	}

	got := recon.Classify(rows, defaultTolerance)
	assert.Equal(t, types.ActionNotInvoiced, got[0].Action)
}

func TestClassifyShortSupplyWhenSomeButNotAll(t *testing.T) {
	rows := []types.SummaryRow{
		summaryRow("4500012345", 10, "10", "10", "100.00", "100.00"),
		summaryRow("4500012345", 20, "5", "0", "50.00", "0"),
	}

	got := recon.Classify(rows, defaultTolerance)

	assert.Empty(t, got[0].Action)
	assert.Equal(t, types.ActionShortSupply, got[1].Action)
}

func TestClassifyOverAndUnderReceipt(t *testing.T) {
	rows := []types.SummaryRow{
		summaryRow("4500012345", 10, "10", "8", "100.00", "80.00"),
		summaryRow("4500012345", 20, "3", "5", "30.00", "50.00"),
	}

	got := recon.Classify(rows, defaultTolerance)

	assert.Equal(t, types.ActionOverReceipt, got[0].Action)
	assert.Equal(t, types.ActionUnderReceipt, got[1].Action)
}

func TestClassifyPriceToleranceBoundary(t *testing.T) {
	tests := []struct {
		name    string
		grValue string
		irValue string
		want    string
	}{
		{"under tolerance", "50.00", "50.04", ""},
		{"exactly at tolerance", "50.00", "50.05", ""},
		{"just over tolerance", "50.00", "50.06", types.ActionPriceDiscrepancy},
		{"over in other direction", "50.06", "50.00", types.ActionPriceDiscrepancy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []types.SummaryRow{
				summaryRow("4500012345", 10, "10", "10", tt.grValue, tt.irValue),
			}
			got := recon.Classify(rows, defaultTolerance)
			assert.Equal(t, tt.want, got[0].Action)
		})
	}
}

func TestClassifyReconciledRowHasNoAction(t *testing.T) {
	rows := []types.SummaryRow{
		summaryRow("4500012345", 10, "10", "10", "100.00", "100.00"),
	}

	got := recon.Classify(rows, defaultTolerance)
	assert.Empty(t, got[0].Action)
}

func TestClassifyGroupsAreIndependent(t *testing.T) {
	// A fully-uninvoiced PO next to a reconciled PO: the group facts of
	// one PO must not leak into its neighbor.
	rows := []types.SummaryRow{
		summaryRow("4500012345", 10, "10", "0", "100.00", "0"),
		summaryRow("4500067890", 10, "10", "10", "100.00", "100.00"),
		summaryRow("4500067890", 20, "5", "0", "50.00", "0"),
	}

	got := recon.Classify(rows, defaultTolerance)

	assert.Equal(t, types.ActionNotInvoiced, got[0].Action)
	assert.Empty(t, got[1].Action)
	assert.Equal(t, types.ActionShortSupply, got[2].Action)
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	rows := []types.SummaryRow{
		summaryRow("4500012345", 10, "10", "0", "100.00", "0"),
	}

	got := recon.Classify(rows, defaultTolerance)
	require.NotEmpty(t, got[0].Action)
	assert.Empty(t, rows[0].Action, "input rows must stay untouched")
}

func TestClassifyIsDeterministic(t *testing.T) {
	rows := []types.SummaryRow{
		summaryRow("4500012345", 10, "10", "10", "100.00", "100.00"),
		summaryRow("4500012345", 20, "5", "0", "50.00", "0"),
	}

	first := recon.Classify(rows, defaultTolerance)
	second := recon.Classify(rows, defaultTolerance)
	assert.Equal(t, first, second)
}
