package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordaannt/GRIR-Project/internal/report"
	"github.com/jordaannt/GRIR-Project/internal/types"
)

func row(po string, line int, action string) types.SummaryRow {
	return types.SummaryRow{
		PO:      po,
		Line:    line,
		GRQty:   decimal.RequireFromString("10"),
		IRQty:   decimal.RequireFromString("10"),
		GRValue: decimal.RequireFromString("100.00"),
		IRValue: decimal.RequireFromString("100.00"),
		Action:  action,
	}
}

func TestBuildGroupsContiguousPORuns(t *testing.T) {
	layout := report.Build([]types.SummaryRow{
		row("4500012345", 10, ""),
		row("4500012345", 20, ""),
		row("4500067890", 10, ""),
	})

	require.Len(t, layout.Groups, 2)
	assert.Equal(t, report.Group{PO: "4500012345", Start: 0, End: 1}, layout.Groups[0])
	assert.Equal(t, report.Group{PO: "4500067890", Start: 2, End: 2}, layout.Groups[1])
}

func TestBuildBandsAlternatePerGroup(t *testing.T) {
	layout := report.Build([]types.SummaryRow{
		row("A", 10, ""),
		row("A", 20, ""),
		row("B", 10, ""),
		row("C", 10, ""),
	})

	// The cycle is positional and advances once per group, so the first
	// group always lands on band 1.
	require.Len(t, layout.Bands, 4)
	assert.Equal(t, 1, layout.Bands[0])
	assert.Equal(t, layout.Bands[0], layout.Bands[1])
	assert.NotEqual(t, layout.Bands[1], layout.Bands[2])
	assert.NotEqual(t, layout.Bands[2], layout.Bands[3])
}

func TestBuildHighlightsFlaggedActionCells(t *testing.T) {
	layout := report.Build([]types.SummaryRow{
		row("A", 10, types.ActionOverReceipt),
		row("A", 20, ""),
	})

	assert.True(t, layout.RedAction[0])
	assert.False(t, layout.RedAction[1])
}

func TestBuildMergesNotInvoicedGroups(t *testing.T) {
	layout := report.Build([]types.SummaryRow{
		row("A", 10, types.ActionNotInvoiced),
		row("A", 20, ""),
		row("A", 30, ""),
		row("B", 10, types.ActionNotInvoiced), // single row: nothing to merge
		row("C", 10, types.ActionShortSupply), // different message: no merge
		row("C", 20, ""),
	})

	require.Len(t, layout.Merges, 1)
	merge := layout.Merges[0]
	assert.Equal(t, layout.ActionCol, merge.Col)
	assert.Equal(t, 0, merge.Start)
	assert.Equal(t, 2, merge.End)
}

func TestBuildResolvesCurrencyColumns(t *testing.T) {
	layout := report.Build([]types.SummaryRow{row("A", 10, "")})

	require.Len(t, layout.CurrencyCols, 2)
	assert.Equal(t, "Goods Receipt Value", layout.Headers[layout.CurrencyCols[0]])
	assert.Equal(t, "Invoice Receipt Value", layout.Headers[layout.CurrencyCols[1]])
}

func TestBuildWidthsFitLongestValue(t *testing.T) {
	layout := report.Build([]types.SummaryRow{
		row("A", 10, types.ActionShortSupply),
	})

	poCol := layout.POCol
	assert.Equal(t, float64(len("PO")+2), layout.Widths[poCol])
	assert.Equal(t, float64(len(types.ActionShortSupply)+2), layout.Widths[layout.ActionCol])
}

func TestComposeDegradesWithoutActionHeader(t *testing.T) {
	// Missing "PO" or "Action" headers skip banding, highlighting and
	// merging but must not abort; widths are still computed.
	layout := report.Compose(
		[]string{"PO", "Line"},
		[][]string{{"A", "10"}, {"A", "20"}},
	)

	assert.Nil(t, layout.Bands)
	assert.Empty(t, layout.Merges)
	assert.Empty(t, layout.Groups)
	require.Len(t, layout.Widths, 2)
	assert.Equal(t, float64(len("Line")+2), layout.Widths[1])
}

func TestFilterByPlantKeepsOrder(t *testing.T) {
	a := row("A", 10, "")
	a.Plant = "P100"
	b := row("B", 10, "")
	b.Plant = "P200"
	c := row("C", 10, "")
	c.Plant = "P100"

	got := report.FilterByPlant([]types.SummaryRow{a, b, c}, "P100")
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].PO)
	assert.Equal(t, "C", got[1].PO)
}
