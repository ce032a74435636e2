package digest_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordaannt/GRIR-Project/internal/digest"
	"github.com/jordaannt/GRIR-Project/internal/types"
)

func summaryRow(plant, po string, line int, action string) types.SummaryRow {
	return types.SummaryRow{
		PO:          po,
		Line:        line,
		Material:    "MAT-" + po,
		Description: "Widget " + po,
		Plant:       plant,
		GRQty:       decimal.RequireFromString("10"),
		IRQty:       decimal.RequireFromString("8"),
		GRValue:     decimal.RequireFromString("100.00"),
		IRValue:     decimal.RequireFromString("80.00"),
		Action:      action,
	}
}

func TestBuildSkipsCleanPlants(t *testing.T) {
	digests := digest.Build([]types.SummaryRow{
		summaryRow("P100", "A", 10, types.ActionShortSupply),
		summaryRow("P200", "B", 10, ""),
	}, "August")

	require.Contains(t, digests, "P100")

	// Absence, not an empty digest.
	_, ok := digests["P200"]
	assert.False(t, ok)
}

func TestBuildHeadingCarriesMonthAndPlant(t *testing.T) {
	digests := digest.Build([]types.SummaryRow{
		summaryRow("P100", "A", 10, types.ActionOverReceipt),
	}, "August")

	assert.Contains(t, digests["P100"], "<h2>GRIR Report August - P100</h2>")
}

func TestBuildCombinesFullyUninvoicedPO(t *testing.T) {
	rows := []types.SummaryRow{
		summaryRow("P100", "A", 10, types.ActionNotInvoiced),
	}
	digests := digest.Build(rows, "August")
	html := digests["P100"]

	assert.Contains(t, html, "<b style='background-color: #FFFF00;'>PO A</b>")
	assert.Contains(t, html, "<span style='color: red;'>"+types.ActionNotInvoiced+"</span>")

	// The combined form has no per-line quantity breakdown.
	assert.NotContains(t, html, "You goods receipted")
}

func TestBuildWritesPerLineBlocks(t *testing.T) {
	digests := digest.Build([]types.SummaryRow{
		summaryRow("P100", "A", 10, types.ActionShortSupply),
		summaryRow("P100", "A", 20, types.ActionUnderReceipt),
	}, "August")
	html := digests["P100"]

	assert.Contains(t, html, "Line 10 | MAT-A | Widget A<br>")
	assert.Contains(t, html, "Line 20 | MAT-A | Widget A<br>")
	assert.Contains(t, html, "You goods receipted: 10 @ $100.00<br>")
	assert.Contains(t, html, "You were invoiced: 8 @ $80.00<br>")
	assert.Contains(t, html, "<span style='color: red;'>"+types.ActionShortSupply+"</span>")
}

func TestBuildKeepsPOBlockOrder(t *testing.T) {
	digests := digest.Build([]types.SummaryRow{
		summaryRow("P100", "A", 10, types.ActionOverReceipt),
		summaryRow("P100", "B", 10, types.ActionUnderReceipt),
	}, "August")
	html := digests["P100"]

	first := strings.Index(html, "PO A")
	second := strings.Index(html, "PO B")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestBuildMixedPOUsesPerLineBlocks(t *testing.T) {
	// One flagged line of the PO carries a different message, so the
	// whole PO falls back to the per-line form.
	digests := digest.Build([]types.SummaryRow{
		summaryRow("P100", "A", 10, types.ActionNotInvoiced),
		summaryRow("P100", "A", 20, types.ActionShortSupply),
	}, "August")

	assert.Contains(t, digests["P100"], "You goods receipted")
}
