package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jordaannt/GRIR-Project/internal/recon"
	"github.com/jordaannt/GRIR-Project/internal/types"
)

func TestPipelineRunEndToEnd(t *testing.T) {
	movements := makeTable(movementHeaders,
		// PO A line 10: received and fully invoiced, reconciled.
		[]string{"1", "A", "", "10", "MAT-1", "P100", "S", "10", "999", "100.00"},
		[]string{"2", "A", "", "10", "MAT-1", "", "S", "10", "100.00", "999"},
		// PO A line 20: received, never invoiced.
		[]string{"1", "A", "", "20", "MAT-2", "P100", "S", "5", "999", "50.00"},
		// PO B line 10: received on a deleted line, dropped entirely.
		[]string{"1", "B", "", "10", "MAT-3", "P200", "S", "7", "999", "70.00"},
	)
	poLines := makeTable(poLineHeaders,
		[]string{"A", "10", "Widget", ""},
		[]string{"A", "20", "Bracket", ""},
		[]string{"B", "10", "Obsolete part", "L"},
	)

	p := recon.New(zap.NewNop().Sugar(), decimal.RequireFromString("0.05"))
	rows, stats, err := p.Run(movements, poLines)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].PO)
	assert.Equal(t, 10, rows[0].Line)
	assert.Equal(t, "Widget", rows[0].Description)
	assert.Equal(t, "", rows[0].Action)

	// Only part of PO A lacks an invoice, so line 20 is short supply.
	assert.Equal(t, 20, rows[1].Line)
	assert.Equal(t, types.ActionShortSupply, rows[1].Action)

	// The deleted-line movement never reaches the goods-receipt set.
	assert.Equal(t, 2, stats.GoodsReceiptMovements)
	assert.Equal(t, 1, stats.InvoiceReceiptMovements)
	assert.Equal(t, 1, stats.DeletedLines)
	assert.Equal(t, 2, stats.SummaryRows)
	assert.Equal(t, 1, stats.FlaggedRows)
}

func TestPipelineRunPropagatesSchemaError(t *testing.T) {
	movements := makeTable([]string{"Trans./event type"})

	p := recon.New(zap.NewNop().Sugar(), decimal.RequireFromString("0.05"))
	_, _, err := p.Run(movements, emptyPOLines())
	assert.Error(t, err)
}

func TestPipelineRunEmptySummary(t *testing.T) {
	p := recon.New(zap.NewNop().Sugar(), decimal.RequireFromString("0.05"))
	_, _, err := p.Run(makeTable(movementHeaders), emptyPOLines())
	assert.ErrorIs(t, err, recon.ErrEmptySummary)
}
