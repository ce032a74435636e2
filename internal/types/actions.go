package types

import "strings"

// Issue action texts assigned by the classifier. These are the exact
// messages shown to procurement staff in the report and the plant
// digests, so they are treated as a closed set rather than free text.
const (
	// ActionNotInvoiced flags a PO where every line has been goods
	// receipted but nothing invoiced. It is carried by the first line
	// of the PO only.
	ActionNotInvoiced = "Invoice has not been paid. If you have received this order, send the invoice to AP. If you haven't received this order, contact Trade Ops to cancel the PO."

	// ActionShortSupply flags a GR-without-IR line inside a PO where
	// other lines have been invoiced.
	ActionShortSupply = "Short supply or credit note detected. Contact Trade Ops to reverse the goods receipt."

	// ActionOverReceipt flags a line receipted for more than invoiced.
	ActionOverReceipt = "You have goods receipted a higher quantity than you have been invoiced for. Contact Trade Ops to reverse the goods receipt and rectify. If this order has been split across multiple invoices, send all invoices to AP."

	// ActionUnderReceipt flags a line receipted for less than invoiced.
	ActionUnderReceipt = "You have goods receipted a lower quantity than you have been invoiced for. Amend the quantity in the Purchase Order tile and goods receipt again. If a credit note is required instead, contact the supplier to request a credit."

	// ActionPriceDiscrepancy flags a line whose receipted and invoiced
	// values differ by more than the configured tolerance.
	ActionPriceDiscrepancy = "There is a discrepancy between the PO and the invoice price. Verify whether supplier pricing is correct and notify Trade Ops."
)

// notInvoicedPrefix is the stable leading fragment of ActionNotInvoiced.
// The report formatter and the digest builder both key their PO-level
// handling off this prefix rather than the full message.
const notInvoicedPrefix = "Invoice has not been paid"

// IsNotInvoiced reports whether an action string carries the PO-level
// "not yet invoiced" message.
func IsNotInvoiced(action string) bool {
	return strings.HasPrefix(action, notInvoicedPrefix)
}

// IssueCategory maps an action text to a short category label for run
// summaries. Empty actions map to the empty string.
func IssueCategory(action string) string {
	switch {
	case action == "":
		return ""
	case IsNotInvoiced(action):
		return "Not Invoiced"
	case action == ActionShortSupply:
		return "Short Supply"
	case action == ActionOverReceipt:
		return "Over-Receipted"
	case action == ActionUnderReceipt:
		return "Under-Receipted"
	case action == ActionPriceDiscrepancy:
		return "Price Discrepancy"
	default:
		return "Other"
	}
}
