package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one receipt position. Items are immutable once added to a
// receipt; the operator removes them by position before finalization.
type LineItem struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	TaxIncluded bool
}

// TaxRate returns the VAT rate of the item in percent: 19 when tax is
// included, 0 for margin-scheme items.
func (i LineItem) TaxRate() int {
	if i.TaxIncluded {
		return 19
	}
	return 0
}

// Netto is quantity times unit price, before tax.
func (i LineItem) Netto() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Receipt is a finalized sales receipt. Items accumulate on the client while
// the operator edits; the receipt is numbered, rendered and persisted in one
// step and immutable afterwards.
type Receipt struct {
	Number       string
	CustomerName string
	Items        []LineItem
	CreatedAt    time.Time
}
