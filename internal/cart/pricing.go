package cart

import (
	"github.com/shopspring/decimal"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

const bpsScale = 10000

// RentValueCents prices a rental line: the catalog price scaled by the
// configured fraction (basis points), rounded down.
func RentValueCents(priceCents int64, fractionBps int) int64 {
	return decimal.NewFromInt(priceCents).
		Mul(decimal.NewFromInt(int64(fractionBps))).
		Div(decimal.NewFromInt(bpsScale)).
		Floor().
		IntPart()
}

// lineValueCents prices a single line item. Borrow lines are always free.
func lineValueCents(line LineItem, fractionBps int) int64 {
	switch line.TransactionType {
	case enums.TransactionBuy:
		return line.Item.PriceCents
	case enums.TransactionRent:
		return RentValueCents(line.Item.PriceCents, fractionBps)
	default:
		return 0
	}
}
