package cart

import (
	"testing"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

func TestRentValueCents(t *testing.T) {
	cases := []struct {
		name        string
		priceCents  int64
		fractionBps int
		want        int64
	}{
		{name: "even split", priceCents: 50000, fractionBps: 4000, want: 20000},
		{name: "floors fractional cents", priceCents: 29900, fractionBps: 4000, want: 11960},
		{name: "floors odd price", priceCents: 101, fractionBps: 4000, want: 40},
		{name: "single cent", priceCents: 1, fractionBps: 4000, want: 0},
		{name: "zero price", priceCents: 0, fractionBps: 4000, want: 0},
		{name: "full fraction", priceCents: 12345, fractionBps: 10000, want: 12345},
		{name: "custom fraction", priceCents: 9999, fractionBps: 2500, want: 2499},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RentValueCents(tc.priceCents, tc.fractionBps); got != tc.want {
				t.Fatalf("RentValueCents(%d, %d) = %d, want %d", tc.priceCents, tc.fractionBps, got, tc.want)
			}
		})
	}
}

func TestLineValueCentsByTransactionType(t *testing.T) {
	item := ItemSnapshot{PriceCents: 29900}

	buy := LineItem{Item: item, TransactionType: enums.TransactionBuy}
	if got := lineValueCents(buy, 4000); got != 29900 {
		t.Fatalf("buy line = %d, want 29900", got)
	}

	rent := LineItem{Item: item, TransactionType: enums.TransactionRent}
	if got := lineValueCents(rent, 4000); got != 11960 {
		t.Fatalf("rent line = %d, want 11960", got)
	}

	borrow := LineItem{Item: item, TransactionType: enums.TransactionBorrow}
	if got := lineValueCents(borrow, 4000); got != 0 {
		t.Fatalf("borrow line = %d, want 0", got)
	}
}
