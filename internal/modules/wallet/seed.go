package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"lagosride/internal/types"
)

// SeedDemoData loads the launch ledger: rider history, three driver wallets and one
// outstanding payout request.
func SeedDemoData(ctx context.Context, store Store, now time.Time) error {
	day := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }
	amt := decimal.RequireFromString

	type entry struct {
		owner types.ID
		delta decimal.Decimal
		tx    Transaction
	}
	entries := []entry{
		{RiderWalletID, decimal.Zero, Transaction{ID: "txn1", Date: day(3), Amount: amt("8500"), Type: TxDebit, Status: TxCompleted, Description: "Bus: GIGM - Yaba to Ajah"}},
		{RiderWalletID, decimal.Zero, Transaction{ID: "txn2", Date: day(1), Amount: amt("3500"), Type: TxDebit, Status: TxCompleted, Description: "Ride: Ikeja to Lekki"}},
		{"driver1", amt("20100.50"), Transaction{ID: "dtxn0", Date: day(30), Amount: amt("20100.50"), Type: TxCredit, Status: TxCompleted, Description: "Opening balance"}},
		{"driver1", amt("500"), Transaction{ID: "dtxn3", Date: day(3), Amount: amt("500"), Type: TxTip, Status: TxCompleted, Description: "Tip from rider"}},
		{"driver1", amt("2200"), Transaction{ID: "dtxn2", Date: day(2), Amount: amt("2200"), Type: TxCredit, Status: TxCompleted, Description: "Fare: Surulere to VI"}},
		{"driver1", amt("2800"), Transaction{ID: "dtxn1", Date: day(1), Amount: amt("2800"), Type: TxCredit, Status: TxCompleted, Description: "Fare: Ikeja to Lekki"}},
		{"driver2", amt("33250"), Transaction{ID: "dtxn4", Date: day(10), Amount: amt("33250"), Type: TxCredit, Status: TxCompleted, Description: "Opening balance"}},
		{"driver4", amt("35200"), Transaction{ID: "dtxn5", Date: day(10), Amount: amt("35200"), Type: TxCredit, Status: TxCompleted, Description: "Opening balance"}},
	}
	for _, owner := range []types.ID{RiderWalletID, "driver1", "driver2", "driver4"} {
		if err := store.Open(ctx, owner); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := store.Record(ctx, e.owner, e.delta, e.tx); err != nil {
			return err
		}
	}
	return store.CreatePayout(ctx, Payout{
		ID:         "payout1",
		DriverID:   "driver2",
		DriverName: "Chioma Okoro",
		Amount:     amt("15000"),
		Date:       now,
		Status:     PayoutPending,
	})
}
