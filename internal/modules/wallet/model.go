// README: Wallet ledger model: balances, transactions and driver payouts.
package wallet

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"lagosride/internal/types"
)

var (
	ErrNotFound          = errors.New("wallet not found")
	ErrPayoutNotFound    = errors.New("payout not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPayoutNotPending  = errors.New("payout is not pending")
)

// RiderWalletID owns the single rider-side ledger; rider accounts are not modelled.
const RiderWalletID types.ID = "rider"

type TxType string

const (
	TxCredit TxType = "credit"
	TxDebit  TxType = "debit"
	TxTip    TxType = "tip"
	TxPayout TxType = "payout"
)

type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxCompleted TxStatus = "completed"
	TxFailed    TxStatus = "failed"
)

type Transaction struct {
	ID          types.ID        `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TxType          `json:"type"`
	Status      TxStatus        `json:"status"`
	Description string          `json:"description"`
}

type Wallet struct {
	OwnerID      types.ID        `json:"owner_id"`
	Balance      decimal.Decimal `json:"balance"`
	Currency     string          `json:"currency"`
	Transactions []Transaction   `json:"transactions"`
}

type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutCompleted PayoutStatus = "completed"
)

type Payout struct {
	ID         types.ID        `json:"id"`
	DriverID   types.ID        `json:"driver_id"`
	DriverName string          `json:"driver_name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Status     PayoutStatus    `json:"status"`
}
