// README: Wallet service: fare earnings, rider payments and driver payouts.
package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"lagosride/internal/modules/pricing"
	"lagosride/internal/types"
)

type Service struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, now: time.Now, logger: logger.Named("wallet")}
}

type PaymentCommand struct {
	Amount      decimal.Decimal
	Description string
}

type PayoutCommand struct {
	DriverID   types.ID
	DriverName string
	Amount     decimal.Decimal
}

func (s *Service) OpenWallet(ctx context.Context, owner types.ID) error {
	return s.store.Open(ctx, owner)
}

func (s *Service) Wallet(ctx context.Context, owner types.ID) (Wallet, error) {
	return s.store.Get(ctx, owner)
}

func (s *Service) RiderWallet(ctx context.Context) (Wallet, error) {
	if err := s.store.Open(ctx, RiderWalletID); err != nil {
		return Wallet{}, err
	}
	return s.store.Get(ctx, RiderWalletID)
}

// CreditEarnings pays the driver their share of a fare after the platform fee.
func (s *Service) CreditEarnings(ctx context.Context, driverID types.ID, fare decimal.Decimal, description string) (Transaction, error) {
	if !fare.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}
	earnings := pricing.DriverEarnings(fare)
	tx := Transaction{
		ID:          types.NewID("txn"),
		Date:        s.now(),
		Amount:      earnings,
		Type:        TxCredit,
		Status:      TxCompleted,
		Description: description,
	}
	if err := s.store.Record(ctx, driverID, earnings, tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// ProcessPayment records a settled card payment on the rider ledger. The card is
// charged externally, so the wallet balance itself does not move.
func (s *Service) ProcessPayment(ctx context.Context, cmd PaymentCommand) (Transaction, error) {
	if !cmd.Amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}
	if err := s.store.Open(ctx, RiderWalletID); err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		ID:          types.NewID("txn"),
		Date:        s.now(),
		Amount:      cmd.Amount,
		Type:        TxDebit,
		Status:      TxCompleted,
		Description: cmd.Description,
	}
	if err := s.store.Record(ctx, RiderWalletID, decimal.Zero, tx); err != nil {
		return Transaction{}, err
	}
	s.logger.Info("payment processed", zap.String("tx_id", string(tx.ID)), zap.String("amount", cmd.Amount.String()))
	return tx, nil
}

// RequestPayout moves funds out of the driver's balance into a pending payout.
func (s *Service) RequestPayout(ctx context.Context, cmd PayoutCommand) (Payout, error) {
	if !cmd.Amount.IsPositive() {
		return Payout{}, ErrInvalidAmount
	}
	p := Payout{
		ID:         types.NewID("payout"),
		DriverID:   cmd.DriverID,
		DriverName: cmd.DriverName,
		Amount:     cmd.Amount,
		Date:       s.now(),
		Status:     PayoutPending,
	}
	if err := s.store.CreatePayout(ctx, p); err != nil {
		return Payout{}, err
	}
	s.logger.Info("payout requested",
		zap.String("payout_id", string(p.ID)),
		zap.String("driver_id", string(p.DriverID)),
		zap.String("amount", p.Amount.String()),
	)
	return p, nil
}

func (s *Service) PendingPayouts(ctx context.Context) ([]Payout, error) {
	return s.store.Payouts(ctx, PayoutPending)
}

func (s *Service) ApprovePayout(ctx context.Context, id types.ID) (Payout, error) {
	p, err := s.store.CompletePayout(ctx, id)
	if err != nil {
		return Payout{}, err
	}
	s.logger.Info("payout approved", zap.String("payout_id", string(id)))
	return p, nil
}
