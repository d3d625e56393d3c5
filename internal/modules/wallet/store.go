// README: Wallet store contract and its PostgreSQL implementation.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"lagosride/internal/types"
)

// Store keeps balances and their ledger consistent: every balance change lands with its
// transaction row in one unit.
type Store interface {
	Open(ctx context.Context, owner types.ID) error
	Get(ctx context.Context, owner types.ID) (Wallet, error)
	Record(ctx context.Context, owner types.ID, delta decimal.Decimal, tx Transaction) error
	CreatePayout(ctx context.Context, p Payout) error
	// Payouts lists payouts newest first; an empty status lists all.
	Payouts(ctx context.Context, status PayoutStatus) ([]Payout, error)
	CompletePayout(ctx context.Context, id types.ID) (Payout, error)
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Open(ctx context.Context, owner types.ID) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO wallets (owner_id, balance, currency)
        VALUES ($1, 0, $2)
        ON CONFLICT (owner_id) DO NOTHING`,
		string(owner), types.DefaultCurrency,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, owner types.ID) (Wallet, error) {
	w := Wallet{OwnerID: owner}
	var balance string
	err := s.db.QueryRow(ctx, `
        SELECT balance::text, currency FROM wallets WHERE owner_id = $1`, string(owner),
	).Scan(&balance, &w.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Wallet{}, ErrNotFound
	}
	if err != nil {
		return Wallet{}, err
	}
	if w.Balance, err = decimal.NewFromString(balance); err != nil {
		return Wallet{}, fmt.Errorf("parse balance: %w", err)
	}

	rows, err := s.db.Query(ctx, `
        SELECT id, created_at, amount::text, type, status, description
        FROM wallet_transactions
        WHERE owner_id = $1
        ORDER BY created_at DESC, id DESC`, string(owner),
	)
	if err != nil {
		return Wallet{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var tx Transaction
		var amount string
		if err := rows.Scan(&tx.ID, &tx.Date, &amount, &tx.Type, &tx.Status, &tx.Description); err != nil {
			return Wallet{}, err
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return Wallet{}, fmt.Errorf("parse amount: %w", err)
		}
		w.Transactions = append(w.Transactions, tx)
	}
	return w, rows.Err()
}

func (s *PGStore) Record(ctx context.Context, owner types.ID, delta decimal.Decimal, tx Transaction) error {
	return pgx.BeginFunc(ctx, s.db, func(dbtx pgx.Tx) error {
		return applyTx(ctx, dbtx, owner, delta, tx)
	})
}

func (s *PGStore) CreatePayout(ctx context.Context, p Payout) error {
	return pgx.BeginFunc(ctx, s.db, func(dbtx pgx.Tx) error {
		if err := applyTx(ctx, dbtx, p.DriverID, p.Amount.Neg(), payoutTransaction(p)); err != nil {
			return err
		}
		_, err := dbtx.Exec(ctx, `
            INSERT INTO payouts (id, driver_id, driver_name, amount, status, created_at)
            VALUES ($1, $2, $3, $4::numeric, $5, $6)`,
			string(p.ID), string(p.DriverID), p.DriverName, p.Amount.String(), string(p.Status), p.Date,
		)
		return err
	})
}

func (s *PGStore) Payouts(ctx context.Context, status PayoutStatus) ([]Payout, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, driver_id, driver_name, amount::text, status, created_at
        FROM payouts
        WHERE $1 = '' OR status = $1
        ORDER BY created_at DESC, id DESC`, string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PGStore) CompletePayout(ctx context.Context, id types.ID) (Payout, error) {
	var p Payout
	err := pgx.BeginFunc(ctx, s.db, func(dbtx pgx.Tx) error {
		row := dbtx.QueryRow(ctx, `
            SELECT id, driver_id, driver_name, amount::text, status, created_at
            FROM payouts WHERE id = $1 FOR UPDATE`, string(id))
		var err error
		p, err = scanPayout(row)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPayoutNotFound
		}
		if err != nil {
			return err
		}
		if p.Status != PayoutPending {
			return ErrPayoutNotPending
		}
		if _, err := dbtx.Exec(ctx, `UPDATE payouts SET status = $1 WHERE id = $2`,
			string(PayoutCompleted), string(id)); err != nil {
			return err
		}
		if _, err := dbtx.Exec(ctx, `UPDATE wallet_transactions SET status = $1 WHERE id = $2`,
			string(TxCompleted), string(id)); err != nil {
			return err
		}
		p.Status = PayoutCompleted
		return nil
	})
	return p, err
}

func applyTx(ctx context.Context, dbtx pgx.Tx, owner types.ID, delta decimal.Decimal, tx Transaction) error {
	var balance string
	err := dbtx.QueryRow(ctx, `
        SELECT balance::text FROM wallets WHERE owner_id = $1 FOR UPDATE`, string(owner),
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	current, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("parse balance: %w", err)
	}
	next := current.Add(delta)
	if delta.IsNegative() && next.IsNegative() {
		return ErrInsufficientFunds
	}

	if _, err := dbtx.Exec(ctx, `
        UPDATE wallets SET balance = $1::numeric, updated_at = NOW() WHERE owner_id = $2`,
		next.String(), string(owner)); err != nil {
		return err
	}
	_, err = dbtx.Exec(ctx, `
        INSERT INTO wallet_transactions (id, owner_id, amount, type, status, description, created_at)
        VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)`,
		string(tx.ID), string(owner), tx.Amount.String(), string(tx.Type), string(tx.Status), tx.Description, tx.Date,
	)
	return err
}

func scanPayout(row pgx.Row) (Payout, error) {
	var p Payout
	var amount string
	var created time.Time
	if err := row.Scan(&p.ID, &p.DriverID, &p.DriverName, &amount, &p.Status, &created); err != nil {
		return Payout{}, err
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return Payout{}, fmt.Errorf("parse payout amount: %w", err)
	}
	p.Amount = a
	p.Date = created
	return p, nil
}

func payoutTransaction(p Payout) Transaction {
	return Transaction{
		ID:          p.ID,
		Date:        p.Date,
		Amount:      p.Amount,
		Type:        TxPayout,
		Status:      TxPending,
		Description: "Payout to bank account",
	}
}
