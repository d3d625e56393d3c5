// README: In-memory ledger used when no database is configured and in tests.
package wallet

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"lagosride/internal/types"
)

type MemoryStore struct {
	mu      sync.Mutex
	wallets map[types.ID]*Wallet
	payouts []*Payout
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wallets: make(map[types.ID]*Wallet)}
}

func (s *MemoryStore) Open(_ context.Context, owner types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[owner]; !ok {
		s.wallets[owner] = &Wallet{OwnerID: owner, Balance: decimal.Zero, Currency: types.DefaultCurrency}
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, owner types.ID) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[owner]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	cp := *w
	cp.Transactions = append([]Transaction(nil), w.Transactions...)
	return cp, nil
}

func (s *MemoryStore) Record(_ context.Context, owner types.ID, delta decimal.Decimal, tx Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[owner]
	if !ok {
		return ErrNotFound
	}
	return s.applyLocked(w, delta, tx)
}

func (s *MemoryStore) CreatePayout(_ context.Context, p Payout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[p.DriverID]
	if !ok {
		return ErrNotFound
	}
	if err := s.applyLocked(w, p.Amount.Neg(), payoutTransaction(p)); err != nil {
		return err
	}
	cp := p
	s.payouts = append([]*Payout{&cp}, s.payouts...)
	return nil
}

func (s *MemoryStore) Payouts(_ context.Context, status PayoutStatus) ([]Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Payout
	for _, p := range s.payouts {
		if status == "" || p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *MemoryStore) CompletePayout(_ context.Context, id types.ID) (Payout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payouts {
		if p.ID != id {
			continue
		}
		if p.Status != PayoutPending {
			return *p, ErrPayoutNotPending
		}
		p.Status = PayoutCompleted
		if w, ok := s.wallets[p.DriverID]; ok {
			for i := range w.Transactions {
				if w.Transactions[i].ID == id {
					w.Transactions[i].Status = TxCompleted
				}
			}
		}
		return *p, nil
	}
	return Payout{}, ErrPayoutNotFound
}

// applyLocked adjusts the balance and prepends tx. A debit may not overdraw.
func (s *MemoryStore) applyLocked(w *Wallet, delta decimal.Decimal, tx Transaction) error {
	next := w.Balance.Add(delta)
	if delta.IsNegative() && next.IsNegative() {
		return ErrInsufficientFunds
	}
	w.Balance = next
	w.Transactions = append([]Transaction{tx}, w.Transactions...)
	return nil
}
