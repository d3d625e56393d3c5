// README: Pricing policy store backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// policyRowID pins the single policy row.
const policyRowID = 1

type PGPolicyRepository struct {
	db *pgxpool.Pool
}

func NewPGPolicyRepository(db *pgxpool.Pool) *PGPolicyRepository {
	return &PGPolicyRepository{db: db}
}

func (r *PGPolicyRepository) Load(ctx context.Context) (Policy, error) {
	var p Policy
	err := r.db.QueryRow(ctx, `
        SELECT max_surge_cap, peak_hour_multiplier
        FROM pricing_policy
        WHERE id = $1`, policyRowID,
	).Scan(&p.MaxSurgeCap, &p.PeakHourMultiplier)
	if errors.Is(err, pgx.ErrNoRows) {
		return Policy{}, ErrPolicyNotFound
	}
	if err != nil {
		return Policy{}, fmt.Errorf("select pricing_policy: %w", err)
	}
	return p, nil
}

func (r *PGPolicyRepository) Save(ctx context.Context, p Policy) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO pricing_policy (id, max_surge_cap, peak_hour_multiplier, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (id) DO UPDATE
        SET max_surge_cap = EXCLUDED.max_surge_cap,
            peak_hour_multiplier = EXCLUDED.peak_hour_multiplier,
            updated_at = EXCLUDED.updated_at`,
		policyRowID, p.MaxSurgeCap, p.PeakHourMultiplier,
	)
	if err != nil {
		return fmt.Errorf("upsert pricing_policy: %w", err)
	}
	return nil
}
