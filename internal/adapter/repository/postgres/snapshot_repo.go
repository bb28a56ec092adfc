package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new monthly snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Upsert creates or replaces the snapshot keyed by (investment, month)
func (r *snapshotRepository) Upsert(ctx context.Context, snap *domain.MonthlySnapshot) error {
	query := `
		INSERT INTO monthly_snapshots (id, investment_id, month, applied_value, total_value, yield_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (investment_id, month) DO UPDATE SET
			applied_value = EXCLUDED.applied_value,
			total_value = EXCLUDED.total_value,
			yield_value = EXCLUDED.yield_value
	`

	_, err := r.db.ExecContext(ctx, query,
		snap.ID,
		snap.InvestmentID,
		snap.Month,
		snap.AppliedValue.String(),
		snap.TotalValue.String(),
		snap.YieldValue.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert monthly snapshot: %w", err)
	}

	return nil
}

// GetByMonth retrieves the snapshot of an investment for one month
func (r *snapshotRepository) GetByMonth(ctx context.Context, investmentID uuid.UUID, month time.Time) (*domain.MonthlySnapshot, error) {
	query := `
		SELECT id, investment_id, month, applied_value, total_value, yield_value
		FROM monthly_snapshots
		WHERE investment_id = $1 AND month = $2
	`

	snap, err := scanSnapshot(r.db.QueryRowContext(ctx, query, investmentID, domain.MonthStart(month)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot not found for investment %s: %w", investmentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get monthly snapshot: %w", err)
	}

	return snap, nil
}

// ListByPeriod retrieves all snapshots up to `to`, optionally bounded below
// by `from` (zero means no lower bound), ordered by month
func (r *snapshotRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.MonthlySnapshot, error) {
	query := `
		SELECT id, investment_id, month, applied_value, total_value, yield_value
		FROM monthly_snapshots
		WHERE month <= $2 AND ($1::date IS NULL OR month >= $1)
		ORDER BY month ASC
	`

	var lower interface{}
	if !from.IsZero() {
		lower = domain.MonthStart(from)
	}

	rows, err := r.db.QueryContext(ctx, query, lower, domain.MonthStart(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*domain.MonthlySnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly snapshots: %w", err)
	}

	return snapshots, nil
}

func scanSnapshot(row rowScanner) (*domain.MonthlySnapshot, error) {
	var snap domain.MonthlySnapshot
	var appliedStr, totalStr, yieldStr string

	err := row.Scan(
		&snap.ID,
		&snap.InvestmentID,
		&snap.Month,
		&appliedStr,
		&totalStr,
		&yieldStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan monthly snapshot: %w", err)
	}

	for _, field := range []struct {
		dst *decimal.Decimal
		src string
		col string
	}{
		{&snap.AppliedValue, appliedStr, "applied_value"},
		{&snap.TotalValue, totalStr, "total_value"},
		{&snap.YieldValue, yieldStr, "yield_value"},
	} {
		value, err := decimal.NewFromString(field.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field.col, err)
		}
		*field.dst = value
	}

	snap.Month = domain.MonthStart(snap.Month.UTC())

	return &snap, nil
}
