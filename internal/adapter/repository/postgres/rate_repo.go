package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// rateSeriesRepository implements domain.RateSeriesRepository
type rateSeriesRepository struct {
	db *DB
}

// NewRateSeriesRepository creates a new rate series repository
func NewRateSeriesRepository(db *DB) domain.RateSeriesRepository {
	return &rateSeriesRepository{db: db}
}

// GetSeries retrieves the ordered observations covering [from, to].
// The last observation at or before `from` is included so the rate in force
// at the start of the period is known.
func (r *rateSeriesRepository) GetSeries(ctx context.Context, rateType domain.RateType, from, to time.Time) (*domain.RateSeries, error) {
	query := `
		SELECT id, rate_type, reference_date, annual_rate
		FROM rate_observations
		WHERE rate_type = $1
		  AND reference_date <= $3
		  AND reference_date >= COALESCE(
			(SELECT MAX(reference_date) FROM rate_observations WHERE rate_type = $1 AND reference_date <= $2),
			$2)
		ORDER BY reference_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, string(rateType), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate series: %w", err)
	}
	defer rows.Close()

	var observations []domain.RateObservation
	for rows.Next() {
		obs, err := scanRateObservation(rows)
		if err != nil {
			return nil, err
		}
		observations = append(observations, *obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rate series: %w", err)
	}

	return domain.NewRateSeries(rateType, observations)
}

// GetLatest retrieves the most recent observation for a rate type
func (r *rateSeriesRepository) GetLatest(ctx context.Context, rateType domain.RateType) (*domain.RateObservation, error) {
	query := `
		SELECT id, rate_type, reference_date, annual_rate
		FROM rate_observations
		WHERE rate_type = $1
		ORDER BY reference_date DESC
		LIMIT 1
	`

	row := r.db.QueryRowContext(ctx, query, string(rateType))
	obs, err := scanRateObservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no observation found for rate type %s: %w", rateType, domain.ErrNotFound)
		}
		return nil, err
	}

	return obs, nil
}

// Add upserts an observation keyed by (rate type, reference date)
func (r *rateSeriesRepository) Add(ctx context.Context, obs *domain.RateObservation) error {
	query := `
		INSERT INTO rate_observations (id, rate_type, reference_date, annual_rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rate_type, reference_date) DO UPDATE SET annual_rate = EXCLUDED.annual_rate
	`

	_, err := r.db.ExecContext(ctx, query,
		obs.ID,
		string(obs.RateType),
		obs.ReferenceDate,
		obs.AnnualRate.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate observation: %w", err)
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRateObservation(row rowScanner) (*domain.RateObservation, error) {
	var obs domain.RateObservation
	var rateStr string

	if err := row.Scan(&obs.ID, &obs.RateType, &obs.ReferenceDate, &rateStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan rate observation: %w", err)
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse annual_rate: %w", err)
	}
	obs.AnnualRate = rate
	obs.ReferenceDate = obs.ReferenceDate.UTC()

	return &obs, nil
}
