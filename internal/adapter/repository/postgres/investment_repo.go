package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// investmentRepository implements domain.InvestmentRepository
type investmentRepository struct {
	db *DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *DB) domain.InvestmentRepository {
	return &investmentRepository{db: db}
}

const investmentColumns = `
	id, name, category, principal, current_value, purchase_date,
	yield_mode, yield_index, fixed_rate, percent_of_index, spread,
	liquidity, maturity_date, account_id
`

// GetByID retrieves an investment by its ID
func (r *investmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1`

	inv, err := scanInvestment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("investment not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get investment by ID: %w", err)
	}

	return inv, nil
}

// Create creates a new investment
func (r *investmentRepository) Create(ctx context.Context, inv *domain.Investment) error {
	query := `
		INSERT INTO investments (` + investmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var accountID interface{}
	if inv.AccountID != nil {
		accountID = inv.AccountID
	}
	var maturity interface{}
	if inv.MaturityDate != nil {
		maturity = *inv.MaturityDate
	}

	_, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.Name,
		string(inv.Category),
		inv.Principal.String(),
		inv.CurrentValue.String(),
		inv.PurchaseDate,
		string(inv.Yield.Mode),
		string(inv.Yield.Index),
		inv.Yield.FixedRate.String(),
		inv.Yield.PercentOfIndex.String(),
		inv.Yield.Spread.String(),
		string(inv.Liquidity),
		maturity,
		accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}

	return nil
}

// Update persists changed principal/current value fields
func (r *investmentRepository) Update(ctx context.Context, inv *domain.Investment) error {
	query := `
		UPDATE investments
		SET name = $2, principal = $3, current_value = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.Name,
		inv.Principal.String(),
		inv.CurrentValue.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("investment not found: %w", domain.ErrNotFound)
	}

	return nil
}

// List retrieves all investments
func (r *investmentRepository) List(ctx context.Context) ([]*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments ORDER BY purchase_date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var investments []*domain.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investments: %w", err)
	}

	return investments, nil
}

func scanInvestment(row rowScanner) (*domain.Investment, error) {
	var inv domain.Investment
	var principalStr, currentStr, fixedStr, percentStr, spreadStr string
	var maturity sql.NullTime
	var accountID sql.NullString

	err := row.Scan(
		&inv.ID,
		&inv.Name,
		&inv.Category,
		&principalStr,
		&currentStr,
		&inv.PurchaseDate,
		&inv.Yield.Mode,
		&inv.Yield.Index,
		&fixedStr,
		&percentStr,
		&spreadStr,
		&inv.Liquidity,
		&maturity,
		&accountID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan investment: %w", err)
	}

	for _, field := range []struct {
		dst *decimal.Decimal
		src string
		col string
	}{
		{&inv.Principal, principalStr, "principal"},
		{&inv.CurrentValue, currentStr, "current_value"},
		{&inv.Yield.FixedRate, fixedStr, "fixed_rate"},
		{&inv.Yield.PercentOfIndex, percentStr, "percent_of_index"},
		{&inv.Yield.Spread, spreadStr, "spread"},
	} {
		value, err := decimal.NewFromString(field.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field.col, err)
		}
		*field.dst = value
	}

	inv.PurchaseDate = inv.PurchaseDate.UTC()
	if maturity.Valid {
		m := maturity.Time.UTC()
		inv.MaturityDate = &m
	}
	if accountID.Valid {
		parsed, err := uuid.Parse(accountID.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse account_id: %w", err)
		}
		inv.AccountID = &parsed
	}

	return &inv, nil
}
