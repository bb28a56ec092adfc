package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// patrimonyRepository implements domain.PatrimonyRepository
type patrimonyRepository struct {
	db *DB
}

// NewPatrimonyRepository creates a new patrimony repository
func NewPatrimonyRepository(db *DB) domain.PatrimonyRepository {
	return &patrimonyRepository{db: db}
}

// ListAssets retrieves all assets
func (r *patrimonyRepository) ListAssets(ctx context.Context) ([]*domain.Asset, error) {
	query := `SELECT id, name, category, current_value FROM assets ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		var asset domain.Asset
		var valueStr string

		if err := rows.Scan(&asset.ID, &asset.Name, &asset.Category, &valueStr); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse current_value: %w", err)
		}
		asset.CurrentValue = value

		assets = append(assets, &asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	return assets, nil
}

// ListLiabilities retrieves all liabilities
func (r *patrimonyRepository) ListLiabilities(ctx context.Context) ([]*domain.Liability, error) {
	query := `SELECT id, name, category, remaining_amount FROM liabilities ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	defer rows.Close()

	var liabilities []*domain.Liability
	for rows.Next() {
		var liability domain.Liability
		var amountStr string

		if err := rows.Scan(&liability.ID, &liability.Name, &liability.Category, &amountStr); err != nil {
			return nil, fmt.Errorf("failed to scan liability: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse remaining_amount: %w", err)
		}
		liability.RemainingAmount = amount

		liabilities = append(liabilities, &liability)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate liabilities: %w", err)
	}

	return liabilities, nil
}
