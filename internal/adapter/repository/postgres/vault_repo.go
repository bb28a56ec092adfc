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

// vaultRepository implements domain.VaultRepository
type vaultRepository struct {
	db *DB
}

// NewVaultRepository creates a new vault repository
func NewVaultRepository(db *DB) domain.VaultRepository {
	return &vaultRepository{db: db}
}

// GetByID retrieves a vault by its ID
func (r *vaultRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vault, error) {
	query := `SELECT id, name, balance FROM vaults WHERE id = $1`

	var vault domain.Vault
	var balanceStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(&vault.ID, &vault.Name, &balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vault not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	vault.Balance = balance

	return &vault, nil
}
