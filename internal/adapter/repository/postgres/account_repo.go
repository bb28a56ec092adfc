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

// bankAccountRepository implements domain.BankAccountRepository
type bankAccountRepository struct {
	db *DB
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *DB) domain.BankAccountRepository {
	return &bankAccountRepository{db: db}
}

// GetByID retrieves a bank account by its ID
func (r *bankAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error) {
	query := `SELECT id, name, balance FROM bank_accounts WHERE id = $1`

	account, err := scanBankAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("bank account not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}

	return account, nil
}

// List retrieves all bank accounts
func (r *bankAccountRepository) List(ctx context.Context) ([]*domain.BankAccount, error) {
	query := `SELECT id, name, balance FROM bank_accounts ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.BankAccount
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bank accounts: %w", err)
	}

	return accounts, nil
}

// AdjustBalance applies a signed delta to an account's balance
func (r *bankAccountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	query := `UPDATE bank_accounts SET balance = balance + $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, delta.String())
	if err != nil {
		return fmt.Errorf("failed to adjust bank account balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bank account not found: %w", domain.ErrNotFound)
	}

	return nil
}

func scanBankAccount(row rowScanner) (*domain.BankAccount, error) {
	var account domain.BankAccount
	var balanceStr string

	err := row.Scan(&account.ID, &account.Name, &balanceStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan bank account: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	return &account, nil
}
