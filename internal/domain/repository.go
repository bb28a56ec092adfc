package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateSeriesRepository defines the interface for historical rate persistence.
// The valuation core treats it as a read-only data source; Add exists for the
// ingestion surface only.
type RateSeriesRepository interface {
	// GetSeries retrieves the ordered observations for a rate type covering
	// [from, to]. The observation in force at `from` (the last one at or
	// before it) is included so callers can reconstruct the full period.
	// An empty series is a valid result, not an error.
	GetSeries(ctx context.Context, rateType RateType, from, to time.Time) (*RateSeries, error)

	// GetLatest retrieves the most recent observation for a rate type
	GetLatest(ctx context.Context, rateType RateType) (*RateObservation, error)

	// Add upserts an observation keyed by (rate type, reference date)
	Add(ctx context.Context, obs *RateObservation) error
}

// InvestmentRepository defines the interface for investment persistence operations
type InvestmentRepository interface {
	// GetByID retrieves an investment by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Investment, error)

	// Create creates a new investment
	Create(ctx context.Context, inv *Investment) error

	// Update persists changed principal/current value fields
	Update(ctx context.Context, inv *Investment) error

	// List retrieves all investments
	List(ctx context.Context) ([]*Investment, error)
}

// SnapshotRepository defines the interface for monthly snapshot persistence operations
type SnapshotRepository interface {
	// Upsert creates or replaces the snapshot keyed by (investment, month)
	Upsert(ctx context.Context, snap *MonthlySnapshot) error

	// GetByMonth retrieves the snapshot of an investment for one month
	GetByMonth(ctx context.Context, investmentID uuid.UUID, month time.Time) (*MonthlySnapshot, error)

	// ListByPeriod retrieves all snapshots with month <= to and month >= from,
	// across all investments, ordered by month. A zero `from` means no lower
	// bound (callers need pre-window snapshots to carry values forward).
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*MonthlySnapshot, error)
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	// GetByID retrieves a goal with its vault/investment links
	GetByID(ctx context.Context, id uuid.UUID) (*Goal, error)

	// List retrieves all goals with their links
	List(ctx context.Context) ([]*Goal, error)
}

// VaultRepository defines the interface for vault persistence operations
type VaultRepository interface {
	// GetByID retrieves a vault by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Vault, error)
}

// BankAccountRepository defines the interface for bank account persistence operations
type BankAccountRepository interface {
	// GetByID retrieves a bank account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)

	// List retrieves all bank accounts
	List(ctx context.Context) ([]*BankAccount, error)

	// AdjustBalance applies a signed delta to an account's balance.
	// Used for the cash-movement side effects of investment operations.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

// PatrimonyRepository defines the interface for asset/liability persistence operations
type PatrimonyRepository interface {
	// ListAssets retrieves all assets
	ListAssets(ctx context.Context) ([]*Asset, error)

	// ListLiabilities retrieves all liabilities
	ListLiabilities(ctx context.Context) ([]*Liability, error)
}

// CreditCardRepository defines the interface for credit card persistence operations
type CreditCardRepository interface {
	// ListOpenBills retrieves all unpaid bills across all cards
	ListOpenBills(ctx context.Context) ([]*CreditCardBill, error)
}
