package investment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/valuation"
)

// Valuator computes an investment's mark-to-model value
type Valuator interface {
	Valuate(ctx context.Context, inv *domain.Investment) (valuation.Result, error)
}

// CreateInput represents the input for creating an investment
type CreateInput struct {
	Name         string
	Category     domain.Category
	Principal    decimal.Decimal
	PurchaseDate time.Time
	Yield        domain.YieldConfig
	Liquidity    domain.Liquidity
	MaturityDate *time.Time
	AccountID    *uuid.UUID
}

// Service handles the investment lifecycle: creation, deposits, withdrawals
// and valuation refreshes. Snapshot writes and bank-account cash movements
// happen here, never inside the valuation arithmetic.
type Service struct {
	InvestmentRepo domain.InvestmentRepository
	SnapshotRepo   domain.SnapshotRepository
	AccountRepo    domain.BankAccountRepository
	Valuator       Valuator

	// nowFn supplies the operation date; overridable in tests
	nowFn func() time.Time
}

// NewService creates a new investment Service instance
func NewService(
	investmentRepo domain.InvestmentRepository,
	snapshotRepo domain.SnapshotRepository,
	accountRepo domain.BankAccountRepository,
	valuator Valuator,
) *Service {
	return &Service{
		InvestmentRepo: investmentRepo,
		SnapshotRepo:   snapshotRepo,
		AccountRepo:    accountRepo,
		Valuator:       valuator,
		nowFn:          time.Now,
	}
}

// Create registers a new investment with current value equal to the
// principal and seeds its first monthly snapshot (applied = total =
// principal, yield = 0). A linked bank account is debited by the principal.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Investment, error) {
	if input.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("investment principal must be positive")
	}

	inv := &domain.Investment{
		ID:           uuid.New(),
		Name:         input.Name,
		Category:     input.Category,
		Principal:    input.Principal,
		CurrentValue: input.Principal,
		PurchaseDate: input.PurchaseDate,
		Yield:        input.Yield,
		Liquidity:    input.Liquidity,
		MaturityDate: input.MaturityDate,
		AccountID:    input.AccountID,
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvestmentRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	// Seed snapshot for the purchase month
	seed := domain.NewMonthlySnapshot(inv.ID, inv.PurchaseDate, inv.Principal, inv.Principal)
	if err := s.SnapshotRepo.Upsert(ctx, seed); err != nil {
		return nil, err
	}

	if inv.AccountID != nil {
		if err := s.AccountRepo.AdjustBalance(ctx, *inv.AccountID, input.Principal.Neg()); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// Deposit adds capital to an investment: principal and current value grow by
// the full amount and the month's snapshot records the contribution flow.
func (s *Service) Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.Investment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("deposit amount must be positive")
	}

	inv, err := s.InvestmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Principal = inv.Principal.Add(amount)
	inv.CurrentValue = inv.CurrentValue.Add(amount)

	if err := s.InvestmentRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.upsertMonthSnapshot(ctx, inv, amount); err != nil {
		return nil, err
	}

	if inv.AccountID != nil {
		if err := s.AccountRepo.AdjustBalance(ctx, *inv.AccountID, amount.Neg()); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// Withdraw removes capital from an investment. The current value drops by
// the withdrawn amount and the principal is reduced proportionally so the
// yield ratio is preserved. Withdrawing more than the current value is
// rejected here, before any computation.
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.Investment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("withdrawal amount must be positive")
	}

	inv, err := s.InvestmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(inv.CurrentValue) {
		return nil, errors.New("withdrawal amount exceeds current value")
	}

	oldValue := inv.CurrentValue
	oldPrincipal := inv.Principal

	inv.CurrentValue = inv.CurrentValue.Sub(amount)
	// Proportional principal reduction keeps the yield ratio intact
	inv.Principal = oldPrincipal.Mul(inv.CurrentValue).Div(oldValue)

	if err := s.InvestmentRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	// The month's flow is the (negative) principal delta
	flow := inv.Principal.Sub(oldPrincipal)
	if err := s.upsertMonthSnapshot(ctx, inv, flow); err != nil {
		return nil, err
	}

	if inv.AccountID != nil {
		if err := s.AccountRepo.AdjustBalance(ctx, *inv.AccountID, amount); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// Refresh recomputes the current value from the yield configuration and
// persists it. Equity-like categories are left untouched: their value is
// recorded externally and a passthrough result would clobber it.
func (s *Service) Refresh(ctx context.Context, id uuid.UUID) (*domain.Investment, valuation.Result, error) {
	inv, err := s.InvestmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, valuation.Result{}, err
	}

	result, err := s.Valuator.Valuate(ctx, inv)
	if err != nil {
		return nil, valuation.Result{}, err
	}

	if result.Method == valuation.MethodPassthrough {
		return inv, result, nil
	}

	inv.CurrentValue = result.Value
	if err := s.InvestmentRepo.Update(ctx, inv); err != nil {
		return nil, valuation.Result{}, err
	}

	return inv, result, nil
}

// upsertMonthSnapshot folds a contribution flow into the current month's
// snapshot, creating it when the month has no activity yet. Lookup failures
// other than not-found abort the operation: replacing the snapshot without
// knowing its recorded flow would erase it.
func (s *Service) upsertMonthSnapshot(ctx context.Context, inv *domain.Investment, flow decimal.Decimal) error {
	month := domain.MonthStart(s.nowFn())

	existing, err := s.SnapshotRepo.GetByMonth(ctx, inv.ID, month)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to get month snapshot: %w", err)
		}
		// First activity this month
		snap := domain.NewMonthlySnapshot(inv.ID, month, flow, inv.CurrentValue)
		return s.SnapshotRepo.Upsert(ctx, snap)
	}

	applied := existing.AppliedValue.Add(flow)
	snap := domain.NewMonthlySnapshot(inv.ID, month, applied, inv.CurrentValue)
	snap.ID = existing.ID
	return s.SnapshotRepo.Upsert(ctx, snap)
}
