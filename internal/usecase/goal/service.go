package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Progress represents the computed state of a goal
type Progress struct {
	Goal          *domain.Goal
	CurrentAmount decimal.Decimal
	Percent       decimal.Decimal // clamped to [0, 100]
}

// Service computes goal progress
type Service struct {
	GoalRepo       domain.GoalRepository
	VaultRepo      domain.VaultRepository
	InvestmentRepo domain.InvestmentRepository
}

// NewService creates a new goal Service instance
func NewService(goalRepo domain.GoalRepository, vaultRepo domain.VaultRepository, investmentRepo domain.InvestmentRepository) *Service {
	return &Service{
		GoalRepo:       goalRepo,
		VaultRepo:      vaultRepo,
		InvestmentRepo: investmentRepo,
	}
}

// GetProgress computes a goal's progress. When the goal links vaults or
// investments, the current amount is recomputed from the linked entities'
// current values; the stored amount is only used for unlinked goals.
func (s *Service) GetProgress(ctx context.Context, goalID uuid.UUID) (*Progress, error) {
	g, err := s.GoalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	current := g.CurrentAmount
	if g.HasLinks() {
		current, err = s.linkedAmount(ctx, g)
		if err != nil {
			return nil, err
		}
	}

	return &Progress{
		Goal:          g,
		CurrentAmount: current,
		Percent:       ProgressPercent(current, g.TargetAmount),
	}, nil
}

// linkedAmount sums the current values of the goal's linked vaults and investments
func (s *Service) linkedAmount(ctx context.Context, g *domain.Goal) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, vaultID := range g.LinkedVaultIDs {
		vault, err := s.VaultRepo.GetByID(ctx, vaultID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to load linked vault: %w", err)
		}
		total = total.Add(vault.Balance)
	}

	for _, invID := range g.LinkedInvestmentIDs {
		inv, err := s.InvestmentRepo.GetByID(ctx, invID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to load linked investment: %w", err)
		}
		total = total.Add(inv.CurrentValue)
	}

	return total, nil
}

// ProgressPercent returns current/target as a percentage, clamped to 100.
// A zero or negative target yields 0, never a division error.
func ProgressPercent(current, target decimal.Decimal) decimal.Decimal {
	if target.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	percent := current.Div(target).Mul(hundred)
	if percent.GreaterThan(hundred) {
		return hundred
	}
	return percent
}
