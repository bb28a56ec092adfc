package goal

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// MockGoalRepository is a mock implementation of GoalRepository for testing
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) List(ctx context.Context) ([]*domain.Goal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

// MockVaultRepository is a mock implementation of VaultRepository for testing
type MockVaultRepository struct {
	mock.Mock
}

func (m *MockVaultRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vault, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vault), args.Error(1)
}

// MockInvestmentRepository is a mock implementation of InvestmentRepository for testing
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) Create(ctx context.Context, inv *domain.Investment) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvestmentRepository) Update(ctx context.Context, inv *domain.Investment) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvestmentRepository) List(ctx context.Context) ([]*domain.Investment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Investment), args.Error(1)
}

func TestProgressPercent_Clamp(t *testing.T) {
	// Over-funded goals clamp at 100, never exceed it
	percent := ProgressPercent(decimal.NewFromInt(150), decimal.NewFromInt(100))
	assert.True(t, percent.Equal(decimal.NewFromInt(100)))

	// Partial progress
	percent = ProgressPercent(decimal.NewFromInt(25), decimal.NewFromInt(100))
	assert.True(t, percent.Equal(decimal.NewFromInt(25)))

	// Zero target: 0, not a division error
	percent = ProgressPercent(decimal.NewFromInt(150), decimal.Zero)
	assert.True(t, percent.IsZero())
}

func TestGetProgress_UnlinkedGoalUsesStoredAmount(t *testing.T) {
	ctx := context.Background()
	goalRepo := new(MockGoalRepository)
	vaultRepo := new(MockVaultRepository)
	invRepo := new(MockInvestmentRepository)
	svc := NewService(goalRepo, vaultRepo, invRepo)

	g := &domain.Goal{
		ID:            uuid.New(),
		Title:         "Reserva de emergência",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(4000),
	}
	goalRepo.On("GetByID", ctx, g.ID).Return(g, nil)

	progress, err := svc.GetProgress(ctx, g.ID)

	assert.NoError(t, err)
	assert.True(t, progress.CurrentAmount.Equal(decimal.NewFromInt(4000)))
	assert.True(t, progress.Percent.Equal(decimal.NewFromInt(40)))

	vaultRepo.AssertNotCalled(t, "GetByID")
	invRepo.AssertNotCalled(t, "GetByID")
}

func TestGetProgress_LinkedGoalRecomputesCurrentAmount(t *testing.T) {
	ctx := context.Background()
	goalRepo := new(MockGoalRepository)
	vaultRepo := new(MockVaultRepository)
	invRepo := new(MockInvestmentRepository)
	svc := NewService(goalRepo, vaultRepo, invRepo)

	vaultID := uuid.New()
	invID := uuid.New()
	g := &domain.Goal{
		ID:           uuid.New(),
		Title:        "Entrada do apartamento",
		TargetAmount: decimal.NewFromInt(50000),
		// Stored amount is stale and must be ignored for linked goals
		CurrentAmount:       decimal.NewFromInt(1),
		LinkedVaultIDs:      []uuid.UUID{vaultID},
		LinkedInvestmentIDs: []uuid.UUID{invID},
	}

	goalRepo.On("GetByID", ctx, g.ID).Return(g, nil)
	vaultRepo.On("GetByID", ctx, vaultID).Return(&domain.Vault{
		ID:      vaultID,
		Name:    "Cofre apartamento",
		Balance: decimal.NewFromInt(8000),
	}, nil)
	invRepo.On("GetByID", ctx, invID).Return(&domain.Investment{
		ID:           invID,
		Name:         "Tesouro IPCA",
		CurrentValue: decimal.NewFromInt(12000),
	}, nil)

	progress, err := svc.GetProgress(ctx, g.ID)

	assert.NoError(t, err)
	assert.True(t, progress.CurrentAmount.Equal(decimal.NewFromInt(20000)))
	assert.True(t, progress.Percent.Equal(decimal.NewFromInt(40)))

	goalRepo.AssertExpectations(t)
	vaultRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
}

func TestGetProgress_LinkedEntityFetchError(t *testing.T) {
	ctx := context.Background()
	goalRepo := new(MockGoalRepository)
	vaultRepo := new(MockVaultRepository)
	svc := NewService(goalRepo, vaultRepo, new(MockInvestmentRepository))

	vaultID := uuid.New()
	g := &domain.Goal{
		ID:             uuid.New(),
		Title:          "Viagem",
		TargetAmount:   decimal.NewFromInt(5000),
		LinkedVaultIDs: []uuid.UUID{vaultID},
	}

	goalRepo.On("GetByID", ctx, g.ID).Return(g, nil)
	vaultRepo.On("GetByID", ctx, vaultID).Return(nil, errors.New("vault not found"))

	_, err := svc.GetProgress(ctx, g.ID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load linked vault")
}
