package investment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/valuation"
)

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

// MockSnapshotRepository is a mock implementation of SnapshotRepository for testing
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Upsert(ctx context.Context, snap *domain.MonthlySnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockSnapshotRepository) GetByMonth(ctx context.Context, investmentID uuid.UUID, month time.Time) (*domain.MonthlySnapshot, error) {
	args := m.Called(ctx, investmentID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.MonthlySnapshot, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MonthlySnapshot), args.Error(1)
}

// MockBankAccountRepository is a mock implementation of BankAccountRepository for testing
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) List(ctx context.Context) ([]*domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockValuator is a mock implementation of Valuator for testing
type MockValuator struct {
	mock.Mock
}

func (m *MockValuator) Valuate(ctx context.Context, inv *domain.Investment) (valuation.Result, error) {
	args := m.Called(ctx, inv)
	return args.Get(0).(valuation.Result), args.Error(1)
}

var testMonth = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func newTestService(invRepo *MockInvestmentRepository, snapRepo *MockSnapshotRepository, accountRepo *MockBankAccountRepository, valuator *MockValuator) *Service {
	svc := NewService(invRepo, snapRepo, accountRepo, valuator)
	svc.nowFn = func() time.Time { return testMonth }
	return svc
}

func storedInvestment(principal, current int64) *domain.Investment {
	return &domain.Investment{
		ID:           uuid.New(),
		Name:         "CDB Banco X",
		Category:     "cdb",
		Principal:    decimal.NewFromInt(principal),
		CurrentValue: decimal.NewFromInt(current),
		PurchaseDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Yield:        domain.FixedYield(decimal.NewFromInt(12)),
	}
}

func TestCreate_SeedsSnapshotAndDebitsAccount(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	snapRepo := new(MockSnapshotRepository)
	accountRepo := new(MockBankAccountRepository)
	svc := newTestService(invRepo, snapRepo, accountRepo, new(MockValuator))

	accountID := uuid.New()
	purchase := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	invRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.Investment) bool {
		return inv.Principal.Equal(decimal.NewFromInt(1000)) &&
			inv.CurrentValue.Equal(decimal.NewFromInt(1000))
	})).Return(nil)

	snapRepo.On("Upsert", ctx, mock.MatchedBy(func(snap *domain.MonthlySnapshot) bool {
		return snap.Month.Equal(domain.MonthStart(purchase)) &&
			snap.AppliedValue.Equal(decimal.NewFromInt(1000)) &&
			snap.TotalValue.Equal(decimal.NewFromInt(1000)) &&
			snap.YieldValue.IsZero()
	})).Return(nil)

	accountRepo.On("AdjustBalance", ctx, accountID, decimal.NewFromInt(-1000)).Return(nil)

	inv, err := svc.Create(ctx, CreateInput{
		Name:         "CDB Banco X",
		Category:     "cdb",
		Principal:    decimal.NewFromInt(1000),
		PurchaseDate: purchase,
		Yield:        domain.FixedYield(decimal.NewFromInt(12)),
		AccountID:    &accountID,
	})

	assert.NoError(t, err)
	assert.True(t, inv.CurrentValue.Equal(inv.Principal))

	invRepo.AssertExpectations(t)
	snapRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
}

func TestCreate_RejectsNonPositivePrincipal(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	svc := newTestService(invRepo, new(MockSnapshotRepository), new(MockBankAccountRepository), new(MockValuator))

	_, err := svc.Create(ctx, CreateInput{
		Name:      "CDB",
		Principal: decimal.Zero,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
	invRepo.AssertNotCalled(t, "Create")
}

func TestDeposit_GrowsPrincipalAndCurrentValue(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	snapRepo := new(MockSnapshotRepository)
	accountRepo := new(MockBankAccountRepository)
	svc := newTestService(invRepo, snapRepo, accountRepo, new(MockValuator))

	inv := storedInvestment(1000, 1100)
	month := domain.MonthStart(testMonth)

	invRepo.On("GetByID", ctx, inv.ID).Return(inv, nil)
	invRepo.On("Update", ctx, mock.MatchedBy(func(updated *domain.Investment) bool {
		return updated.Principal.Equal(decimal.NewFromInt(1500)) &&
			updated.CurrentValue.Equal(decimal.NewFromInt(1600))
	})).Return(nil)

	// No snapshot for the month yet: a fresh one records the deposit flow
	snapRepo.On("GetByMonth", ctx, inv.ID, month).
		Return(nil, fmt.Errorf("snapshot not found: %w", domain.ErrNotFound))
	snapRepo.On("Upsert", ctx, mock.MatchedBy(func(snap *domain.MonthlySnapshot) bool {
		return snap.AppliedValue.Equal(decimal.NewFromInt(500)) &&
			snap.TotalValue.Equal(decimal.NewFromInt(1600))
	})).Return(nil)

	_, err := svc.Deposit(ctx, inv.ID, decimal.NewFromInt(500))

	assert.NoError(t, err)
	invRepo.AssertExpectations(t)
	snapRepo.AssertExpectations(t)
	accountRepo.AssertNotCalled(t, "AdjustBalance") // no linked account
}

func TestDeposit_FoldsIntoExistingMonthSnapshot(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	snapRepo := new(MockSnapshotRepository)
	svc := newTestService(invRepo, snapRepo, new(MockBankAccountRepository), new(MockValuator))

	inv := storedInvestment(1000, 1000)
	month := domain.MonthStart(testMonth)
	existing := domain.NewMonthlySnapshot(inv.ID, month, decimal.NewFromInt(200), decimal.NewFromInt(1000))

	invRepo.On("GetByID", ctx, inv.ID).Return(inv, nil)
	invRepo.On("Update", ctx, mock.Anything).Return(nil)

	snapRepo.On("GetByMonth", ctx, inv.ID, month).Return(existing, nil)
	snapRepo.On("Upsert", ctx, mock.MatchedBy(func(snap *domain.MonthlySnapshot) bool {
		// 200 already recorded this month + 300 deposited now
		return snap.AppliedValue.Equal(decimal.NewFromInt(500)) &&
			snap.TotalValue.Equal(decimal.NewFromInt(1300)) &&
			snap.ID == existing.ID
	})).Return(nil)

	_, err := svc.Deposit(ctx, inv.ID, decimal.NewFromInt(300))

	assert.NoError(t, err)
	snapRepo.AssertExpectations(t)
}

func TestDeposit_SnapshotLookupFailureAbortsWithoutUpsert(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	snapRepo := new(MockSnapshotRepository)
	svc := newTestService(invRepo, snapRepo, new(MockBankAccountRepository), new(MockValuator))

	inv := storedInvestment(1000, 1000)
	month := domain.MonthStart(testMonth)

	invRepo.On("GetByID", ctx, inv.ID).Return(inv, nil)
	invRepo.On("Update", ctx, mock.Anything).Return(nil)

	// A transient failure is not "no snapshot yet": blindly replacing the
	// row would erase any flow already recorded this month
	snapRepo.On("GetByMonth", ctx, inv.ID, month).
		Return(nil, errors.New("driver: bad connection"))

	_, err := svc.Deposit(ctx, inv.ID, decimal.NewFromInt(300))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get month snapshot")
	snapRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestWithdraw_ReducesPrincipalProportionally(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	snapRepo := new(MockSnapshotRepository)
	accountRepo := new(MockBankAccountRepository)
	svc := newTestService(invRepo, snapRepo, accountRepo, new(MockValuator))

	// 1000 applied, grown to 1200; withdrawing 300 leaves 900 (75% of the
	// value), so the principal drops to 750 and the yield ratio is preserved
	inv := storedInvestment(1000, 1200)
	accountID := uuid.New()
	inv.AccountID = &accountID

	invRepo.On("GetByID", ctx, inv.ID).Return(inv, nil)
	invRepo.On("Update", ctx, mock.MatchedBy(func(updated *domain.Investment) bool {
		return updated.CurrentValue.Equal(decimal.NewFromInt(900)) &&
			updated.Principal.Equal(decimal.NewFromInt(750))
	})).Return(nil)

	month := domain.MonthStart(testMonth)
	snapRepo.On("GetByMonth", ctx, inv.ID, month).
		Return(nil, fmt.Errorf("snapshot not found: %w", domain.ErrNotFound))
	snapRepo.On("Upsert", ctx, mock.MatchedBy(func(snap *domain.MonthlySnapshot) bool {
		return snap.AppliedValue.Equal(decimal.NewFromInt(-250)) &&
			snap.TotalValue.Equal(decimal.NewFromInt(900))
	})).Return(nil)

	// Withdrawn cash goes back to the linked account
	accountRepo.On("AdjustBalance", ctx, accountID, decimal.NewFromInt(300)).Return(nil)

	updated, err := svc.Withdraw(ctx, inv.ID, decimal.NewFromInt(300))

	assert.NoError(t, err)
	assert.True(t, updated.Principal.Equal(decimal.NewFromInt(750)))

	invRepo.AssertExpectations(t)
	snapRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
}

func TestWithdraw_RejectsAmountAboveCurrentValue(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	snapRepo := new(MockSnapshotRepository)
	svc := newTestService(invRepo, snapRepo, new(MockBankAccountRepository), new(MockValuator))

	inv := storedInvestment(1000, 1200)
	invRepo.On("GetByID", ctx, inv.ID).Return(inv, nil)

	_, err := svc.Withdraw(ctx, inv.ID, decimal.NewFromInt(1500))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds current value")
	invRepo.AssertNotCalled(t, "Update")
	snapRepo.AssertNotCalled(t, "Upsert")
}

func TestRefresh_PersistsRecomputedValue(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	valuator := new(MockValuator)
	svc := newTestService(invRepo, new(MockSnapshotRepository), new(MockBankAccountRepository), valuator)

	inv := storedInvestment(1000, 1000)

	invRepo.On("GetByID", ctx, inv.ID).Return(inv, nil)
	valuator.On("Valuate", ctx, inv).Return(valuation.Result{
		Value:  decimal.NewFromFloat(1127.47),
		Method: valuation.MethodFixedRate,
	}, nil)
	invRepo.On("Update", ctx, mock.MatchedBy(func(updated *domain.Investment) bool {
		return updated.CurrentValue.Equal(decimal.NewFromFloat(1127.47))
	})).Return(nil)

	updated, result, err := svc.Refresh(ctx, inv.ID)

	assert.NoError(t, err)
	assert.Equal(t, valuation.MethodFixedRate, result.Method)
	assert.True(t, updated.CurrentValue.Equal(decimal.NewFromFloat(1127.47)))
	invRepo.AssertExpectations(t)
}

func TestRefresh_PassthroughLeavesValueUntouched(t *testing.T) {
	ctx := context.Background()
	invRepo := new(MockInvestmentRepository)
	valuator := new(MockValuator)
	svc := newTestService(invRepo, new(MockSnapshotRepository), new(MockBankAccountRepository), valuator)

	inv := storedInvestment(1000, 1350)
	inv.Category = "stocks"

	invRepo.On("GetByID", ctx, inv.ID).Return(inv, nil)
	valuator.On("Valuate", ctx, inv).Return(valuation.Result{
		Value:  inv.Principal,
		Method: valuation.MethodPassthrough,
	}, nil)

	updated, result, err := svc.Refresh(ctx, inv.ID)

	assert.NoError(t, err)
	assert.Equal(t, valuation.MethodPassthrough, result.Method)
	// Externally recorded market value is preserved
	assert.True(t, updated.CurrentValue.Equal(decimal.NewFromInt(1350)))
	invRepo.AssertNotCalled(t, "Update")
}
