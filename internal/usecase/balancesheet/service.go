package balancesheet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// Result represents the bucketed balance sheet
type Result struct {
	CurrentAssets         decimal.Decimal
	NonCurrentAssets      decimal.Decimal
	CurrentLiabilities    decimal.Decimal
	NonCurrentLiabilities decimal.Decimal
	TotalAssets           decimal.Decimal
	TotalLiabilities      decimal.Decimal
	NetWorth              decimal.Decimal // sign preserved, can be negative
}

// Service assembles the balance sheet and net worth
type Service struct {
	AccountRepo    domain.BankAccountRepository
	InvestmentRepo domain.InvestmentRepository
	PatrimonyRepo  domain.PatrimonyRepository
	CreditCardRepo domain.CreditCardRepository
}

// NewService creates a new balance sheet Service instance
func NewService(
	accountRepo domain.BankAccountRepository,
	investmentRepo domain.InvestmentRepository,
	patrimonyRepo domain.PatrimonyRepository,
	creditCardRepo domain.CreditCardRepository,
) *Service {
	return &Service{
		AccountRepo:    accountRepo,
		InvestmentRepo: investmentRepo,
		PatrimonyRepo:  patrimonyRepo,
		CreditCardRepo: creditCardRepo,
	}
}

// GetBalanceSheet buckets assets and liabilities into current/non-current
// totals by the fixed category taxonomy.
// Logic:
//   - bank balances are always current assets
//   - investment current values are always non-current assets
//   - patrimony assets/liabilities classify by their category
//   - open credit card bills are current liabilities
//   - net worth = total assets - total liabilities
func (s *Service) GetBalanceSheet(ctx context.Context) (*Result, error) {
	result := &Result{
		CurrentAssets:         decimal.Zero,
		NonCurrentAssets:      decimal.Zero,
		CurrentLiabilities:    decimal.Zero,
		NonCurrentLiabilities: decimal.Zero,
	}

	accounts, err := s.AccountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	for _, account := range accounts {
		result.CurrentAssets = result.CurrentAssets.Add(account.Balance)
	}

	investments, err := s.InvestmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	for _, inv := range investments {
		result.NonCurrentAssets = result.NonCurrentAssets.Add(inv.CurrentValue)
	}

	assets, err := s.PatrimonyRepo.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	for _, asset := range assets {
		if domain.ClassifyAssetCategory(asset.Category) == domain.BalanceClassCurrent {
			result.CurrentAssets = result.CurrentAssets.Add(asset.CurrentValue)
		} else {
			result.NonCurrentAssets = result.NonCurrentAssets.Add(asset.CurrentValue)
		}
	}

	liabilities, err := s.PatrimonyRepo.ListLiabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	for _, liability := range liabilities {
		if domain.ClassifyLiabilityCategory(liability.Category) == domain.BalanceClassCurrent {
			result.CurrentLiabilities = result.CurrentLiabilities.Add(liability.RemainingAmount)
		} else {
			result.NonCurrentLiabilities = result.NonCurrentLiabilities.Add(liability.RemainingAmount)
		}
	}

	bills, err := s.CreditCardRepo.ListOpenBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open credit card bills: %w", err)
	}
	for _, bill := range bills {
		result.CurrentLiabilities = result.CurrentLiabilities.Add(bill.Amount)
	}

	result.TotalAssets = result.CurrentAssets.Add(result.NonCurrentAssets)
	result.TotalLiabilities = result.CurrentLiabilities.Add(result.NonCurrentLiabilities)
	result.NetWorth = result.TotalAssets.Sub(result.TotalLiabilities)

	return result, nil
}
