package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the free-form classification tag of an investment
// (e.g. "cdb", "tesouro_direto", "stocks")
type Category string

// Equity-like categories have their value recorded externally and are never
// compounded by the valuation engine.
var equityCategories = map[Category]bool{
	"stocks":      true,
	"funds":       true,
	"real_estate": true,
}

// SupportsFormulaicYield reports whether investments in this category have
// their value derived from a yield configuration. Equity-like categories
// (stocks, funds, real estate) track value externally instead.
func (c Category) SupportsFormulaicYield() bool {
	return !equityCategories[c]
}

// Liquidity represents when an investment can be redeemed
type Liquidity string

const (
	LiquidityDaily      Liquidity = "daily"
	LiquidityAtMaturity Liquidity = "at_maturity"
)

// Investment represents an investment entity in the domain layer
//
// Principal is the cumulative capital contributed: it only changes through
// creation, deposits and withdrawals, never through valuation. CurrentValue
// is the last known mark-to-model value and is what valuation recomputes.
type Investment struct {
	ID           uuid.UUID
	Name         string
	Category     Category
	Principal    decimal.Decimal
	CurrentValue decimal.Decimal
	PurchaseDate time.Time
	Yield        YieldConfig
	Liquidity    Liquidity  // optional, empty when unspecified
	MaturityDate *time.Time // NULL unless liquidity is at_maturity
	AccountID    *uuid.UUID // optional linked bank account for cash movements
}

// Validate ensures the investment adheres to domain rules
func (i *Investment) Validate() error {
	if i.Name == "" {
		return errors.New("investment name cannot be empty")
	}
	if i.Principal.IsNegative() {
		return errors.New("investment principal cannot be negative")
	}
	if i.CurrentValue.IsNegative() {
		return errors.New("investment current value cannot be negative")
	}
	if i.PurchaseDate.IsZero() {
		return errors.New("investment must have a purchase date")
	}
	if i.Liquidity != "" && i.Liquidity != LiquidityDaily && i.Liquidity != LiquidityAtMaturity {
		return errors.New("investment liquidity must be daily or at_maturity")
	}
	if i.Liquidity == LiquidityAtMaturity && i.MaturityDate == nil {
		return errors.New("investment with at_maturity liquidity must have a maturity date")
	}

	// Yield configuration only matters for categories the valuation engine compounds
	if i.Category.SupportsFormulaicYield() {
		if err := i.Yield.Validate(); err != nil {
			return err
		}
	}

	return nil
}
