package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a savings goal in the domain layer
//
// When a goal links vaults or investments, CurrentAmount is derived from the
// linked entities' current values and must be recomputed whenever they
// change; the stored number is never authoritative in that case.
type Goal struct {
	ID                  uuid.UUID
	Title               string
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal
	Deadline            *time.Time
	LinkedVaultIDs      []uuid.UUID
	LinkedInvestmentIDs []uuid.UUID
}

// HasLinks reports whether the goal derives its current amount from linked entities
func (g *Goal) HasLinks() bool {
	return len(g.LinkedVaultIDs) > 0 || len(g.LinkedInvestmentIDs) > 0
}

// Validate ensures the goal adheres to domain rules
func (g *Goal) Validate() error {
	if g.Title == "" {
		return errors.New("goal title cannot be empty")
	}
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return errors.New("goal target amount must be positive")
	}
	return nil
}

// Vault represents a named cash reserve that can feed a goal's progress
type Vault struct {
	ID      uuid.UUID
	Name    string
	Balance decimal.Decimal
}

// Validate ensures the vault adheres to domain rules
func (v *Vault) Validate() error {
	if v.Name == "" {
		return errors.New("vault name cannot be empty")
	}
	if v.Balance.IsNegative() {
		return errors.New("vault balance cannot be negative")
	}
	return nil
}
