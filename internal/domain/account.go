package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccount represents a bank account in the domain layer.
// Balances are always classified as current assets on the balance sheet.
type BankAccount struct {
	ID      uuid.UUID
	Name    string
	Balance decimal.Decimal
}

// Validate ensures the bank account adheres to domain rules
func (a *BankAccount) Validate() error {
	if a.Name == "" {
		return errors.New("bank account name cannot be empty")
	}
	return nil
}

// CreditCard represents a credit card in the domain layer
type CreditCard struct {
	ID    uuid.UUID
	Name  string
	Limit decimal.Decimal
}

// CreditCardBill represents one monthly bill of a credit card.
// Unpaid bills feed the balance sheet as current liabilities.
type CreditCardBill struct {
	ID     uuid.UUID
	CardID uuid.UUID
	Month  time.Time // first day of the month, midnight UTC
	Amount decimal.Decimal
	Paid   bool
}

// Validate ensures the bill adheres to domain rules
func (b *CreditCardBill) Validate() error {
	if b.CardID == uuid.Nil {
		return errors.New("credit card bill must reference a card")
	}
	if b.Amount.IsNegative() {
		return errors.New("credit card bill amount cannot be negative")
	}
	return nil
}
