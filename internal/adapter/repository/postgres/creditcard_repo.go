package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// creditCardRepository implements domain.CreditCardRepository
type creditCardRepository struct {
	db *DB
}

// NewCreditCardRepository creates a new credit card repository
func NewCreditCardRepository(db *DB) domain.CreditCardRepository {
	return &creditCardRepository{db: db}
}

// ListOpenBills retrieves all unpaid bills across all cards
func (r *creditCardRepository) ListOpenBills(ctx context.Context) ([]*domain.CreditCardBill, error) {
	query := `
		SELECT id, card_id, month, amount, paid
		FROM credit_card_bills
		WHERE paid = FALSE
		ORDER BY month ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open credit card bills: %w", err)
	}
	defer rows.Close()

	var bills []*domain.CreditCardBill
	for rows.Next() {
		var bill domain.CreditCardBill
		var amountStr string

		if err := rows.Scan(&bill.ID, &bill.CardID, &bill.Month, &amountStr, &bill.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan credit card bill: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		bill.Amount = amount
		bill.Month = domain.MonthStart(bill.Month.UTC())

		bills = append(bills, &bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit card bills: %w", err)
	}

	return bills, nil
}
