package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthStart truncates a date to the first day of its calendar month at
// midnight UTC. All snapshot months are keyed this way.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlySnapshot is a stored point-in-time record of an investment's
// applied/total/yield value for one calendar month.
//
// AppliedValue is the contribution flow recorded within the month (the full
// principal for the creation month, deposit/withdrawal deltas afterwards),
// not a cumulative balance. Snapshots are written on creation, deposit and
// withdrawal only; months with no activity have no row and callers carry the
// last known snapshot forward.
type MonthlySnapshot struct {
	ID           uuid.UUID
	InvestmentID uuid.UUID
	Month        time.Time // first day of the month, midnight UTC
	AppliedValue decimal.Decimal
	TotalValue   decimal.Decimal
	YieldValue   decimal.Decimal // always TotalValue - AppliedValue
}

// NewMonthlySnapshot builds a snapshot for the given month, deriving the
// yield value from the applied/total pair
func NewMonthlySnapshot(investmentID uuid.UUID, month time.Time, applied, total decimal.Decimal) *MonthlySnapshot {
	return &MonthlySnapshot{
		ID:           uuid.New(),
		InvestmentID: investmentID,
		Month:        MonthStart(month),
		AppliedValue: applied,
		TotalValue:   total,
		YieldValue:   total.Sub(applied),
	}
}

// Validate ensures the snapshot adheres to domain rules
func (s *MonthlySnapshot) Validate() error {
	if s.InvestmentID == uuid.Nil {
		return errors.New("snapshot must reference an investment")
	}
	if s.Month.IsZero() {
		return errors.New("snapshot must have a month")
	}
	if !s.Month.Equal(MonthStart(s.Month)) {
		return errors.New("snapshot month must be the first day of a calendar month")
	}
	if !s.YieldValue.Equal(s.TotalValue.Sub(s.AppliedValue)) {
		return errors.New("snapshot yield value must equal total value minus applied value")
	}
	return nil
}
