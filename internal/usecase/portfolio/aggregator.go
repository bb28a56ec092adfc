package portfolio

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// MonthTotal is the aggregated portfolio position for one calendar month
type MonthTotal struct {
	Month        time.Time
	TotalApplied decimal.Decimal // contribution flow recorded in this month only
	TotalValue   decimal.Decimal
	TotalYield   decimal.Decimal
}

// Summary is the month-by-month series plus the headline figures for a
// filtered period
type Summary struct {
	Months           []MonthTotal
	TotalApplied     decimal.Decimal // cumulative contribution flow across the window
	FinalValue       decimal.Decimal // last month's total value
	Return           decimal.Decimal // FinalValue - TotalApplied
	ReturnPercentage decimal.Decimal // zero when nothing was applied
}

// carried is the last known snapshot state of one investment during the walk
type carried struct {
	total decimal.Decimal
	yield decimal.Decimal
	known bool
}

// Aggregate builds the month-by-month portfolio series for [periodStart,
// periodEnd] (both truncated to their months).
//
// Per investment and month: a snapshot for the exact month contributes its
// applied/total/yield directly and becomes the investment's last known state;
// otherwise the last known total and yield are carried forward with no new
// applied contribution. An investment with no snapshot yet carries its
// principal. Investments purchased after the month under evaluation are
// excluded from that month entirely.
//
// Snapshots from before the window seed the carry state, so callers should
// fetch them without a lower bound.
func Aggregate(investments []*domain.Investment, snapshots []*domain.MonthlySnapshot, periodStart, periodEnd time.Time) Summary {
	start := domain.MonthStart(periodStart)
	end := domain.MonthStart(periodEnd)

	// Index snapshots by investment and month; remember pre-window state
	byMonth := make(map[uuid.UUID]map[time.Time]*domain.MonthlySnapshot)
	carry := make(map[uuid.UUID]carried)
	for _, snap := range snapshots {
		if snap.Month.Before(start) {
			// Snapshots are ordered by month, so the last one seen wins
			carry[snap.InvestmentID] = carried{total: snap.TotalValue, yield: snap.YieldValue, known: true}
			continue
		}
		months, ok := byMonth[snap.InvestmentID]
		if !ok {
			months = make(map[time.Time]*domain.MonthlySnapshot)
			byMonth[snap.InvestmentID] = months
		}
		months[snap.Month] = snap
	}

	summary := Summary{
		TotalApplied:     decimal.Zero,
		FinalValue:       decimal.Zero,
		Return:           decimal.Zero,
		ReturnPercentage: decimal.Zero,
	}

	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		total := MonthTotal{
			Month:        month,
			TotalApplied: decimal.Zero,
			TotalValue:   decimal.Zero,
			TotalYield:   decimal.Zero,
		}

		for _, inv := range investments {
			if domain.MonthStart(inv.PurchaseDate).After(month) {
				continue // not yet purchased in this month
			}

			if snap, ok := byMonth[inv.ID][month]; ok {
				total.TotalApplied = total.TotalApplied.Add(snap.AppliedValue)
				total.TotalValue = total.TotalValue.Add(snap.TotalValue)
				total.TotalYield = total.TotalYield.Add(snap.YieldValue)
				carry[inv.ID] = carried{total: snap.TotalValue, yield: snap.YieldValue, known: true}
				continue
			}

			if state, ok := carry[inv.ID]; ok && state.known {
				total.TotalValue = total.TotalValue.Add(state.total)
				total.TotalYield = total.TotalYield.Add(state.yield)
				continue
			}

			// Purchased but never snapshotted: the principal is the initial
			// carried value
			total.TotalValue = total.TotalValue.Add(inv.Principal)
		}

		summary.Months = append(summary.Months, total)
		summary.TotalApplied = summary.TotalApplied.Add(total.TotalApplied)
	}

	if len(summary.Months) > 0 {
		summary.FinalValue = summary.Months[len(summary.Months)-1].TotalValue
	}
	summary.Return = summary.FinalValue.Sub(summary.TotalApplied)
	if !summary.TotalApplied.IsZero() {
		summary.ReturnPercentage = summary.Return.Div(summary.TotalApplied).Mul(hundred)
	}

	return summary
}

// FinancialIndependenceRatio returns how much of the monthly independence
// goal the month's yield covered, in percent. An unset or zero goal yields
// zero, never a division error.
func FinancialIndependenceRatio(monthlyYield, goal decimal.Decimal) decimal.Decimal {
	if goal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return monthlyYield.Div(goal).Mul(hundred)
}
