package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/compounding"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/yield"
)

// Method identifies which strategy produced a valuation result, so callers
// can tell an exact reconstruction from the single-rate approximation.
type Method string

const (
	// MethodPassthrough: equity-like category, value tracked externally
	MethodPassthrough Method = "passthrough"
	// MethodFixedRate: contractual fixed rate compounded over the whole period
	MethodFixedRate Method = "fixed_rate"
	// MethodCurrentRate: no history available; today's rate assumed to have
	// held since purchase (approximation)
	MethodCurrentRate Method = "current_rate"
	// MethodWithHistory: day-by-day regime changes reconstructed from the
	// historical series
	MethodWithHistory Method = "with_history"
)

// Result is the outcome of a retroactive valuation
type Result struct {
	Value  decimal.Decimal
	Method Method
	// MissingRateData is true when an index lookup found no covering
	// observation and a zero base rate was used for part of the period
	MissingRateData bool
}

// Valuate computes an investment's current value from its principal, yield
// configuration and purchase date, as of an explicit date.
//
// The function is pure: same inputs, same result. `history` is the ordered
// rate series between purchase date and asOf (nil or empty means no history);
// `current` is the latest known observation, used only on the fallback path.
//
// Strategy selection:
//   - categories without formulaic yield pass through (value stays the
//     externally recorded principal)
//   - fixed yields compound the whole period in a single step
//   - indexed yields with history walk the rate regimes in order
//   - indexed yields without history approximate with the current rate
func Valuate(inv *domain.Investment, asOf time.Time, history *domain.RateSeries, current *domain.RateObservation) Result {
	if !inv.Category.SupportsFormulaicYield() {
		return Result{Value: inv.Principal, Method: MethodPassthrough}
	}

	if inv.Yield.Mode == domain.YieldModeFixed {
		days := compounding.DaysBetween(inv.PurchaseDate, asOf)
		return Result{
			Value:  compounding.Compound(inv.Principal, inv.Yield.FixedRate, days),
			Method: MethodFixedRate,
		}
	}

	if !history.IsEmpty() {
		return valuateWithHistory(inv, asOf, history)
	}

	return valuateAtCurrentRate(inv, asOf, current)
}

// valuateWithHistory reconstructs the value by compounding each rate regime
// between purchase date and asOf: each observation closes the segment that
// ran at the rate in force before it, and a final segment runs from the last
// boundary to asOf at the last known rate. The segments are resolved through
// the yield configuration and handed to the compounding chain.
func valuateWithHistory(inv *domain.Investment, asOf time.Time, history *domain.RateSeries) Result {
	boundary := inv.PurchaseDate

	// Rate in force at purchase. When the series starts after the purchase
	// date the first segment has no covering observation and compounds at a
	// zero base rate.
	base, found := history.RateAsOf(boundary)
	missing := !found
	rate := yield.Apply(inv.Yield, base)

	var steps []compounding.Step
	for _, obs := range history.Observations {
		if !obs.ReferenceDate.After(boundary) {
			continue // already in force at the boundary
		}
		if obs.ReferenceDate.After(asOf) {
			break
		}
		steps = append(steps, compounding.Step{Until: obs.ReferenceDate, AnnualRate: rate})
		boundary = obs.ReferenceDate
		rate = yield.Apply(inv.Yield, obs.AnnualRate)
	}

	if asOf.After(boundary) {
		steps = append(steps, compounding.Step{Until: asOf, AnnualRate: rate})
	}

	value := compounding.Chain(inv.Principal, inv.PurchaseDate, steps)

	return Result{Value: value, Method: MethodWithHistory, MissingRateData: missing}
}

// valuateAtCurrentRate applies a single compounding step across the whole
// period, assuming the current observation's rate held since purchase. A nil
// observation degrades to a zero base rate (flat value) instead of failing.
func valuateAtCurrentRate(inv *domain.Investment, asOf time.Time, current *domain.RateObservation) Result {
	base := decimal.Zero
	missing := current == nil
	if current != nil {
		base = current.AnnualRate
	}

	rate := yield.Apply(inv.Yield, base)
	days := compounding.DaysBetween(inv.PurchaseDate, asOf)

	return Result{
		Value:           compounding.Compound(inv.Principal, rate, days),
		Method:          MethodCurrentRate,
		MissingRateData: missing,
	}
}
