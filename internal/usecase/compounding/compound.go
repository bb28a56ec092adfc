package compounding

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// daysPerYear is the simple day-count divisor used to derive the daily rate
// from an annual nominal rate. This is a plain division, not an
// effective-annual-to-daily conversion.
const daysPerYear = 365

// decimalPlaces applied to compounded values. Money is carried as decimals;
// the growth factor itself is computed in float64 (integer-exponent powers
// over thousands of days would otherwise grow without bound in exact
// decimal arithmetic).
const decimalPlaces = 8

// Compound returns the value of a principal after compounding daily for the
// given number of days at an annual nominal rate (in percent).
//
// Non-positive days or rates short-circuit to the principal unchanged: there
// is no negative compounding and no backward time.
func Compound(principal decimal.Decimal, annualRatePercent decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 || annualRatePercent.LessThanOrEqual(decimal.Zero) {
		return principal
	}

	rate, _ := annualRatePercent.Float64()
	dailyRate := rate / 100 / daysPerYear
	factor := math.Pow(1+dailyRate, float64(days))

	return principal.Mul(decimal.NewFromFloat(factor)).Round(decimalPlaces)
}

// Step is one sub-period of a chained compounding run: the annual rate in
// force until the boundary date.
type Step struct {
	Until      time.Time
	AnnualRate decimal.Decimal
}

// Chain composes compounding across a sequence of rate regimes, starting at
// `start`. Each step compounds the running value from the previous boundary
// to the step's boundary at the step's rate; the output of one step is the
// principal of the next. Steps at or before the running boundary contribute
// zero days and leave the value unchanged.
func Chain(principal decimal.Decimal, start time.Time, steps []Step) decimal.Decimal {
	value := principal
	boundary := start

	for _, step := range steps {
		days := DaysBetween(boundary, step.Until)
		value = Compound(value, step.AnnualRate, days)
		if step.Until.After(boundary) {
			boundary = step.Until
		}
	}

	return value
}

// DaysBetween returns the number of whole days from one instant to another.
// Negative when `to` precedes `from`.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
