package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateType identifies a reference yield index
type RateType string

const (
	RateTypeFixed RateType = "fixed"
	RateTypeCDI   RateType = "cdi"
	RateTypeSELIC RateType = "selic"
	RateTypeIPCA  RateType = "ipca"
)

// IsIndex reports whether the rate type is a published reference index
// (as opposed to a fixed contractual rate)
func (t RateType) IsIndex() bool {
	return t == RateTypeCDI || t == RateTypeSELIC || t == RateTypeIPCA
}

// RateObservation represents one published annual rate for an index on a reference date
type RateObservation struct {
	ID            uuid.UUID
	RateType      RateType
	ReferenceDate time.Time       // normalized to midnight UTC
	AnnualRate    decimal.Decimal // annual rate in percent (e.g. 13.65 for 13.65% a.a.)
}

// Validate ensures the observation adheres to domain rules
func (o *RateObservation) Validate() error {
	if !o.RateType.IsIndex() {
		return errors.New("rate observation type must be cdi, selic or ipca")
	}
	if o.ReferenceDate.IsZero() {
		return errors.New("rate observation must have a reference date")
	}
	return nil
}

// RateSeries is an ordered-by-date sequence of observations for one rate type.
// Absence of an observation for a period means the previous observation's rate
// stays in force through that period.
type RateSeries struct {
	RateType     RateType
	Observations []RateObservation
}

// NewRateSeries builds a series from observations already ordered by date.
// Returns an error if dates are not strictly increasing or an observation
// belongs to a different rate type.
func NewRateSeries(rateType RateType, observations []RateObservation) (*RateSeries, error) {
	for i, obs := range observations {
		if obs.RateType != rateType {
			return nil, errors.New("rate series observations must all share the series rate type")
		}
		if i > 0 && !obs.ReferenceDate.After(observations[i-1].ReferenceDate) {
			return nil, errors.New("rate series dates must be strictly increasing")
		}
	}
	return &RateSeries{RateType: rateType, Observations: observations}, nil
}

// IsEmpty reports whether the series has no observations
func (s *RateSeries) IsEmpty() bool {
	return s == nil || len(s.Observations) == 0
}

// RateAsOf returns the annual rate in force at the given date: the rate of the
// last observation at or before it. The second return value is false when no
// observation covers the date.
func (s *RateSeries) RateAsOf(date time.Time) (decimal.Decimal, bool) {
	if s.IsEmpty() {
		return decimal.Zero, false
	}

	found := false
	rate := decimal.Zero
	for _, obs := range s.Observations {
		if obs.ReferenceDate.After(date) {
			break
		}
		rate = obs.AnnualRate
		found = true
	}

	return rate, found
}

// Between returns the ordered observations covering [from, to], including
// the observation in force at `from` (the last one at or before it)
func (s *RateSeries) Between(from, to time.Time) *RateSeries {
	if s.IsEmpty() {
		return &RateSeries{RateType: s.rateTypeOrZero()}
	}

	start := 0
	for i, obs := range s.Observations {
		if obs.ReferenceDate.After(from) {
			break
		}
		start = i
	}

	var window []RateObservation
	for _, obs := range s.Observations[start:] {
		if obs.ReferenceDate.After(to) {
			break
		}
		window = append(window, obs)
	}

	return &RateSeries{RateType: s.RateType, Observations: window}
}

func (s *RateSeries) rateTypeOrZero() RateType {
	if s == nil {
		return ""
	}
	return s.RateType
}

// Latest returns the most recent observation in the series
func (s *RateSeries) Latest() (RateObservation, bool) {
	if s.IsEmpty() {
		return RateObservation{}, false
	}
	return s.Observations[len(s.Observations)-1], true
}
