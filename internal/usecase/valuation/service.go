package valuation

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

// Service runs retroactive valuations against stored rate history.
// The arithmetic itself lives in Valuate and never touches I/O; the service
// only fetches the rate series and injects "today".
type Service struct {
	RateRepo domain.RateSeriesRepository

	// nowFn supplies the as-of date; overridable in tests
	nowFn func() time.Time
}

// NewService creates a new valuation Service instance
func NewService(rateRepo domain.RateSeriesRepository) *Service {
	return &Service{
		RateRepo: rateRepo,
		nowFn:    time.Now,
	}
}

// Valuate computes the investment's value as of now.
// Logic:
//  1. Equity-like categories and fixed yields need no rate data
//  2. Indexed yields fetch the historical series covering purchase -> today
//  3. An empty series falls back to the latest known observation (the
//     current-rate approximation); no observation at all degrades to a flat
//     value, reported through Result.MissingRateData
func (s *Service) Valuate(ctx context.Context, inv *domain.Investment) (Result, error) {
	asOf := s.nowFn()

	if !inv.Category.SupportsFormulaicYield() || inv.Yield.Mode == domain.YieldModeFixed {
		return Valuate(inv, asOf, nil, nil), nil
	}

	series, err := s.RateRepo.GetSeries(ctx, inv.Yield.Index, inv.PurchaseDate, asOf)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch %s rate series: %w", inv.Yield.Index, err)
	}

	if !series.IsEmpty() {
		return Valuate(inv, asOf, series, nil), nil
	}

	// No history: approximate with the latest observation. A lookup failure
	// here means no observation exists at all, which the engine tolerates
	// as a zero base rate rather than an error.
	latest, err := s.RateRepo.GetLatest(ctx, inv.Yield.Index)
	if err != nil {
		latest = nil
	}

	return Valuate(inv, asOf, nil, latest), nil
}
