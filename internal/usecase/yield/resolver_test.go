package yield

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

func cdiSeriesAt(rate float64, date time.Time) *domain.RateSeries {
	series, err := domain.NewRateSeries(domain.RateTypeCDI, []domain.RateObservation{
		{
			RateType:      domain.RateTypeCDI,
			ReferenceDate: date,
			AnnualRate:    decimal.NewFromFloat(rate),
		},
	})
	if err != nil {
		panic(err)
	}
	return series
}

func TestResolve_FixedRateIgnoresSeries(t *testing.T) {
	cfg := domain.FixedYield(decimal.NewFromFloat(11.5))

	// Series is irrelevant for fixed yields, even when nil
	rate, found := Resolve(cfg, time.Now(), nil)
	assert.True(t, found)
	assert.True(t, rate.Equal(decimal.NewFromFloat(11.5)))
}

func TestResolve_PercentOfIndex(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	series := cdiSeriesAt(10, asOf.AddDate(0, -1, 0))

	// 90% of a 10% index resolves to 9%
	cfg := domain.IndexYield(domain.RateTypeCDI, decimal.NewFromInt(90))
	rate, found := Resolve(cfg, asOf, series)
	assert.True(t, found)
	assert.True(t, rate.Equal(decimal.NewFromInt(9)), "got %s", rate)

	// Omitted percent defaults to 100%: the unmodified index rate
	cfg = domain.IndexYield(domain.RateTypeCDI, decimal.Zero)
	rate, found = Resolve(cfg, asOf, series)
	assert.True(t, found)
	assert.True(t, rate.Equal(decimal.NewFromInt(10)), "got %s", rate)
}

func TestResolve_IndexPlusSpread(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	series := cdiSeriesAt(10, asOf.AddDate(0, -1, 0))

	cfg := domain.IndexPlusSpreadYield(domain.RateTypeCDI, decimal.NewFromInt(2))
	// Percent-of-index must not affect the plus-spread variant
	cfg.PercentOfIndex = decimal.NewFromInt(50)

	rate, found := Resolve(cfg, asOf, series)
	assert.True(t, found)
	assert.True(t, rate.Equal(decimal.NewFromInt(12)), "got %s", rate)
}

func TestResolve_MissingObservation(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// No series at all: base rate degrades to zero
	cfg := domain.IndexYield(domain.RateTypeSELIC, decimal.Zero)
	rate, found := Resolve(cfg, asOf, nil)
	assert.False(t, found)
	assert.True(t, rate.IsZero())

	// Series starts after the lookup date: same degradation
	series := cdiSeriesAt(10, asOf.AddDate(0, 1, 0))
	rate, found = Resolve(domain.IndexYield(domain.RateTypeCDI, decimal.Zero), asOf, series)
	assert.False(t, found)
	assert.True(t, rate.IsZero())

	// Plus-spread keeps the spread over the degraded zero base
	rate, found = Resolve(domain.IndexPlusSpreadYield(domain.RateTypeCDI, decimal.NewFromInt(3)), asOf, series)
	assert.False(t, found)
	assert.True(t, rate.Equal(decimal.NewFromInt(3)))
}
