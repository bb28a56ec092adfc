package yield

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/lucasftorres/patrimonio-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Apply converts a raw index rate into the effective annual rate of a yield
// configuration:
//   - fixed: the contractual rate, base ignored
//   - index: base multiplied by percent-of-index (default 100%)
//   - index plus spread: base plus the spread, percent-of-index ignored
func Apply(cfg domain.YieldConfig, baseRate decimal.Decimal) decimal.Decimal {
	switch cfg.Mode {
	case domain.YieldModeFixed:
		return cfg.FixedRate
	case domain.YieldModeIndex:
		return baseRate.Mul(cfg.EffectivePercentOfIndex()).Div(hundred)
	case domain.YieldModeIndexPlusSpread:
		return baseRate.Add(cfg.Spread)
	default:
		return decimal.Zero
	}
}

// Resolve returns the effective annual rate of a yield configuration as of a
// date, looking the index rate up in the series. The boolean is false when
// an index lookup found no covering observation; the base rate is then taken
// as zero rather than failing, so indexed investments degrade to a flat
// value for the uncovered period.
func Resolve(cfg domain.YieldConfig, asOf time.Time, series *domain.RateSeries) (decimal.Decimal, bool) {
	if cfg.Mode == domain.YieldModeFixed {
		return cfg.FixedRate, true
	}

	baseRate, found := series.RateAsOf(asOf)
	if !found {
		baseRate = decimal.Zero
	}

	return Apply(cfg, baseRate), found
}
