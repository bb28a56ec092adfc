package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// YieldMode discriminates how an investment's yield configuration is applied
type YieldMode string

const (
	// YieldModeFixed applies a contractual annual rate, ignoring any index
	YieldModeFixed YieldMode = "fixed"
	// YieldModeIndex applies a percentage of a published index rate (e.g. 99% of CDI)
	YieldModeIndex YieldMode = "index"
	// YieldModeIndexPlusSpread applies a published index rate plus a fixed
	// spread in percentage points (e.g. IPCA + 6%)
	YieldModeIndexPlusSpread YieldMode = "index_plus_spread"
)

// YieldConfig is the tagged-union yield configuration of an investment.
// Which fields are meaningful depends on Mode:
//   - YieldModeFixed: FixedRate only
//   - YieldModeIndex: Index and PercentOfIndex (zero means 100)
//   - YieldModeIndexPlusSpread: Index and Spread (PercentOfIndex is ignored)
type YieldConfig struct {
	Mode           YieldMode
	Index          RateType
	FixedRate      decimal.Decimal // annual percent
	PercentOfIndex decimal.Decimal // multiplier over the index rate, in percent
	Spread         decimal.Decimal // additive percentage points over the index rate
}

// FixedYield builds a fixed-rate yield configuration
func FixedYield(annualRate decimal.Decimal) YieldConfig {
	return YieldConfig{
		Mode:      YieldModeFixed,
		FixedRate: annualRate,
	}
}

// IndexYield builds a percent-of-index yield configuration.
// A zero percentOfIndex means 100% of the index.
func IndexYield(index RateType, percentOfIndex decimal.Decimal) YieldConfig {
	return YieldConfig{
		Mode:           YieldModeIndex,
		Index:          index,
		PercentOfIndex: percentOfIndex,
	}
}

// IndexPlusSpreadYield builds an index-plus-spread yield configuration
func IndexPlusSpreadYield(index RateType, spread decimal.Decimal) YieldConfig {
	return YieldConfig{
		Mode:   YieldModeIndexPlusSpread,
		Index:  index,
		Spread: spread,
	}
}

// EffectivePercentOfIndex returns the percent-of-index multiplier, defaulting
// to 100 when unspecified
func (c YieldConfig) EffectivePercentOfIndex() decimal.Decimal {
	if c.PercentOfIndex.IsZero() {
		return decimal.NewFromInt(100)
	}
	return c.PercentOfIndex
}

// Validate ensures the yield configuration adheres to domain rules
func (c YieldConfig) Validate() error {
	switch c.Mode {
	case YieldModeFixed:
		if c.FixedRate.IsNegative() {
			return errors.New("fixed yield rate cannot be negative")
		}
	case YieldModeIndex:
		if !c.Index.IsIndex() {
			return errors.New("index yield must reference cdi, selic or ipca")
		}
		if c.PercentOfIndex.IsNegative() {
			return errors.New("percent of index cannot be negative")
		}
	case YieldModeIndexPlusSpread:
		if !c.Index.IsIndex() {
			return errors.New("index plus spread yield must reference cdi, selic or ipca")
		}
	default:
		return errors.New("yield mode must be fixed, index or index_plus_spread")
	}
	return nil
}
