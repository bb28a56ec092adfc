package http

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/balancesheet"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/goal"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/portfolio"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/valuation"
)

// Wire formats. Amounts travel as decimal strings, dates as 2006-01-02,
// months as 2006-01.
const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// YieldPayload is the JSON shape of a yield configuration
type YieldPayload struct {
	Mode           string `json:"mode"`
	Index          string `json:"index,omitempty"`
	FixedRate      string `json:"fixed_rate,omitempty"`
	PercentOfIndex string `json:"percent_of_index,omitempty"`
	Spread         string `json:"spread,omitempty"`
}

// CreateInvestmentRequest is the JSON request for POST /investments
type CreateInvestmentRequest struct {
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Principal    string       `json:"principal"`
	PurchaseDate string       `json:"purchase_date"`
	Yield        YieldPayload `json:"yield"`
	Liquidity    string       `json:"liquidity,omitempty"`
	MaturityDate string       `json:"maturity_date,omitempty"`
	AccountID    string       `json:"account_id,omitempty"`
}

// AmountRequest is the JSON request for deposits and withdrawals
type AmountRequest struct {
	Amount string `json:"amount"`
}

// RateRequest is the JSON request for POST /rates
type RateRequest struct {
	RateType      string `json:"rate_type"`
	ReferenceDate string `json:"reference_date"`
	AnnualRate    string `json:"annual_rate"`
}

// InvestmentResponse is the JSON shape of an investment
type InvestmentResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Principal    string       `json:"principal"`
	CurrentValue string       `json:"current_value"`
	PurchaseDate string       `json:"purchase_date"`
	Yield        YieldPayload `json:"yield"`
	Liquidity    string       `json:"liquidity,omitempty"`
	MaturityDate string       `json:"maturity_date,omitempty"`
	AccountID    string       `json:"account_id,omitempty"`
}

// ValuationResponse is the JSON shape of a valuation result
type ValuationResponse struct {
	Value           string `json:"value"`
	Method          string `json:"method"`
	MissingRateData bool   `json:"missing_rate_data"`
}

// RefreshResponse is the JSON response for POST /investments/:id/refresh
type RefreshResponse struct {
	Investment InvestmentResponse `json:"investment"`
	Valuation  ValuationResponse  `json:"valuation"`
}

// MonthTotalResponse is one month of the portfolio summary series
type MonthTotalResponse struct {
	Month        string `json:"month"`
	TotalApplied string `json:"total_applied"`
	TotalValue   string `json:"total_value"`
	TotalYield   string `json:"total_yield"`
}

// SummaryResponse is the JSON response for GET /portfolio/summary
type SummaryResponse struct {
	Months           []MonthTotalResponse `json:"months"`
	TotalApplied     string               `json:"total_applied"`
	FinalValue       string               `json:"final_value"`
	Return           string               `json:"return"`
	ReturnPercentage string               `json:"return_percentage"`
}

// ProgressResponse is the JSON response for GET /goals/:id/progress
type ProgressResponse struct {
	GoalID        string `json:"goal_id"`
	Title         string `json:"title"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Percent       string `json:"percent"`
}

// BalanceSheetResponse is the JSON response for GET /dashboard/balance-sheet
type BalanceSheetResponse struct {
	CurrentAssets         string `json:"current_assets"`
	NonCurrentAssets      string `json:"non_current_assets"`
	CurrentLiabilities    string `json:"current_liabilities"`
	NonCurrentLiabilities string `json:"non_current_liabilities"`
	TotalAssets           string `json:"total_assets"`
	TotalLiabilities      string `json:"total_liabilities"`
	NetWorth              string `json:"net_worth"`
}

// RateObservationResponse is the JSON shape of one rate observation
type RateObservationResponse struct {
	RateType      string `json:"rate_type"`
	ReferenceDate string `json:"reference_date"`
	AnnualRate    string `json:"annual_rate"`
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a decimal string", field)
	}
	return d, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in %s format", field, dateLayout)
	}
	return t.UTC(), nil
}

func parseMonth(field, value string) (time.Time, error) {
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a month in %s format", field, monthLayout)
	}
	return t.UTC(), nil
}

func toYieldConfig(p YieldPayload) (domain.YieldConfig, error) {
	cfg := domain.YieldConfig{
		Mode:  domain.YieldMode(p.Mode),
		Index: domain.RateType(p.Index),
	}

	for _, field := range []struct {
		dst  *decimal.Decimal
		src  string
		name string
	}{
		{&cfg.FixedRate, p.FixedRate, "yield.fixed_rate"},
		{&cfg.PercentOfIndex, p.PercentOfIndex, "yield.percent_of_index"},
		{&cfg.Spread, p.Spread, "yield.spread"},
	} {
		if field.src == "" {
			continue
		}
		value, err := parseDecimal(field.name, field.src)
		if err != nil {
			return domain.YieldConfig{}, err
		}
		*field.dst = value
	}

	return cfg, nil
}

func toYieldPayload(cfg domain.YieldConfig) YieldPayload {
	p := YieldPayload{
		Mode:  string(cfg.Mode),
		Index: string(cfg.Index),
	}
	if !cfg.FixedRate.IsZero() {
		p.FixedRate = cfg.FixedRate.String()
	}
	if !cfg.PercentOfIndex.IsZero() {
		p.PercentOfIndex = cfg.PercentOfIndex.String()
	}
	if !cfg.Spread.IsZero() {
		p.Spread = cfg.Spread.String()
	}
	return p
}

func toInvestmentResponse(inv *domain.Investment) InvestmentResponse {
	resp := InvestmentResponse{
		ID:           inv.ID.String(),
		Name:         inv.Name,
		Category:     string(inv.Category),
		Principal:    inv.Principal.String(),
		CurrentValue: inv.CurrentValue.String(),
		PurchaseDate: inv.PurchaseDate.Format(dateLayout),
		Yield:        toYieldPayload(inv.Yield),
		Liquidity:    string(inv.Liquidity),
	}
	if inv.MaturityDate != nil {
		resp.MaturityDate = inv.MaturityDate.Format(dateLayout)
	}
	if inv.AccountID != nil {
		resp.AccountID = inv.AccountID.String()
	}
	return resp
}

func toValuationResponse(result valuation.Result) ValuationResponse {
	return ValuationResponse{
		Value:           result.Value.String(),
		Method:          string(result.Method),
		MissingRateData: result.MissingRateData,
	}
}

func toSummaryResponse(summary portfolio.Summary) SummaryResponse {
	months := make([]MonthTotalResponse, 0, len(summary.Months))
	for _, m := range summary.Months {
		months = append(months, MonthTotalResponse{
			Month:        m.Month.Format(monthLayout),
			TotalApplied: m.TotalApplied.String(),
			TotalValue:   m.TotalValue.String(),
			TotalYield:   m.TotalYield.String(),
		})
	}

	return SummaryResponse{
		Months:           months,
		TotalApplied:     summary.TotalApplied.String(),
		FinalValue:       summary.FinalValue.String(),
		Return:           summary.Return.String(),
		ReturnPercentage: summary.ReturnPercentage.String(),
	}
}

func toProgressResponse(p *goal.Progress) ProgressResponse {
	return ProgressResponse{
		GoalID:        p.Goal.ID.String(),
		Title:         p.Goal.Title,
		TargetAmount:  p.Goal.TargetAmount.String(),
		CurrentAmount: p.CurrentAmount.String(),
		Percent:       p.Percent.String(),
	}
}

func toBalanceSheetResponse(r *balancesheet.Result) BalanceSheetResponse {
	return BalanceSheetResponse{
		CurrentAssets:         r.CurrentAssets.String(),
		NonCurrentAssets:      r.NonCurrentAssets.String(),
		CurrentLiabilities:    r.CurrentLiabilities.String(),
		NonCurrentLiabilities: r.NonCurrentLiabilities.String(),
		TotalAssets:           r.TotalAssets.String(),
		TotalLiabilities:      r.TotalLiabilities.String(),
		NetWorth:              r.NetWorth.String(),
	}
}
