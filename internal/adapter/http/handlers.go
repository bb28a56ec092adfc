package http

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/lucasftorres/patrimonio-backend/internal/domain"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/balancesheet"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/goal"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/investment"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/portfolio"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/valuation"
)

// Handler exposes the investment, portfolio and dashboard services over HTTP
type Handler struct {
	Investments    *investment.Service
	Valuations     *valuation.Service
	Portfolio      *portfolio.Service
	Goals          *goal.Service
	BalanceSheet   *balancesheet.Service
	InvestmentRepo domain.InvestmentRepository
	RateRepo       domain.RateSeriesRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(
	investments *investment.Service,
	valuations *valuation.Service,
	portfolioSvc *portfolio.Service,
	goals *goal.Service,
	balanceSheet *balancesheet.Service,
	investmentRepo domain.InvestmentRepository,
	rateRepo domain.RateSeriesRepository,
) *Handler {
	return &Handler{
		Investments:    investments,
		Valuations:     valuations,
		Portfolio:      portfolioSvc,
		Goals:          goals,
		BalanceSheet:   balanceSheet,
		InvestmentRepo: investmentRepo,
		RateRepo:       rateRepo,
	}
}

// Register wires all routes onto the echo instance
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)

	e.POST("/investments", h.CreateInvestment)
	e.POST("/investments/:id/deposits", h.Deposit)
	e.POST("/investments/:id/withdrawals", h.Withdraw)
	e.POST("/investments/:id/refresh", h.Refresh)
	e.GET("/investments/:id/valuation", h.GetValuation)

	e.GET("/portfolio/summary", h.PortfolioSummary)

	e.GET("/dashboard/balance-sheet", h.GetBalanceSheet)
	e.GET("/dashboard/net-worth", h.GetNetWorth)

	e.GET("/goals/:id/progress", h.GoalProgress)

	e.POST("/rates", h.AddRate)
	e.GET("/rates/:type", h.ListRates)
}

// Health returns application health status
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// CreateInvestment handles POST /investments
func (h *Handler) CreateInvestment(c echo.Context) error {
	var req CreateInvestmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	principal, err := parseDecimal("principal", req.Principal)
	if err != nil {
		return badRequest(c, err.Error())
	}

	purchaseDate, err := parseDate("purchase_date", req.PurchaseDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	yield, err := toYieldConfig(req.Yield)
	if err != nil {
		return badRequest(c, err.Error())
	}

	input := investment.CreateInput{
		Name:         req.Name,
		Category:     domain.Category(req.Category),
		Principal:    principal,
		PurchaseDate: purchaseDate,
		Yield:        yield,
		Liquidity:    domain.Liquidity(req.Liquidity),
	}

	if req.MaturityDate != "" {
		maturity, err := parseDate("maturity_date", req.MaturityDate)
		if err != nil {
			return badRequest(c, err.Error())
		}
		input.MaturityDate = &maturity
	}

	if req.AccountID != "" {
		accountID, err := uuid.Parse(req.AccountID)
		if err != nil {
			return badRequest(c, "account_id must be a valid UUID")
		}
		input.AccountID = &accountID
	}

	inv, err := h.Investments.Create(c.Request().Context(), input)
	if err != nil {
		return serviceError(c, "failed to create investment", err)
	}

	return c.JSON(http.StatusCreated, toInvestmentResponse(inv))
}

// Deposit handles POST /investments/:id/deposits
func (h *Handler) Deposit(c echo.Context) error {
	id, amount, err := bindAmount(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	inv, err := h.Investments.Deposit(c.Request().Context(), id, amount)
	if err != nil {
		return serviceError(c, "failed to deposit", err)
	}

	return c.JSON(http.StatusOK, toInvestmentResponse(inv))
}

// Withdraw handles POST /investments/:id/withdrawals
func (h *Handler) Withdraw(c echo.Context) error {
	id, amount, err := bindAmount(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	inv, err := h.Investments.Withdraw(c.Request().Context(), id, amount)
	if err != nil {
		return serviceError(c, "failed to withdraw", err)
	}

	return c.JSON(http.StatusOK, toInvestmentResponse(inv))
}

// Refresh handles POST /investments/:id/refresh
func (h *Handler) Refresh(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid UUID")
	}

	inv, result, err := h.Investments.Refresh(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, "failed to refresh valuation", err)
	}

	return c.JSON(http.StatusOK, RefreshResponse{
		Investment: toInvestmentResponse(inv),
		Valuation:  toValuationResponse(result),
	})
}

// GetValuation handles GET /investments/:id/valuation
// Computes the value without persisting anything.
func (h *Handler) GetValuation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid UUID")
	}

	ctx := c.Request().Context()
	inv, err := h.InvestmentRepo.GetByID(ctx, id)
	if err != nil {
		return serviceError(c, "failed to get investment", err)
	}

	result, err := h.Valuations.Valuate(ctx, inv)
	if err != nil {
		return serviceError(c, "failed to valuate investment", err)
	}

	return c.JSON(http.StatusOK, toValuationResponse(result))
}

// PortfolioSummary handles GET /portfolio/summary?from=YYYY-MM&to=YYYY-MM
func (h *Handler) PortfolioSummary(c echo.Context) error {
	from, err := parseMonth("from", c.QueryParam("from"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	to, err := parseMonth("to", c.QueryParam("to"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	if to.Before(from) {
		return badRequest(c, "to must not be before from")
	}

	summary, err := h.Portfolio.GetSummary(c.Request().Context(), from, to)
	if err != nil {
		return serviceError(c, "failed to build portfolio summary", err)
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// GetBalanceSheet handles GET /dashboard/balance-sheet
func (h *Handler) GetBalanceSheet(c echo.Context) error {
	result, err := h.BalanceSheet.GetBalanceSheet(c.Request().Context())
	if err != nil {
		return serviceError(c, "failed to build balance sheet", err)
	}

	return c.JSON(http.StatusOK, toBalanceSheetResponse(result))
}

// GetNetWorth handles GET /dashboard/net-worth
func (h *Handler) GetNetWorth(c echo.Context) error {
	result, err := h.BalanceSheet.GetBalanceSheet(c.Request().Context())
	if err != nil {
		return serviceError(c, "failed to compute net worth", err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"total_assets":      result.TotalAssets.String(),
		"total_liabilities": result.TotalLiabilities.String(),
		"net_worth":         result.NetWorth.String(),
	})
}

// GoalProgress handles GET /goals/:id/progress
func (h *Handler) GoalProgress(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "id must be a valid UUID")
	}

	progress, err := h.Goals.GetProgress(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, "failed to compute goal progress", err)
	}

	return c.JSON(http.StatusOK, toProgressResponse(progress))
}

// AddRate handles POST /rates
func (h *Handler) AddRate(c echo.Context) error {
	var req RateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	referenceDate, err := parseDate("reference_date", req.ReferenceDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	annualRate, err := parseDecimal("annual_rate", req.AnnualRate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	obs := &domain.RateObservation{
		ID:            uuid.New(),
		RateType:      domain.RateType(req.RateType),
		ReferenceDate: referenceDate,
		AnnualRate:    annualRate,
	}
	if err := obs.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.RateRepo.Add(c.Request().Context(), obs); err != nil {
		return serviceError(c, "failed to add rate observation", err)
	}

	return c.JSON(http.StatusCreated, RateObservationResponse{
		RateType:      string(obs.RateType),
		ReferenceDate: obs.ReferenceDate.Format(dateLayout),
		AnnualRate:    obs.AnnualRate.String(),
	})
}

// ListRates handles GET /rates/:type?from=2006-01-02&to=2006-01-02
// Both bounds are optional; the default window is the full stored history
// up to today.
func (h *Handler) ListRates(c echo.Context) error {
	rateType := domain.RateType(c.Param("type"))

	var from time.Time
	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := parseDate("from", raw)
		if err != nil {
			return badRequest(c, err.Error())
		}
		from = parsed
	}

	to := time.Now().UTC()
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := parseDate("to", raw)
		if err != nil {
			return badRequest(c, err.Error())
		}
		to = parsed
	}

	series, err := h.RateRepo.GetSeries(c.Request().Context(), rateType, from, to)
	if err != nil {
		return serviceError(c, "failed to list rate observations", err)
	}

	observations := make([]RateObservationResponse, 0, len(series.Observations))
	for _, obs := range series.Observations {
		observations = append(observations, RateObservationResponse{
			RateType:      string(obs.RateType),
			ReferenceDate: obs.ReferenceDate.Format(dateLayout),
			AnnualRate:    obs.AnnualRate.String(),
		})
	}

	return c.JSON(http.StatusOK, observations)
}

func bindAmount(c echo.Context) (uuid.UUID, decimal.Decimal, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, decimal.Zero, errors.New("id must be a valid UUID")
	}

	var req AmountRequest
	if err := c.Bind(&req); err != nil {
		return uuid.Nil, decimal.Zero, errors.New("invalid request body")
	}

	amount, err := parseDecimal("amount", req.Amount)
	if err != nil {
		return uuid.Nil, decimal.Zero, err
	}

	return id, amount, nil
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

// serviceError converts domain errors to HTTP statuses
func serviceError(c echo.Context, message string, err error) error {
	errorMsg := err.Error()

	// Map common validation errors to Bad Request
	if strings.Contains(errorMsg, "must be") ||
		strings.Contains(errorMsg, "must have") ||
		strings.Contains(errorMsg, "must reference") ||
		strings.Contains(errorMsg, "cannot be") ||
		strings.Contains(errorMsg, "exceeds") ||
		strings.Contains(errorMsg, "invalid") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": errorMsg})
	}

	// Map missing rows to Not Found
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": errorMsg})
	}

	// Default to Internal Server Error, with the cause logged rather
	// than exposed
	log.Printf("%s: %v", message, err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": message})
}
