package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"comptable/internal/format"
	"comptable/internal/ledger"
	"comptable/internal/services"
)

// ReportHandler serves chart data.
type ReportHandler struct {
	reportService services.ReportServicer
	formatter     *format.Formatter
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, formatter *format.Formatter) *ReportHandler {
	return &ReportHandler{reportService: reportService, formatter: formatter}
}

// SummariesResponse holds the chart data of every account.
type SummariesResponse struct {
	Summaries        []ledger.AccountSummary `json:"summaries"`
	Credits          decimal.Decimal         `json:"credits"`
	Debits           decimal.Decimal         `json:"debits"`
	Balance          decimal.Decimal         `json:"balance"`
	BalanceFormatted string                  `json:"balance_formatted"`
	Period           string                  `json:"period"`
}

// CategoryBreakdownResponse holds the signed total per category name.
type CategoryBreakdownResponse struct {
	Categories map[string]decimal.Decimal `json:"categories"`
	Formatted  map[string]string          `json:"formatted"`
	Period     string                     `json:"period"`
}

// AccountSummaries returns one chart datum per account, optionally limited
// to a month.
// @Summary     Account summaries
// @Description Get credits, debits and balance per account of the authenticated user
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), with year"
// @Param       year  query int false "Year, with month"
// @Success     200 {object} SummariesResponse "Chart data"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/accounts [get]
func (h *ReportHandler) AccountSummaries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	period, err := q.Period()
	if err != nil {
		respondWithError(c, err)
		return
	}

	summaries, err := h.reportService.AccountSummaries(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	credits, debits := decimal.Zero, decimal.Zero
	for _, s := range summaries {
		credits = credits.Add(s.Credits)
		debits = debits.Add(s.Debits)
	}
	balance := credits.Sub(debits)

	c.JSON(http.StatusOK, SummariesResponse{
		Summaries:        summaries,
		Credits:          credits,
		Debits:           debits,
		Balance:          balance,
		BalanceFormatted: h.formatter.Money(balance),
		Period:           periodString(period),
	})
}

// CategoryBreakdown returns the signed total per category of one account.
// @Summary     Category breakdown
// @Description Get the signed total per category of an account
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int true  "Account ID"
// @Param       month query int false "Month (1-12), with year"
// @Param       year  query int false "Year, with month"
// @Success     200 {object} CategoryBreakdownResponse "Totals per category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/categories [get]
func (h *ReportHandler) CategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	period, err := q.Period()
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.CategoryBreakdown(userID, accountID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	formatted := make(map[string]string, len(totals))
	for name, v := range totals {
		formatted[name] = h.formatter.Money(v)
	}
	c.JSON(http.StatusOK, CategoryBreakdownResponse{
		Categories: totals,
		Formatted:  formatted,
		Period:     periodString(period),
	})
}

func periodString(p *ledger.Period) string {
	if p == nil {
		return ""
	}
	return p.String()
}
