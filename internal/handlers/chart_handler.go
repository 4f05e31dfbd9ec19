package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/format"
	"fintrack/internal/services"
)

// ChartHandler serves the derived numbers behind the charts and dashboard.
type ChartHandler struct {
	reportService services.ReportServicer
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(reportService services.ReportServicer) *ChartHandler {
	return &ChartHandler{reportService: reportService}
}

// GetSummary handles the monthly rollup.
// @Summary     Get monthly summary
// @Description Income, expenses, net income, and savings rate for a month (defaults to the current month)
// @Tags        charts
// @Produce     json
// @Param       month query string false "Month key (YYYY-MM)"
// @Success     200 {object} analytics.Summary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid month key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /charts/summary [get]
func (h *ChartHandler) GetSummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = format.CurrentMonthKey()
	}
	if _, err := format.ParseMonthKey(month); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidMonthKey, err))
		return
	}

	summary, err := h.reportService.MonthlySummary(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetBreakdown handles the expense-by-category breakdown.
// @Summary     Get expense breakdown
// @Description Per-category expense totals, largest first, capped to the top 8 categories
// @Tags        charts
// @Produce     json
// @Success     200 {array} analytics.CategoryTotal "Breakdown"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /charts/breakdown [get]
func (h *ChartHandler) GetBreakdown(c *gin.Context) {
	breakdown, err := h.reportService.ExpenseBreakdown()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// GetTrend handles the trailing six-month trend series.
// @Summary     Get trend series
// @Description Income and expense totals per month for the trailing six months, oldest first
// @Tags        charts
// @Produce     json
// @Success     200 {object} analytics.Trend "Trend series"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /charts/trend [get]
func (h *ChartHandler) GetTrend(c *gin.Context) {
	trend, err := h.reportService.Trend()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}

// GetOverview handles the dashboard rollup.
// @Summary     Get dashboard overview
// @Description Current-month summary, recent transactions, and budget/goal totals
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} services.Overview "Dashboard overview"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *ChartHandler) GetOverview(c *gin.Context) {
	overview, err := h.reportService.Overview()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"overview": overview})
}
