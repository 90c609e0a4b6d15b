package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              time.Now,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/vat-summary", h.getVATSummary)
	}
}

type vatSummaryQuery struct {
	Year    int `form:"year" json:"year" binding:"required"`
	Quarter int `form:"quarter" json:"quarter" binding:"required"`
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date. Unbalanced books are reported as warnings.
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	asOf, err := asOfOrToday(c, h.now())
	if err != nil {
		respondError(c, err, "parse report date")
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), asOf, userID)
	if err != nil {
		respondError(c, err, "generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Generates a balance sheet with current earnings and key ratios as of a specific date.
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	asOf, err := asOfOrToday(c, h.now())
	if err != nil {
		respondError(c, err, "parse report date")
		return
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), asOf, userID)
	if err != nil {
		respondError(c, err, "generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getVATSummary godoc
// @Summary Generate VAT summary
// @Description Output VAT on sales minus input VAT on purchases for a calendar quarter, with a monthly breakdown.
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param quarter query int true "Quarter (1-4)"
// @Success 200 {object} dto.VATSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/vat-summary [get]
func (h *reportingHandler) getVATSummary(c *gin.Context) {
	var q vatSummaryQuery
	if !bindQuery(c, &q) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.GetVATSummary(c.Request.Context(), q.Year, q.Quarter, userID)
	if err != nil {
		respondError(c, err, "generate VAT summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToVATSummaryResponse(summary))
}
