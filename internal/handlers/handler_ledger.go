package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves balances and statements aggregated from posted lines.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ls portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/accounts/:code/balance", h.getAccountBalance)
	rg.GET("/accounts/:code/statement", h.getAccountStatement)
	rg.GET("/parties/:id/balance", h.getPartyBalance)
}

// getAccountBalance godoc
// @Summary Account balance
// @Description Opening balance plus posted movements dated on or before asOf, signed by the normal balance.
// @Tags ledger
// @Produce json
// @Param code path string true "Account code"
// @Param asOf query string false "Cut-off date (YYYY-MM-DD); all movements when omitted"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{code}/balance [get]
func (h *ledgerHandler) getAccountBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	errs := validation.Errors{}
	asOf := optionalDate(c.Query("asOf"), "asOf", errs)
	if err := errs.OrNil(); err != nil {
		respondError(c, err, "parse balance query")
		return
	}

	balance, err := h.ledgerService.GetAccountBalance(c.Request.Context(), c.Param("code"), asOf, userID)
	if err != nil {
		respondError(c, err, "calculate account balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance))
}

// getAccountStatement godoc
// @Summary Account statement
// @Description Lists posted lines against an account. Use nextToken from the previous page to continue.
// @Tags ledger
// @Produce json
// @Param code path string true "Account code"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.AccountStatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{code}/statement [get]
func (h *ledgerHandler) getAccountStatement(c *gin.Context) {
	var params dto.ListStatementParams
	if !bindQuery(c, &params) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	statement, err := h.ledgerService.ListAccountStatement(c.Request.Context(), c.Param("code"), params, userID)
	if err != nil {
		respondError(c, err, "list account statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// getPartyBalance godoc
// @Summary Party balance
// @Description Opening balance plus posted movements tagged with the party.
// @Tags ledger
// @Produce json
// @Param id path string true "Party ID"
// @Param asOf query string false "Cut-off date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /parties/{id}/balance [get]
func (h *ledgerHandler) getPartyBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	errs := validation.Errors{}
	asOf := optionalDate(c.Query("asOf"), "asOf", errs)
	if err := errs.OrNil(); err != nil {
		respondError(c, err, "parse balance query")
		return
	}

	balance, err := h.ledgerService.GetPartyBalance(c.Request.Context(), c.Param("id"), asOf, userID)
	if err != nil {
		respondError(c, err, "calculate party balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyBalanceResponse(balance))
}
