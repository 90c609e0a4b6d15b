package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/middleware"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/gin-gonic/gin"
)

// tradeHandler handles supplier bills and customer invoices.
type tradeHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
	salesService    portssvc.SalesSvcFacade
	overdueScanner  portssvc.OverdueScanner
}

func newTradeHandler(ps portssvc.PurchaseSvcFacade, ss portssvc.SalesSvcFacade, scanner portssvc.OverdueScanner) *tradeHandler {
	return &tradeHandler{purchaseService: ps, salesService: ss, overdueScanner: scanner}
}

func registerTradeRoutes(rg *gin.RouterGroup, ps portssvc.PurchaseSvcFacade, ss portssvc.SalesSvcFacade, scanner portssvc.OverdueScanner) {
	h := newTradeHandler(ps, ss, scanner)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.POST("/overdue-scan", h.scanOverdue) // Admin only
		purchases.GET("/:id", h.getPurchase)
		purchases.POST("/:id/pay", h.payPurchase)
	}

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
		sales.POST("/:id/pay", h.paySale)
	}
}

type listTradeQuery struct {
	Status   string `form:"status"`
	PartyID  string `form:"partyID"`
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}

func (q listTradeQuery) params() (dto.ListTradeParams, error) {
	errs := validation.Errors{}
	params := dto.ListTradeParams{
		PartyID:  optionalString(q.PartyID),
		FromDate: optionalDate(q.FromDate, "fromDate", errs),
		ToDate:   optionalDate(q.ToDate, "toDate", errs),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if raw := strings.ToUpper(strings.TrimSpace(q.Status)); raw != "" {
		status := domain.SettlementStatus(raw)
		switch status {
		case domain.StatusPending, domain.StatusPaid, domain.StatusOverdue:
			params.Status = &status
		default:
			errs.Add("status", "must be PENDING, PAID or OVERDUE")
		}
	}
	return params, errs.OrNil()
}

// bindTradeQuery parses the shared listing filters and the caller's ID.
func bindTradeQuery(c *gin.Context) (dto.ListTradeParams, string, bool) {
	var q listTradeQuery
	if !bindQuery(c, &q) {
		return dto.ListTradeParams{}, "", false
	}
	params, err := q.params()
	if err != nil {
		respondError(c, err, "parse listing filters")
		return dto.ListTradeParams{}, "", false
	}
	userID, ok := requireUserID(c)
	return params, userID, ok
}

// createPurchase godoc
// @Summary Record a supplier bill
// @Description Amounts are checked against the items and the 13% VAT rate. Credit bills need a future due date.
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Bill"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases [post]
func (h *tradeHandler) createPurchase(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "record purchase")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Purchase recorded",
		slog.String("purchase_id", purchase.PurchaseID), slog.String("status", string(purchase.Status)))
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// listPurchases godoc
// @Summary List supplier bills
// @Tags purchases
// @Produce json
// @Param status query string false "PENDING, PAID or OVERDUE"
// @Param partyID query string false "Supplier ID"
// @Param fromDate query string false "Earliest bill date (YYYY-MM-DD)"
// @Param toDate query string false "Latest bill date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListPurchasesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases [get]
func (h *tradeHandler) listPurchases(c *gin.Context) {
	params, userID, ok := bindTradeQuery(c)
	if !ok {
		return
	}

	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "list purchases")
		return
	}
	resp := dto.ListPurchasesResponse{Purchases: make([]dto.PurchaseResponse, len(purchases))}
	for i := range purchases {
		resp.Purchases[i] = dto.ToPurchaseResponse(&purchases[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getPurchase godoc
// @Summary Get a supplier bill
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *tradeHandler) getPurchase(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "retrieve purchase")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// payPurchase godoc
// @Summary Mark a supplier bill paid
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Bill is already paid"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases/{id}/pay [post]
func (h *tradeHandler) payPurchase(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.MarkPurchasePaid(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "mark purchase paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// scanOverdue godoc
// @Summary Run the overdue scan
// @Description Flips PENDING credit bills and invoices past their due date to OVERDUE. Administrators only.
// @Tags purchases
// @Produce json
// @Success 200 {object} dto.OverdueScanResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchases/overdue-scan [post]
func (h *tradeHandler) scanOverdue(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.overdueScanner.ScanOverdue(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "scan overdue documents")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Overdue scan finished",
		slog.Int64("purchases", resp.Purchases), slog.Int64("sales", resp.Sales))
	c.JSON(http.StatusOK, resp)
}

// createSale godoc
// @Summary Record a customer invoice
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Invoice"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *tradeHandler) createSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sale, err := h.salesService.CreateSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "record sale")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Sale recorded", slog.String("sales_id", sale.SalesID))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List customer invoices
// @Tags sales
// @Produce json
// @Param status query string false "PENDING, PAID or OVERDUE"
// @Param partyID query string false "Customer ID"
// @Param fromDate query string false "Earliest invoice date (YYYY-MM-DD)"
// @Param toDate query string false "Latest invoice date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *tradeHandler) listSales(c *gin.Context) {
	params, userID, ok := bindTradeQuery(c)
	if !ok {
		return
	}

	sales, err := h.salesService.ListSales(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "list sales")
		return
	}
	resp := dto.ListSalesResponse{Sales: make([]dto.SaleResponse, len(sales))}
	for i := range sales {
		resp.Sales[i] = dto.ToSaleResponse(&sales[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getSale godoc
// @Summary Get a customer invoice
// @Tags sales
// @Produce json
// @Param id path string true "Sales ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *tradeHandler) getSale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sale, err := h.salesService.GetSaleByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "retrieve sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// paySale godoc
// @Summary Mark a customer invoice paid
// @Tags sales
// @Produce json
// @Param id path string true "Sales ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invoice is already paid"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{id}/pay [post]
func (h *tradeHandler) paySale(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sale, err := h.salesService.MarkSalePaid(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "mark sale paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}
