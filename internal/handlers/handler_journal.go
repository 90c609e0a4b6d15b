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

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.POST("/validate", h.validateJournal)
		journals.GET("/:id", h.getJournal)
		journals.PUT("/:id", h.updateJournal)
		journals.DELETE("/:id", h.deleteJournal)
		journals.POST("/:id/post", h.postJournal)
		journals.POST("/:id/reverse", h.reverseJournal)
	}
}

type listJournalsQuery struct {
	Status    string `form:"status"`
	FromDate  string `form:"fromDate"`
	ToDate    string `form:"toDate"`
	Limit     int    `form:"limit"`
	NextToken string `form:"nextToken"`
}

func (q listJournalsQuery) params() (dto.ListJournalsParams, error) {
	errs := validation.Errors{}
	params := dto.ListJournalsParams{
		FromDate:  optionalDate(q.FromDate, "fromDate", errs),
		ToDate:    optionalDate(q.ToDate, "toDate", errs),
		Limit:     q.Limit,
		NextToken: optionalString(q.NextToken),
	}
	if raw := strings.ToUpper(strings.TrimSpace(q.Status)); raw != "" {
		status := domain.JournalStatus(raw)
		if status != domain.Draft && status != domain.Posted {
			errs.Add("status", "must be DRAFT or POSTED")
		}
		params.Status = &status
	}
	return params, errs.OrNil()
}

// createJournal godoc
// @Summary Create a journal entry
// @Description Stores a balanced entry as a draft, or posts it immediately when post is true.
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Validation failed; fields lists every problem"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	var req dto.CreateJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create journal")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal created",
		slog.String("journal_id", journal.JournalID), slog.String("status", string(journal.Status)))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journal entries
// @Description Lists entries newest first. Use nextToken from the previous page to continue.
// @Tags journals
// @Produce json
// @Param status query string false "DRAFT or POSTED"
// @Param fromDate query string false "Earliest entry date (YYYY-MM-DD)"
// @Param toDate query string false "Latest entry date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	var q listJournalsQuery
	if !bindQuery(c, &q) {
		return
	}
	params, err := q.params()
	if err != nil {
		respondError(c, err, "parse journal filters")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournal godoc
// @Summary Get a journal entry
// @Description Returns the entry with its lines in line order.
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// updateJournal godoc
// @Summary Update a draft
// @Description Replaces the header and lines of a DRAFT entry.
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param journal body dto.UpdateJournalRequest true "Replacement content"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not a draft"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	var req dto.UpdateJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	journal, err := h.journalService.UpdateDraft(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "update journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a draft
// @Tags journals
// @Param id path string true "Journal ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not a draft"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	journalID := c.Param("id")
	if err := h.journalService.DeleteDraft(c.Request.Context(), journalID, userID); err != nil {
		respondError(c, err, "delete journal")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Draft journal deleted", slog.String("journal_id", journalID))
	c.Status(http.StatusNoContent)
}

// postJournal godoc
// @Summary Post a draft
// @Description Re-validates the draft and moves it to POSTED, updating account and party balances.
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not a draft"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	journal, err := h.journalService.PostJournal(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "post journal")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal posted", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a posted entry
// @Description Creates and posts an entry with every line's debit and credit swapped.
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param reversal body dto.ReverseJournalRequest false "Optional date and description"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry is not posted or already reversed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	var req dto.ReverseJournalRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), c.Param("id"), req.Date.Ptr(), req.Description, userID)
	if err != nil {
		respondError(c, err, "reverse journal")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal reversed",
		slog.String("journal_id", c.Param("id")), slog.String("reversing_journal_id", reversal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}

// validateJournal godoc
// @Summary Dry-run a journal entry
// @Description Runs every entry check without saving. Always 200; see valid and errors.
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal entry"
// @Success 200 {object} dto.JournalValidationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/validate [post]
func (h *journalHandler) validateJournal(c *gin.Context) {
	var req dto.CreateJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.journalService.ValidateJournal(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "validate journal")
		return
	}
	c.JSON(http.StatusOK, resp)
}
