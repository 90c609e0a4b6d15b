package handlers

import (
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxApplicationBytes caps the size of a submitted application form.
const maxApplicationBytes = 64 << 10

// distributorHandler handles distributor onboarding applications.
type distributorHandler struct {
	distributorService portssvc.DistributorSvcFacade
}

func newDistributorHandler(ds portssvc.DistributorSvcFacade) *distributorHandler {
	return &distributorHandler{distributorService: ds}
}

func registerDistributorRoutes(rg *gin.RouterGroup, ds portssvc.DistributorSvcFacade) {
	h := newDistributorHandler(ds)

	apps := rg.Group("/distributor-applications")
	{
		apps.POST("", h.submitApplication)
		apps.GET("", h.listApplications) // Admin only
		apps.GET("/mine", h.listMyApplications)
		apps.GET("/:id", h.getApplication)
		apps.PUT("/:id", h.updateApplication)
		apps.POST("/:id/status", h.transitionStatus) // Admin only
	}
}

// readForm returns the raw request body, which the service checks against the application JSON Schema.
func readForm(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxApplicationBytes+1))
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to read application body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return nil, false
	}
	if len(raw) > maxApplicationBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Application form is too large"})
		return nil, false
	}
	return raw, true
}

// submitApplication godoc
// @Summary Submit a distributor application
// @Description Validates the form against the application schema and stores it as PENDING.
// @Tags distributor-applications
// @Accept json
// @Produce json
// @Param application body object true "Application form (business, contact, distribution, documents, termsAccepted)"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /distributor-applications [post]
func (h *distributorHandler) submitApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	raw, ok := readForm(c)
	if !ok {
		return
	}

	app, err := h.distributorService.SubmitApplication(c.Request.Context(), raw, userID)
	if err != nil {
		respondError(c, err, "submit application")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Distributor application submitted", slog.String("application_id", app.ApplicationID))
	c.JSON(http.StatusCreated, dto.ToApplicationResponse(app))
}

// updateApplication godoc
// @Summary Edit an application
// @Description Replaces the form content while the application is PENDING or REQUIRES_CHANGES.
// @Tags distributor-applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param application body object true "Application form"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Application is no longer editable"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /distributor-applications/{id} [put]
func (h *distributorHandler) updateApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	raw, ok := readForm(c)
	if !ok {
		return
	}

	app, err := h.distributorService.UpdateApplication(c.Request.Context(), c.Param("id"), raw, userID)
	if err != nil {
		respondError(c, err, "update application")
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// listMyApplications godoc
// @Summary List my applications
// @Tags distributor-applications
// @Produce json
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /distributor-applications/mine [get]
func (h *distributorHandler) listMyApplications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	apps, err := h.distributorService.ListMyApplications(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListApplicationsResponse(apps))
}

// listApplications godoc
// @Summary List applications for review
// @Tags distributor-applications
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListApplicationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /distributor-applications [get]
func (h *distributorHandler) listApplications(c *gin.Context) {
	var params dto.ListApplicationsParams
	if !bindQuery(c, &params) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	apps, err := h.distributorService.ListApplications(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListApplicationsResponse(apps))
}

// getApplication godoc
// @Summary Get an application
// @Description Visible to administrators and the applicant.
// @Tags distributor-applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /distributor-applications/{id} [get]
func (h *distributorHandler) getApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	app, err := h.distributorService.GetApplication(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "retrieve application")
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

// transitionStatus godoc
// @Summary Review an application
// @Description Moves an application along its review workflow. Rejections and change requests need review notes.
// @Tags distributor-applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param status body dto.ApplicationStatusRequest true "New status"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Status changed concurrently"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /distributor-applications/{id}/status [post]
func (h *distributorHandler) transitionStatus(c *gin.Context) {
	var req dto.ApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	app, err := h.distributorService.TransitionStatus(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "change application status")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Application status changed",
		slog.String("application_id", app.ApplicationID), slog.String("status", string(app.Status)))
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}
