package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/dto"
	"github.com/SscSPs/donation_payment_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// operatorHandler serves the authenticated back-office endpoints.
type operatorHandler struct {
	donationService portssvc.DonationSvcFacade
}

// RegisterOperatorRoutes registers operator routes on an authenticated group.
func RegisterOperatorRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade) {
	h := &operatorHandler{donationService: donationService}

	donations := rg.Group("/donations")
	{
		donations.GET("", h.listDonations)
		donations.GET("/:id", h.getDonation)
		donations.POST("/:id/confirm", h.confirmDonation)
		donations.POST("/:id/reject", h.rejectDonation)
	}

	rg.GET("/programs/:id/ledger", h.auditProgramLedger)
}

// listDonations godoc
// @Summary List donations
// @Description Lists donations newest first with cursor pagination
// @Tags operator
// @Produce  json
// @Param   status query string false "Filter by status" Enums(pending, paid, failed, expired)
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListDonationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list donations"
// @Security BearerAuth
// @Router /donations [get]
func (h *operatorHandler) listDonations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDonationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListDonations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.donationService.ListDonations(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list donations in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list donations"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getDonation godoc
// @Summary Get a donation by ID
// @Tags operator
// @Produce  json
// @Param   id path string true "Donation ID"
// @Success 200 {object} dto.DonationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Donation not found"
// @Security BearerAuth
// @Router /donations/{id} [get]
func (h *operatorHandler) getDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	donation, err := h.donationService.GetDonationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		logger.Error("Failed to get donation from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDonationResponse(donation))
}

// confirmDonation godoc
// @Summary Confirm a manual donation
// @Description Marks a pending manual donation as paid and credits its program
// @Tags operator
// @Produce  json
// @Param   id path string true "Donation ID"
// @Success 200 {object} dto.DonationResponse
// @Failure 400 {object} map[string]string "Donation cannot be confirmed by an operator"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Donation not found"
// @Failure 409 {object} map[string]string "Donation is not pending"
// @Security BearerAuth
// @Router /donations/{id}/confirm [post]
func (h *operatorHandler) confirmDonation(c *gin.Context) {
	h.resolve(c, "confirm", h.donationService.ConfirmDonation)
}

// rejectDonation godoc
// @Summary Reject or reverse a donation
// @Description Marks a pending donation as failed, or reverses a paid one and debits its program
// @Tags operator
// @Produce  json
// @Param   id path string true "Donation ID"
// @Success 200 {object} dto.DonationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Donation not found"
// @Failure 409 {object} map[string]string "Donation is already resolved"
// @Security BearerAuth
// @Router /donations/{id}/reject [post]
func (h *operatorHandler) rejectDonation(c *gin.Context) {
	h.resolve(c, "reject", h.donationService.RejectDonation)
}

func (h *operatorHandler) resolve(c *gin.Context, action string, apply func(ctx context.Context, donationID, operatorID string) (*domain.Donation, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	donationID := c.Param("id")

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		logger.Error("Operator ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("donation_id", donationID), slog.String("action", action))
	donation, err := apply(c.Request.Context(), donationID, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			logger.Warn("Rejected operator transition", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrLedgerWriteConflict):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Donation is being updated, retry shortly"})
		default:
			logger.Error("Failed to resolve donation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation"})
		}
		return
	}

	logger.Info("Donation resolved by operator", slog.String("status", string(donation.Status)))
	c.JSON(http.StatusOK, dto.ToDonationResponse(donation))
}

// auditProgramLedger godoc
// @Summary Audit a program's collected amount
// @Description Compares the stored collected amount with the sum of paid donations
// @Tags operator
// @Produce  json
// @Param   id path string true "Program ID"
// @Success 200 {object} dto.LedgerAuditResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Program not found"
// @Security BearerAuth
// @Router /programs/{id}/ledger [get]
func (h *operatorHandler) auditProgramLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	audit, err := h.donationService.AuditProgramLedger(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
			return
		}
		logger.Error("Failed to audit program ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to audit program"})
		return
	}
	if !audit.Drift.IsZero() {
		logger.Warn("Program ledger drift detected", slog.String("program_id", audit.ProgramID), slog.String("drift", audit.Drift.String()))
	}
	c.JSON(http.StatusOK, dto.ToLedgerAuditResponse(audit))
}
