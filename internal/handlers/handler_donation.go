package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/dto"
	"github.com/SscSPs/donation_payment_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// donationHandler serves the donor-facing endpoints.
type donationHandler struct {
	donationService portssvc.DonationSvcFacade
}

// RegisterDonationRoutes registers the public donation routes. extra runs before creation only.
func RegisterDonationRoutes(rg *gin.RouterGroup, donationService portssvc.DonationSvcFacade, extra ...gin.HandlerFunc) {
	h := &donationHandler{donationService: donationService}

	donations := rg.Group("/donations")
	{
		donations.POST("", append(extra, h.createDonation)...)
		donations.GET("/:code", h.getDonationStatus)
	}
}

// createDonation godoc
// @Summary Start a donation
// @Description Records a pending donation. Gateway donations return a checkout session; manual donations wait for operator confirmation.
// @Tags donations
// @Accept  json
// @Produce  json
// @Param   donation body dto.CreateDonationRequest true "Donation details"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 502 {object} map[string]string "Payment gateway failure"
// @Failure 500 {object} map[string]string "Failed to create donation"
// @Router /donations [post]
func (h *donationHandler) createDonation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDonation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create donation",
		slog.String("payment_source", req.PaymentSource),
		slog.String("amount", req.Amount.String()))

	donation, err := h.donationService.CreateDonation(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating donation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrGatewayUnavailable), errors.Is(err, apperrors.ErrGatewayRejected):
			// Gateway details stay in the log.
			logger.Error("Payment gateway failed to open checkout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Transaction could not be created"})
		default:
			logger.Error("Failed to create donation in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		}
		return
	}

	logger.Info("Donation created successfully", slog.String("donation_code", donation.DonationCode))
	c.JSON(http.StatusCreated, dto.ToCheckoutResponse(donation))
}

// getDonationStatus godoc
// @Summary Get donation status
// @Description Returns the public status of a donation by its code
// @Tags donations
// @Produce  json
// @Param   code path string true "Donation code"
// @Success 200 {object} dto.PublicDonationResponse
// @Failure 404 {object} map[string]string "Donation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve donation"
// @Router /donations/{code} [get]
func (h *donationHandler) getDonationStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	donation, err := h.donationService.GetDonationByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			logger.Error("Failed to get donation from service", slog.String("donation_code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicDonationResponse(donation))
}
