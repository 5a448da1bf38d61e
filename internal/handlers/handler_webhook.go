package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/dto"
	"github.com/SscSPs/donation_payment_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// maxNotificationBytes bounds the notification body.
const maxNotificationBytes = 64 << 10

type webhookHandler struct {
	reconciler portssvc.ReconcilerSvc
}

// RegisterWebhookRoutes registers the gateway notification endpoint.
func RegisterWebhookRoutes(rg *gin.RouterGroup, reconciler portssvc.ReconcilerSvc, extra ...gin.HandlerFunc) {
	h := &webhookHandler{reconciler: reconciler}
	rg.POST("/webhooks/midtrans", append(extra, h.handleNotification)...)
}

// bindNotification binds a JSON or form notification and returns it with a JSON rendering
// of the body. JSON bodies are kept byte for byte; forms are re-encoded from the bound fields.
func bindNotification(c *gin.Context) (dto.GatewayNotificationRequest, []byte, error) {
	var req dto.GatewayNotificationRequest

	switch ct := c.ContentType(); ct {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if err := c.ShouldBindWith(&req, binding.Default(c.Request.Method, ct)); err != nil {
			return req, nil, err
		}
		body, err := json.Marshal(req)
		return req, body, err
	}

	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		return req, nil, err
	}
	var body []byte
	if cached, ok := c.Get(gin.BodyBytesKey); ok {
		body, _ = cached.([]byte)
	}
	return req, body, nil
}

// handleNotification godoc
// @Summary Receive a payment gateway notification
// @Description Authenticates and applies an asynchronous payment status notification. Replays and unknown statuses are acknowledged with 200.
// @Tags webhooks
// @Accept  json,x-www-form-urlencoded
// @Produce  json
// @Param   notification body dto.GatewayNotificationRequest true "Gateway notification"
// @Success 200 {object} dto.WebhookResponse
// @Failure 400 {object} map[string]string "Malformed notification"
// @Failure 403 {object} map[string]string "Invalid signature"
// @Failure 404 {object} map[string]string "Unknown order"
// @Failure 503 {object} map[string]string "Concurrent update, retry later"
// @Router /webhooks/midtrans [post]
func (h *webhookHandler) handleNotification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxNotificationBytes)

	req, body, err := bindNotification(c)
	if err != nil {
		logger.Warn("Failed to bind gateway notification", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification body"})
		return
	}

	logger = logger.With(slog.String("order_id", req.OrderID), slog.String("transaction_status", req.TransactionStatus))
	ctx := middleware.WithLogger(c.Request.Context(), logger)

	result, err := h.reconciler.Reconcile(ctx, req.ToGatewayNotification(body))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ToWebhookResponse(result))
	case errors.Is(err, apperrors.ErrInvalidSignature):
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid signature"})
	case errors.Is(err, apperrors.ErrDonationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown order"})
	case errors.Is(err, apperrors.ErrUnmappedGatewayStatus), errors.Is(err, apperrors.ErrAmountMismatch):
		// Acknowledged so the gateway stops retrying; the service already logged it.
		c.JSON(http.StatusOK, dto.WebhookResponse{Status: "ignored"})
	case errors.Is(err, apperrors.ErrLedgerWriteConflict):
		logger.Warn("Notification not applied due to write conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unable to apply notification"})
	default:
		logger.Error("Failed to reconcile notification", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process notification"})
	}
}
