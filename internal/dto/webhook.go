package dto

import "github.com/SscSPs/donation_payment_app/internal/core/domain"

// GatewayNotificationRequest is the notification posted by the gateway as JSON or as a form.
type GatewayNotificationRequest struct {
	OrderID           string `json:"order_id" form:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" form:"transaction_status" binding:"required"`
	FraudStatus       string `json:"fraud_status" form:"fraud_status"`
	StatusCode        string `json:"status_code" form:"status_code"`
	GrossAmount       string `json:"gross_amount" form:"gross_amount"`
	SignatureKey      string `json:"signature_key" form:"signature_key"`
	TransactionID     string `json:"transaction_id" form:"transaction_id"`
	PaymentType       string `json:"payment_type" form:"payment_type"`
	TransactionTime   string `json:"transaction_time" form:"transaction_time"`
}

// ToGatewayNotification converts the request into the domain notification, keeping the raw body.
func (r GatewayNotificationRequest) ToGatewayNotification(raw []byte) domain.GatewayNotification {
	return domain.GatewayNotification{
		OrderID:           r.OrderID,
		TransactionStatus: r.TransactionStatus,
		FraudStatus:       r.FraudStatus,
		StatusCode:        r.StatusCode,
		GrossAmount:       r.GrossAmount,
		SignatureKey:      r.SignatureKey,
		TransactionID:     r.TransactionID,
		PaymentType:       r.PaymentType,
		RawPayload:        raw,
	}
}

// WebhookResponse acknowledges a notification.
type WebhookResponse struct {
	Status         string `json:"status"`
	Outcome        string `json:"outcome,omitempty"`
	DonationStatus string `json:"donationStatus,omitempty"`
}

// ToWebhookResponse converts a reconcile result into the acknowledgement body.
func ToWebhookResponse(result *domain.ReconcileResult) WebhookResponse {
	return WebhookResponse{
		Status:         "ok",
		Outcome:        string(result.Outcome),
		DonationStatus: string(result.CurrentStatus),
	}
}
