package services

import (
	"context"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
)

// GatewayClient opens hosted checkout sessions with the external payment gateway.
type GatewayClient interface {
	// CreateCheckoutSession registers the donation with the gateway under its gateway order id.
	// Returns apperrors.ErrGatewayUnavailable for transport failures and timeouts and
	// apperrors.ErrGatewayRejected when the gateway refuses the request.
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error)
}

// EventPublisher hands committed donation events to downstream sinks.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.DonationEvent) error
}
