package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
)

// MapGatewayStatus translates a gateway transaction status into the internal target status.
// A pending target never transitions anything; the notification only refreshes gateway fields.
// Statuses without a mapping return apperrors.ErrUnmappedGatewayStatus and must never be
// treated as a payment.
func MapGatewayStatus(transactionStatus, fraudStatus string) (domain.DonationStatus, error) {
	status := strings.ToLower(strings.TrimSpace(transactionStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))

	switch status {
	case "settlement":
		return domain.DonationPaid, nil
	case "capture":
		switch fraud {
		case "", "accept":
			return domain.DonationPaid, nil
		case "challenge":
			return domain.DonationPending, nil
		case "deny":
			return domain.DonationFailed, nil
		}
		return "", fmt.Errorf("%w: capture with fraud_status %q", apperrors.ErrUnmappedGatewayStatus, fraudStatus)
	case "pending", "authorize":
		return domain.DonationPending, nil
	case "deny", "cancel", "failure":
		return domain.DonationFailed, nil
	case "expire":
		return domain.DonationExpired, nil
	case "refund", "partial_refund", "chargeback", "partial_chargeback":
		return domain.DonationFailed, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnmappedGatewayStatus, transactionStatus)
}

// IsReversalStatus reports whether the gateway status withdraws funds that were already
// settled. Only these statuses may move a paid donation to failed; a late deny, cancel or
// failure belongs to an earlier attempt on the same order.
func IsReversalStatus(transactionStatus string) bool {
	switch strings.ToLower(strings.TrimSpace(transactionStatus)) {
	case "refund", "partial_refund", "chargeback", "partial_chargeback":
		return true
	}
	return false
}
