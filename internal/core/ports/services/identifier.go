package services

import (
	"context"
	"time"
)

// IdentifierSvc produces human-readable donation codes and gateway order ids.
type IdentifierSvc interface {
	// NextDonationCode returns <prefix>-<YYYYMMDD>-<seq> for the calendar day of at.
	NextDonationCode(ctx context.Context, at time.Time) (string, error)

	// NextGatewayOrderID returns <prefix>-<YYYYMMDDHHMMSS>-<5 random chars>.
	NextGatewayOrderID(ctx context.Context, at time.Time) (string, error)
}
