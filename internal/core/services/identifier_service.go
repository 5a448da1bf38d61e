package services

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/utils"
)

const orderSuffixLength = 5

type identifierService struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
	codePrefix   string
	orderPrefix  string
	location     *time.Location
	randomSuffix func() (string, error)
}

// IdentifierOption configures an identifier service.
type IdentifierOption func(*identifierService)

// WithRandomSuffix overrides the gateway order id suffix source.
func WithRandomSuffix(fn func() (string, error)) IdentifierOption {
	return func(s *identifierService) {
		s.randomSuffix = fn
	}
}

// NewIdentifierService creates an identifier generator. Dates are rendered in location.
func NewIdentifierService(sequenceRepo portsrepo.SequenceRepository, codePrefix, orderPrefix string, location *time.Location, opts ...IdentifierOption) portssvc.IdentifierSvc {
	if location == nil {
		location = time.UTC
	}
	s := &identifierService{
		sequenceRepo: sequenceRepo,
		codePrefix:   codePrefix,
		orderPrefix:  orderPrefix,
		location:     location,
		randomSuffix: func() (string, error) {
			return utils.GenerateSecureRandomCode(orderSuffixLength, utils.UpperAlphanumeric)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextDonationCode reserves the next per-day number. Numbers above 9999 keep growing in width.
func (s *identifierService) NextDonationCode(ctx context.Context, at time.Time) (string, error) {
	day := at.In(s.location).Format("20060102")
	seq, err := s.sequenceRepo.NextValue(ctx, s.codePrefix+":"+day)
	if err != nil {
		return "", fmt.Errorf("failed to reserve donation sequence for %s: %w", day, err)
	}
	return fmt.Sprintf("%s-%s-%04d", s.codePrefix, day, seq), nil
}

func (s *identifierService) NextGatewayOrderID(ctx context.Context, at time.Time) (string, error) {
	suffix, err := s.randomSuffix()
	if err != nil {
		return "", fmt.Errorf("failed to generate gateway order suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", s.orderPrefix, at.In(s.location).Format("20060102150405"), suffix), nil
}
