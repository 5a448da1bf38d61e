package publisher

import (
	"context"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
)

// enqueuer is satisfied by utils.PosthogClientWrapper.
type enqueuer interface {
	Enqueue(distinctID string, event string, properties map[string]any) error
}

// PosthogPublisher captures transitions as product analytics events, one distinct id per donation.
type PosthogPublisher struct {
	client enqueuer
}

var _ portssvc.EventPublisher = (*PosthogPublisher)(nil)

func NewPosthogPublisher(client enqueuer) *PosthogPublisher {
	return &PosthogPublisher{client: client}
}

func (p *PosthogPublisher) Publish(_ context.Context, event domain.DonationEvent) error {
	props := map[string]any{
		"event_id":      event.EventID,
		"donation_code": event.DonationCode,
		"from":          string(event.From),
		"to":            string(event.To),
		"amount":        event.Amount.InexactFloat64(),
		"trigger":       event.Trigger,
	}
	if event.ProgramID != nil {
		props["program_id"] = *event.ProgramID
	}
	return p.client.Enqueue(event.DonationID, event.Type, props)
}
