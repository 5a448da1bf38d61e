// Package publisher delivers committed donation transitions to downstream sinks.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
)

// encodeEvent is the wire form shared by the stream and broker sinks.
func encodeEvent(event domain.DonationEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", event.EventID, err)
	}
	return payload, nil
}

// MultiPublisher fans an event out to every sink. All sinks are attempted and their
// errors joined.
type MultiPublisher struct {
	sinks []portssvc.EventPublisher
}

var _ portssvc.EventPublisher = (*MultiPublisher)(nil)

func NewMultiPublisher(sinks ...portssvc.EventPublisher) *MultiPublisher {
	return &MultiPublisher{sinks: sinks}
}

func (p *MultiPublisher) Publish(ctx context.Context, event domain.DonationEvent) error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogPublisher writes events to the structured log.
type LogPublisher struct {
	logger *slog.Logger
}

var _ portssvc.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.DonationEvent) error {
	attrs := []any{
		slog.String("event_id", event.EventID),
		slog.String("donation_id", event.DonationID),
		slog.String("donation_code", event.DonationCode),
		slog.String("from", string(event.From)),
		slog.String("to", string(event.To)),
		slog.String("amount", event.Amount.String()),
		slog.String("ledger_delta", event.LedgerDelta.String()),
		slog.String("trigger", event.Trigger),
	}
	if event.ProgramID != nil {
		attrs = append(attrs, slog.String("program_id", *event.ProgramID))
	}
	if event.CollectedAmount != nil {
		attrs = append(attrs, slog.String("collected_amount", event.CollectedAmount.String()))
	}
	p.logger.InfoContext(ctx, event.Type, attrs...)
	return nil
}
