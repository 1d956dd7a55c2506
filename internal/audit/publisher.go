package audit

import (
	"context"
	"log/slog"

	"roster/pkg/requestcontext"
)

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. Publishing is best effort: a
// sink failure is logged and never fails the registry operation.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// Emit stamps the event with request time and id, then hands it to the store.
func (p *Publisher) Emit(ctx context.Context, action Action, subject string) {
	if p == nil || p.store == nil {
		return
	}
	event := Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		Subject:   subject,
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := p.store.Append(ctx, event); err != nil && p.logger != nil {
		p.logger.WarnContext(ctx, "failed to publish audit event",
			"action", string(action),
			"subject", subject,
			"error", err,
		)
	}
}
