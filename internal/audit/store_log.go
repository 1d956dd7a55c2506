package audit

import (
	"context"
	"log/slog"
)

// LogStore writes events as structured log lines. It is the sink when no
// broker is configured.
type LogStore struct {
	logger *slog.Logger
}

func NewLogStore(logger *slog.Logger) *LogStore {
	return &LogStore{logger: logger}
}

func (s *LogStore) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, string(event.Action),
		"log_type", "audit",
		"subject", event.Subject,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	)
	return nil
}
