package commands

import (
	"context"
	"log/slog"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
)

// publishEvents routes drained domain events to the publisher after a
// successful commit. Publishing is best-effort: the state change already
// committed, so a broken pipeline is logged and never surfaced to the
// caller.
func publishEvents[E ports.DomainEvent](ctx context.Context, publisher ports.EventPublisher, events []E) {
	if publisher == nil || len(events) == 0 {
		return
	}

	converted := make([]ports.DomainEvent, len(events))
	for i, e := range events {
		converted[i] = e
	}

	if err := publisher.Publish(ctx, converted...); err != nil {
		slog.WarnContext(ctx, "failed to publish domain events",
			slog.Int("count", len(events)),
			slog.Any("error", err),
		)
	}
}
