package ports

import (
	"context"
	"time"
)

// DomainEvent is the minimal shape both order and payment events share.
type DomainEvent interface {
	Name() string
	OccurredAt() time.Time
}

// EventPublisher routes domain events drained from aggregates after a
// successful commit to the notification pipeline. Publishing is best-effort:
// handlers log failures but never roll back committed state over them.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}
