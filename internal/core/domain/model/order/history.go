package order

import (
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
)

// TransitionRecord is the immutable audit entry written for every successful
// status transition. Records are append-only: the aggregate never mutates or
// removes them, and the repository persists them alongside the order.
type TransitionRecord struct {
	id         kernel.UUID
	previous   Status
	next       Status
	actor      Actor
	note       string
	at         *kernel.GeoPoint
	occurredAt time.Time
}

// RestoreTransitionRecord rebuilds a record from persistence.
func RestoreTransitionRecord(
	id kernel.UUID,
	previous, next Status,
	actor Actor,
	note string,
	at *kernel.GeoPoint,
	occurredAt time.Time,
) TransitionRecord {
	return TransitionRecord{
		id:         id,
		previous:   previous,
		next:       next,
		actor:      actor,
		note:       note,
		at:         at,
		occurredAt: occurredAt,
	}
}

func newTransitionRecord(previous, next Status, actor Actor, note string, at *kernel.GeoPoint, occurredAt time.Time) TransitionRecord {
	return TransitionRecord{
		id:         kernel.NewUUID(),
		previous:   previous,
		next:       next,
		actor:      actor,
		note:       note,
		at:         at,
		occurredAt: occurredAt,
	}
}

// ID returns the record's identifier.
func (r TransitionRecord) ID() kernel.UUID {
	return r.id
}

// Previous returns the status before the transition.
func (r TransitionRecord) Previous() Status {
	return r.previous
}

// Next returns the status after the transition.
func (r TransitionRecord) Next() Status {
	return r.next
}

// Actor returns who drove the transition.
func (r TransitionRecord) Actor() Actor {
	return r.actor
}

// Note returns the optional free-text note.
func (r TransitionRecord) Note() string {
	return r.note
}

// At returns the optional position where the transition happened,
// e.g. the courier's location at pickup.
func (r TransitionRecord) At() *kernel.GeoPoint {
	return r.at
}

// OccurredAt returns the transition timestamp.
func (r TransitionRecord) OccurredAt() time.Time {
	return r.occurredAt
}
