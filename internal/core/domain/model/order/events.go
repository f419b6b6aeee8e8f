package order

import (
	"time"
)

// Event is a lifecycle fact buffered on the aggregate and drained by the
// command handlers after a successful commit. The core never dispatches
// events itself; routing them to the notification collaborator is the
// caller's job.
type Event interface {
	// Name returns the stable event name used as the outbound topic key.
	Name() string

	// OccurredAt returns the event timestamp.
	OccurredAt() time.Time
}

// Snapshot is the exported, serializable view of an order carried in event
// payloads and returned by the HTTP layer.
type Snapshot struct {
	ID                 string     `json:"id"`
	ClientID           string     `json:"client_id"`
	CourierID          *string    `json:"courier_id,omitempty"`
	Status             string     `json:"status"`
	PickupLatitude     float64    `json:"pickup_latitude"`
	PickupLongitude    float64    `json:"pickup_longitude"`
	PickupAddress      string     `json:"pickup_address"`
	DropoffLatitude    float64    `json:"dropoff_latitude"`
	DropoffLongitude   float64    `json:"dropoff_longitude"`
	DropoffAddress     string     `json:"dropoff_address"`
	OrderType          string     `json:"order_type"`
	TotalPrice         string     `json:"total_price"`
	CourierEarnings    string     `json:"courier_earnings"`
	RecipientConfirmed bool       `json:"recipient_confirmed"`
	CancelReason       string     `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty"`
}

// AssignedEvent is emitted when a courier claims an order.
type AssignedEvent struct {
	Order     Snapshot  `json:"order"`
	CourierID string    `json:"courier_id"`
	At        time.Time `json:"at"`
}

// Name implements Event.
func (AssignedEvent) Name() string { return "order.assigned" }

// OccurredAt implements Event.
func (e AssignedEvent) OccurredAt() time.Time { return e.At }

// StatusChangedEvent is emitted on every successful transition, including
// assignment.
type StatusChangedEvent struct {
	Order    Snapshot  `json:"order"`
	Previous string    `json:"previous"`
	Next     string    `json:"next"`
	At       time.Time `json:"at"`
}

// Name implements Event.
func (StatusChangedEvent) Name() string { return "order.status_changed" }

// OccurredAt implements Event.
func (e StatusChangedEvent) OccurredAt() time.Time { return e.At }
