package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the dispatch engine. It owns the lifecycle
// state machine, the immutable pricing and confirmation code issued at
// creation, the append-only transition history, and the buffered lifecycle
// events drained by command handlers after commit.
//
// Invariants:
//   - courier reference is non-nil exactly on post-assignment statuses
//     (a cancelled order keeps its courier if it was cancelled after assignment)
//   - pricing and confirmation code never change after creation
//   - every status change goes through the transition table; anything else
//     fails with errs.ErrInvalidTransition
//   - orders are never deleted, only soft-archived once terminal
type Order struct {
	id       kernel.UUID
	clientID kernel.UUID

	courierID *kernel.UUID

	pickup         kernel.GeoPoint
	dropoff        kernel.GeoPoint
	pickupAddress  string
	dropoffAddress string

	attributes Attributes
	pricing    Pricing

	confirmationCode   string
	recipientConfirmed bool

	status       Status
	cancelReason string

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	inTransitAt *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	archivedAt  *time.Time

	history []TransitionRecord
	events  []Event

	guard guard.ConstructorGuard
}

// NewOrder creates a pending order. The confirmation code and the pricing
// breakdown are fixed here and immutable afterwards. createdAt comes from the
// caller's injected clock.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	pickup, dropoff kernel.GeoPoint,
	pickupAddress, dropoffAddress string,
	attributes Attributes,
	pricing Pricing,
	confirmationCode string,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		clientID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		attributes.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}

	if confirmationCode == "" {
		return nil, errs.NewValueIsRequiredError("confirmationCode")
	}
	if pickupAddress == "" {
		return nil, errs.NewValueIsRequiredError("pickupAddress")
	}
	if dropoffAddress == "" {
		return nil, errs.NewValueIsRequiredError("dropoffAddress")
	}

	return &Order{
		id:               id,
		clientID:         clientID,
		pickup:           pickup,
		dropoff:          dropoff,
		pickupAddress:    pickupAddress,
		dropoffAddress:   dropoffAddress,
		attributes:       attributes,
		pricing:          pricing,
		confirmationCode: confirmationCode,
		status:           Pending,
		createdAt:        createdAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrderParams carries the persisted state needed to rebuild an Order.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	ClientID           kernel.UUID
	CourierID          *kernel.UUID
	Pickup             kernel.GeoPoint
	Dropoff            kernel.GeoPoint
	PickupAddress      string
	DropoffAddress     string
	Attributes         Attributes
	Pricing            Pricing
	ConfirmationCode   string
	RecipientConfirmed bool
	Status             Status
	CancelReason       string
	CreatedAt          time.Time
	AssignedAt         *time.Time
	PickedUpAt         *time.Time
	InTransitAt        *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	ArchivedAt         *time.Time
	History            []TransitionRecord
}

// RestoreOrder rebuilds an aggregate from persistence, re-checking the
// status/courier consistency invariant without replaying transitions.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.ClientID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := p.Status.ValidateCanHaveCourier(p.CourierID != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:                 p.ID,
		clientID:           p.ClientID,
		courierID:          p.CourierID,
		pickup:             p.Pickup,
		dropoff:            p.Dropoff,
		pickupAddress:      p.PickupAddress,
		dropoffAddress:     p.DropoffAddress,
		attributes:         p.Attributes,
		pricing:            p.Pricing,
		confirmationCode:   p.ConfirmationCode,
		recipientConfirmed: p.RecipientConfirmed,
		status:             p.Status,
		cancelReason:       p.CancelReason,
		createdAt:          p.CreatedAt,
		assignedAt:         p.AssignedAt,
		pickedUpAt:         p.PickedUpAt,
		inTransitAt:        p.InTransitAt,
		deliveredAt:        p.DeliveredAt,
		cancelledAt:        p.CancelledAt,
		archivedAt:         p.ArchivedAt,
		history:            p.History,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// GenerateConfirmationCode issues the one-time four-digit code checked at
// delivery.
func GenerateConfirmationCode() string {
	return fmt.Sprintf("%04d", rand.IntN(10000)) //nolint:gosec // not a secret key, a delivery handshake
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// ClientID returns the owning client's identifier.
func (o *Order) ClientID() kernel.UUID { return o.clientID }

// Courier returns the assigned courier's identifier, nil before assignment.
func (o *Order) Courier() *kernel.UUID { return o.courierID }

// Pickup returns the pickup coordinates.
func (o *Order) Pickup() kernel.GeoPoint { return o.pickup }

// Dropoff returns the dropoff coordinates.
func (o *Order) Dropoff() kernel.GeoPoint { return o.dropoff }

// PickupAddress returns the human-readable pickup address.
func (o *Order) PickupAddress() string { return o.pickupAddress }

// DropoffAddress returns the human-readable dropoff address.
func (o *Order) DropoffAddress() string { return o.dropoffAddress }

// Attributes returns the physical order attributes used by the scorer.
func (o *Order) Attributes() Attributes { return o.attributes }

// Pricing returns the immutable monetary breakdown.
func (o *Order) Pricing() Pricing { return o.pricing }

// ConfirmationCode returns the delivery handshake code.
func (o *Order) ConfirmationCode() string { return o.confirmationCode }

// RecipientConfirmed reports whether delivery was confirmed with the code.
func (o *Order) RecipientConfirmed() bool { return o.recipientConfirmed }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CancelReason returns the reason recorded at cancellation, if any.
func (o *Order) CancelReason() string { return o.cancelReason }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// AssignedAt returns when the order was assigned, nil before that.
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }

// PickedUpAt returns when the parcel was collected, nil before that.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// InTransitAt returns when the parcel went in transit, nil before that.
func (o *Order) InTransitAt() *time.Time { return o.inTransitAt }

// DeliveredAt returns the delivery timestamp, nil before that.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns the cancellation timestamp, nil unless cancelled.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// ArchivedAt returns the soft-archive timestamp, nil while live.
func (o *Order) ArchivedAt() *time.Time { return o.archivedAt }

// History returns the append-only transition records, oldest first.
func (o *Order) History() []TransitionRecord { return o.history }

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// DrainEvents returns the buffered lifecycle events and clears the buffer.
// Command handlers call it once, after a successful commit.
func (o *Order) DrainEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// Assign links a courier and moves pending -> assigned. Courier eligibility
// (active, not suspended, no other active delivery) is the assignment
// coordinator's responsibility; the aggregate only enforces its own state.
func (o *Order) Assign(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.status != Pending {
		return errs.NewOrderNotAssignableError(o.id.String(),
			fmt.Sprintf("status is %s", o.status))
	}
	if o.courierID != nil {
		return errs.NewOrderNotAssignableError(o.id.String(), "courier already linked")
	}

	actor := Actor{id: courierID, role: RoleCourier}
	o.courierID = &courierID
	o.applyTransition(Assigned, actor, "", nil, now)
	o.assignedAt = &now

	o.events = append(o.events, AssignedEvent{
		Order:     o.ToSnapshot(),
		CourierID: courierID.String(),
		At:        now,
	})

	return nil
}

// MarkPickedUp moves assigned -> picked_up. Only the assigned courier may
// call it.
func (o *Order) MarkPickedUp(actor Actor, note string, at *kernel.GeoPoint, now time.Time) error {
	if err := o.requireAssignedCourier(actor, PickedUp); err != nil {
		return err
	}
	if o.status != Assigned {
		return errs.NewInvalidTransitionError(o.status.String(), PickedUp.String(), "")
	}

	o.applyTransition(PickedUp, actor, note, at, now)
	o.pickedUpAt = &now
	return nil
}

// MarkInTransit moves picked_up -> in_transit. Only the assigned courier may
// call it.
func (o *Order) MarkInTransit(actor Actor, note string, at *kernel.GeoPoint, now time.Time) error {
	if err := o.requireAssignedCourier(actor, InTransit); err != nil {
		return err
	}
	if o.status != PickedUp {
		return errs.NewInvalidTransitionError(o.status.String(), InTransit.String(), "")
	}

	o.applyTransition(InTransit, actor, note, at, now)
	o.inTransitAt = &now
	return nil
}

// Deliver moves picked_up/in_transit -> delivered. The presented code must
// match the one issued at creation; recipient confirmation is only ever set
// here, after the match.
func (o *Order) Deliver(actor Actor, confirmationCode, note string, at *kernel.GeoPoint, now time.Time) error {
	if actor.Role() == RoleCourier {
		if err := o.requireAssignedCourier(actor, Delivered); err != nil {
			return err
		}
	}

	if o.status != PickedUp && o.status != InTransit {
		return errs.NewInvalidTransitionError(o.status.String(), Delivered.String(), "")
	}

	if confirmationCode != o.confirmationCode {
		return errs.NewInvalidTransitionError(o.status.String(), Delivered.String(),
			"confirmation code mismatch")
	}

	o.recipientConfirmed = true
	o.deliveredAt = &now
	o.applyTransition(Delivered, actor, note, at, now)
	return nil
}

// Cancel moves pending/assigned -> cancelled with a mandatory reason.
// From pending any actor with cancel rights may cancel; once assigned only
// the owning client or an admin may.
func (o *Order) Cancel(actor Actor, reason string, now time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancelReason")
	}

	switch o.status {
	case Pending:
		if actor.Role() == RoleCourier {
			return errs.NewInvalidTransitionError(o.status.String(), Cancelled.String(),
				"couriers cannot cancel orders")
		}
	case Assigned:
		if actor.Role() != RoleClient && actor.Role() != RoleAdmin {
			return errs.NewInvalidTransitionError(o.status.String(), Cancelled.String(),
				"only the client or an admin can cancel an assigned order")
		}
	default:
		return errs.NewInvalidTransitionError(o.status.String(), Cancelled.String(), "")
	}

	if actor.Role() == RoleClient && !actor.ID().IsEqual(o.clientID) {
		return errs.NewUnauthorizedError(actor.ID().String(), "order "+o.id.String())
	}

	o.cancelReason = reason
	o.applyTransition(Cancelled, actor, reason, nil, now)
	o.cancelledAt = &now
	return nil
}

// TransitionParams carries the optional inputs of a generic transition
// request coming from the controller layer.
type TransitionParams struct {
	Note             string
	ConfirmationCode string
	CancelReason     string
	At               *kernel.GeoPoint
}

// TransitionTo dispatches a generic transition request to the specific
// lifecycle method. Assignment is excluded: it must go through the
// assignment coordinator, which also checks courier eligibility.
func (o *Order) TransitionTo(target Status, actor Actor, p TransitionParams, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case Assigned:
		return errs.NewInvalidTransitionError(o.status.String(), target.String(),
			"assignment must go through the assign operation")
	case PickedUp:
		return o.MarkPickedUp(actor, p.Note, p.At, now)
	case InTransit:
		return o.MarkInTransit(actor, p.Note, p.At, now)
	case Delivered:
		return o.Deliver(actor, p.ConfirmationCode, p.Note, p.At, now)
	case Cancelled:
		return o.Cancel(actor, p.CancelReason, now)
	default:
		return errs.NewInvalidTransitionError(o.status.String(), target.String(), "")
	}
}

// Archive soft-archives a terminal order. Live orders cannot be archived.
func (o *Order) Archive(now time.Time) error {
	if !o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot archive %s order", o.status))
	}
	if o.archivedAt == nil {
		o.archivedAt = &now
	}
	return nil
}

// ToSnapshot returns the exported serializable view used in event payloads
// and API responses.
func (o *Order) ToSnapshot() Snapshot {
	var courierID *string
	if o.courierID != nil {
		s := o.courierID.String()
		courierID = &s
	}

	return Snapshot{
		ID:                 o.id.String(),
		ClientID:           o.clientID.String(),
		CourierID:          courierID,
		Status:             o.status.String(),
		PickupLatitude:     o.pickup.Latitude(),
		PickupLongitude:    o.pickup.Longitude(),
		PickupAddress:      o.pickupAddress,
		DropoffLatitude:    o.dropoff.Latitude(),
		DropoffLongitude:   o.dropoff.Longitude(),
		DropoffAddress:     o.dropoffAddress,
		OrderType:          string(o.attributes.OrderType),
		TotalPrice:         o.pricing.TotalPrice().String(),
		CourierEarnings:    o.pricing.CourierEarnings().String(),
		RecipientConfirmed: o.recipientConfirmed,
		CancelReason:       o.cancelReason,
		CreatedAt:          o.createdAt,
		DeliveredAt:        o.deliveredAt,
	}
}

// requireAssignedCourier checks the acting courier is the one linked to the
// order.
func (o *Order) requireAssignedCourier(actor Actor, target Status) error {
	if actor.Role() != RoleCourier {
		return errs.NewInvalidTransitionError(o.status.String(), target.String(),
			"only the assigned courier can perform this transition")
	}
	if o.courierID == nil || !actor.ID().IsEqual(*o.courierID) {
		return errs.NewInvalidTransitionError(o.status.String(), target.String(),
			"actor is not the assigned courier")
	}
	return nil
}

// applyTransition records the history entry, buffers the status-changed
// event and flips the status. Callers have already validated preconditions.
func (o *Order) applyTransition(next Status, actor Actor, note string, at *kernel.GeoPoint, now time.Time) {
	previous := o.status
	o.history = append(o.history, newTransitionRecord(previous, next, actor, note, at, now))
	o.status = next

	o.events = append(o.events, StatusChangedEvent{
		Order:    o.ToSnapshot(),
		Previous: previous.String(),
		Next:     next.String(),
		At:       now,
	})
}
