package order

import (
	"fmt"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	pending ──┬──> assigned ──> picked_up ──┬──> in_transit ──> delivered
//	          │        │                    │
//	          │        │                    └──> delivered
//	          └────────┴──> cancelled
//
// pending is the only initial state; delivered and cancelled are terminal.
// Any transition outside the table fails with errs.ErrInvalidTransition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order waits for a courier.
	Pending

	// Assigned means a courier has claimed the order.
	Assigned

	// PickedUp means the assigned courier has collected the parcel.
	PickedUp

	// InTransit means the parcel is on its way to the dropoff point.
	InTransit

	// Delivered is a terminal status reached only with a matching
	// confirmation code.
	Delivered

	// Cancelled is a terminal status; a non-empty reason is required.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// allowedTransitions is the closed transition table. Preconditions beyond
// the (from, to) pair (actor identity, confirmation code, cancel reason)
// are enforced by the Order methods.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Delivered},
		InTransit: {Delivered},
	}
}

// StatusFromString parses the persisted/user-facing status name.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the (s, target) pair is in the allowed
// transition table. It does not check actor or confirmation-code
// preconditions.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the transition is allowed, or an
// InvalidTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String(), "")
	}
	return target, nil
}

// ValidateCanHaveCourier checks the invariant that a courier reference is
// present exactly on the post-assignment statuses. A cancelled order may
// carry a courier (cancelled after assignment) or not (cancelled while
// pending). Used when restoring orders from persistence.
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	requiresCourier := s == Assigned || s == PickedUp || s == InTransit || s == Delivered
	if hasCourier && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must not have a courier", s))
	}
	if !hasCourier && requiresCourier {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must have a courier", s))
	}
	return nil
}
