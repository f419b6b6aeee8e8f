package errs

import (
	"errors"
	"fmt"
)

// Dispatch error taxonomy. All of these are recoverable, caller-facing
// failures: the HTTP layer maps each sentinel to a status code and the
// message to the response body. None of them is fatal to the process.
var (
	// ErrInvalidTransition is the sentinel for status changes outside the
	// allowed transition table, or with a failed precondition (wrong
	// confirmation code, wrong actor).
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrOrderNotAssignable is the sentinel for assignment attempts on an
	// order that is not pending or already has a courier.
	ErrOrderNotAssignable = errors.New("order is not assignable")

	// ErrCourierUnavailable is the sentinel for assignment attempts with a
	// courier that is suspended, inactive, or already on an active delivery.
	ErrCourierUnavailable = errors.New("courier is unavailable")

	// ErrOrderNotPayable is the sentinel for payment initiation on an order
	// whose status excludes payment.
	ErrOrderNotPayable = errors.New("order is not payable")

	// ErrAlreadyPaid is the sentinel for payment initiation when a
	// successful payment already exists. Duplicate initiation is a no-op.
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrUnauthorized is the sentinel for actors operating on resources
	// they do not own.
	ErrUnauthorized = errors.New("actor is not authorized")
)

// InvalidTransitionError reports a rejected order status change.
// Wraps ErrInvalidTransition so callers can match with errors.Is.
type InvalidTransitionError struct {
	From   string
	To     string
	Reason string
}

// NewInvalidTransitionError creates an InvalidTransitionError.
// Reason may be empty when the pair is simply absent from the transition table.
func NewInvalidTransitionError(from, to, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return sanitize(fmt.Sprintf("%s: %s -> %s (%s)", ErrInvalidTransition, e.From, e.To, e.Reason))
	}
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// OrderNotAssignableError reports an assignment attempt on an order that
// cannot accept a courier. Wraps ErrOrderNotAssignable.
type OrderNotAssignableError struct {
	OrderID string
	Detail  string
}

// NewOrderNotAssignableError creates an OrderNotAssignableError.
func NewOrderNotAssignableError(orderID, detail string) *OrderNotAssignableError {
	return &OrderNotAssignableError{OrderID: orderID, Detail: detail}
}

func (e *OrderNotAssignableError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s: %s", ErrOrderNotAssignable, e.OrderID, e.Detail))
}

func (e *OrderNotAssignableError) Unwrap() error {
	return ErrOrderNotAssignable
}

// CourierUnavailableError reports an assignment attempt with a courier that
// cannot take the order. Wraps ErrCourierUnavailable.
type CourierUnavailableError struct {
	CourierID string
	Detail    string
}

// NewCourierUnavailableError creates a CourierUnavailableError.
func NewCourierUnavailableError(courierID, detail string) *CourierUnavailableError {
	return &CourierUnavailableError{CourierID: courierID, Detail: detail}
}

func (e *CourierUnavailableError) Error() string {
	return sanitize(fmt.Sprintf("%s: courier %s: %s", ErrCourierUnavailable, e.CourierID, e.Detail))
}

func (e *CourierUnavailableError) Unwrap() error {
	return ErrCourierUnavailable
}

// OrderNotPayableError reports a payment initiation on an order whose status
// excludes payment. Wraps ErrOrderNotPayable.
type OrderNotPayableError struct {
	OrderID string
	Status  string
}

// NewOrderNotPayableError creates an OrderNotPayableError.
func NewOrderNotPayableError(orderID, status string) *OrderNotPayableError {
	return &OrderNotPayableError{OrderID: orderID, Status: status}
}

func (e *OrderNotPayableError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s is %s", ErrOrderNotPayable, e.OrderID, e.Status))
}

func (e *OrderNotPayableError) Unwrap() error {
	return ErrOrderNotPayable
}

// AlreadyPaidError reports a duplicate payment initiation for an order that
// already has a successful payment. Wraps ErrAlreadyPaid.
type AlreadyPaidError struct {
	OrderID string
}

// NewAlreadyPaidError creates an AlreadyPaidError.
func NewAlreadyPaidError(orderID string) *AlreadyPaidError {
	return &AlreadyPaidError{OrderID: orderID}
}

func (e *AlreadyPaidError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s", ErrAlreadyPaid, e.OrderID))
}

func (e *AlreadyPaidError) Unwrap() error {
	return ErrAlreadyPaid
}

// UnauthorizedError reports an actor operating on a resource it does not own.
// Wraps ErrUnauthorized.
type UnauthorizedError struct {
	ActorID  string
	Resource string
}

// NewUnauthorizedError creates an UnauthorizedError.
func NewUnauthorizedError(actorID, resource string) *UnauthorizedError {
	return &UnauthorizedError{ActorID: actorID, Resource: resource}
}

func (e *UnauthorizedError) Error() string {
	return sanitize(fmt.Sprintf("%s: actor %s on %s", ErrUnauthorized, e.ActorID, e.Resource))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}
