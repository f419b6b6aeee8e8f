package commands

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents one courier's attempt to claim one pending
// order. Concurrent attempts for the same order are serialized by the
// handler; at most one of them succeeds.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a validated claim attempt.
func NewAssignOrderCommand(orderID, courierID kernel.UUID) (AssignOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c AssignOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CourierID returns the claiming courier.
func (c AssignOrderCommand) CourierID() kernel.UUID { return c.courierID }
