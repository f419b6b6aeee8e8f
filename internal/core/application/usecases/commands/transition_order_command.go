package commands

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a lifecycle transition request: pickup,
// in-transit, delivery with the confirmation code, or cancellation with a
// reason. Assignment is not reachable through it.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   order.Actor

	note             string
	confirmationCode string
	cancelReason     string
	at               *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// TransitionOrderParams carries the optional inputs of a transition request.
type TransitionOrderParams struct {
	Note             string
	ConfirmationCode string
	CancelReason     string
	At               *kernel.GeoPoint
}

// NewTransitionOrderCommand creates a validated transition request.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actor order.Actor,
	params TransitionOrderParams,
) (TransitionOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
		actor.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID:          orderID,
		target:           target,
		actor:            actor,
		note:             params.Note,
		confirmationCode: params.ConfirmationCode,
		cancelReason:     params.CancelReason,
		at:               params.At,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status { return c.target }

// Actor returns who drives the transition.
func (c TransitionOrderCommand) Actor() order.Actor { return c.actor }

// Params returns the optional transition inputs.
func (c TransitionOrderCommand) Params() order.TransitionParams {
	return order.TransitionParams{
		Note:             c.note,
		ConfirmationCode: c.confirmationCode,
		CancelReason:     c.cancelReason,
		At:               c.at,
	}
}
