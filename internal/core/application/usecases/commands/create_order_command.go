package commands

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a client's request for a new delivery.
// Pricing and the confirmation code are derived by the handler, not passed
// in.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	clientID kernel.UUID

	pickup         kernel.GeoPoint
	dropoff        kernel.GeoPoint
	pickupAddress  string
	dropoffAddress string

	attributes order.Attributes

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order creation request.
func NewCreateOrderCommand(
	orderID, clientID kernel.UUID,
	pickup, dropoff kernel.GeoPoint,
	pickupAddress, dropoffAddress string,
	attributes order.Attributes,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		clientID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		attributes.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	if pickupAddress == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("pickupAddress")
	}
	if dropoffAddress == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("dropoffAddress")
	}

	return CreateOrderCommand{
		orderID:        orderID,
		clientID:       clientID,
		pickup:         pickup,
		dropoff:        dropoff,
		pickupAddress:  pickupAddress,
		dropoffAddress: dropoffAddress,
		attributes:     attributes,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ClientID returns the requesting client's identifier.
func (c CreateOrderCommand) ClientID() kernel.UUID { return c.clientID }

// Pickup returns the pickup coordinates.
func (c CreateOrderCommand) Pickup() kernel.GeoPoint { return c.pickup }

// Dropoff returns the dropoff coordinates.
func (c CreateOrderCommand) Dropoff() kernel.GeoPoint { return c.dropoff }

// PickupAddress returns the human-readable pickup address.
func (c CreateOrderCommand) PickupAddress() string { return c.pickupAddress }

// DropoffAddress returns the human-readable dropoff address.
func (c CreateOrderCommand) DropoffAddress() string { return c.dropoffAddress }

// Attributes returns the physical order attributes.
func (c CreateOrderCommand) Attributes() order.Attributes { return c.attributes }
