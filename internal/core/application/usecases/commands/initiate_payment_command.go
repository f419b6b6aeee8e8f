package commands

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/payment"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

// InitiatePaymentCommand represents a client opening a payment attempt for
// their order. The amount is never passed in: it always comes from the
// order's immutable pricing.
type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	orderID   kernel.UUID
	clientID  kernel.UUID
	method    payment.Method
	phone     string

	guard guard.ConstructorGuard
}

// NewInitiatePaymentCommand creates a validated payment initiation request.
func NewInitiatePaymentCommand(
	paymentID, orderID, clientID kernel.UUID,
	method payment.Method,
	phone string,
) (InitiatePaymentCommand, error) {
	if err := errors.Join(
		paymentID.Validate(),
		orderID.Validate(),
		clientID.Validate(),
		method.Validate(),
	); err != nil {
		return InitiatePaymentCommand{}, err
	}

	if method != payment.MethodCashOnDelivery && phone == "" {
		return InitiatePaymentCommand{}, errs.NewValueIsRequiredError("phone")
	}

	return InitiatePaymentCommand{
		paymentID: paymentID,
		orderID:   orderID,
		clientID:  clientID,
		method:    method,
		phone:     phone,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier the new attempt will carry.
func (c InitiatePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// OrderID returns the order being paid for.
func (c InitiatePaymentCommand) OrderID() kernel.UUID { return c.orderID }

// ClientID returns the paying client.
func (c InitiatePaymentCommand) ClientID() kernel.UUID { return c.clientID }

// Method returns the chosen payment channel.
func (c InitiatePaymentCommand) Method() payment.Method { return c.method }

// Phone returns the mobile-money wallet number, empty for cash.
func (c InitiatePaymentCommand) Phone() string { return c.phone }
