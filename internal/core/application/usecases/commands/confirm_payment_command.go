package commands

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents the provider's callback settling or
// failing a payment attempt. Providers retry callbacks, so handling must be
// idempotent: replaying a settlement with the same transaction reference is
// a no-op.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID    kernel.UUID
	succeeded    bool
	providerTxID string
	failReason   string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a validated confirmation request.
// Settlements require the provider's transaction reference.
func NewConfirmPaymentCommand(
	paymentID kernel.UUID,
	succeeded bool,
	providerTxID, failReason string,
) (ConfirmPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}
	if succeeded && providerTxID == "" {
		return ConfirmPaymentCommand{}, errs.NewValueIsRequiredError("providerTxID")
	}

	return ConfirmPaymentCommand{
		paymentID:    paymentID,
		succeeded:    succeeded,
		providerTxID: providerTxID,
		failReason:   failReason,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// PaymentID returns the attempt being confirmed.
func (c ConfirmPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// Succeeded reports whether the provider settled the attempt.
func (c ConfirmPaymentCommand) Succeeded() bool { return c.succeeded }

// ProviderTxID returns the provider's transaction reference.
func (c ConfirmPaymentCommand) ProviderTxID() string { return c.providerTxID }

// FailReason returns the provider's failure reason, if any.
func (c ConfirmPaymentCommand) FailReason() string { return c.failReason }
