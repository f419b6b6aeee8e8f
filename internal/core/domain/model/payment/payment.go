package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrPaymentIsNotConstructed is returned when using an improperly initialized
// Payment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Method is the payment channel chosen by the client.
type Method string

const (
	MethodOrangeMoney    Method = "orange_money"
	MethodMoovMoney      Method = "moov_money"
	MethodCashOnDelivery Method = "cash_on_delivery"
)

// MethodFromString parses a stored payment method name.
func MethodFromString(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodOrangeMoney, MethodMoovMoney, MethodCashOnDelivery:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("unknown payment method %q", s))
	}
}

// String returns the stored name of the method.
func (m Method) String() string { return string(m) }

// Status is the processing state of a payment attempt.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// StatusFromString parses a stored payment status name.
func StatusFromString(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusSuccess, StatusFailed:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("unknown payment status %q", s))
	}
}

// String returns the stored name of the status.
func (s Status) String() string { return string(s) }

// Payment is one payment attempt against an order. An order can accumulate
// failed attempts, but at most one attempt ever reaches success; that
// invariant is enforced by the payment handlers over the repository, while
// the aggregate enforces its own attempt lifecycle.
//
// Confirmation is idempotent: replaying the provider callback with the same
// transaction reference is a no-op, a different reference on a settled
// attempt is rejected.
type Payment struct {
	id       kernel.UUID
	orderID  kernel.UUID
	clientID kernel.UUID

	amount decimal.Decimal
	method Method
	phone  string

	status       Status
	providerTxID string
	failReason   string

	createdAt  time.Time
	resolvedAt *time.Time

	events []Event

	guard guard.ConstructorGuard
}

// NewPayment opens a pending payment attempt. The amount must match the
// order's total; the caller is responsible for passing it from the order's
// immutable pricing.
func NewPayment(
	id, orderID, clientID kernel.UUID,
	amount decimal.Decimal,
	method Method,
	phone string,
	createdAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		clientID.Validate(),
		method.Validate(),
	); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not positive", amount))
	}
	if method != MethodCashOnDelivery && phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}

	return &Payment{
		id:        id,
		orderID:   orderID,
		clientID:  clientID,
		amount:    amount,
		method:    method,
		phone:     phone,
		status:    StatusPending,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the method is one of the known channels.
func (m Method) Validate() error {
	_, err := MethodFromString(string(m))
	return err
}

// RestorePaymentParams carries the persisted state needed to rebuild a
// Payment.
type RestorePaymentParams struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	ClientID     kernel.UUID
	Amount       decimal.Decimal
	Method       Method
	Phone        string
	Status       Status
	ProviderTxID string
	FailReason   string
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}

// RestorePayment rebuilds the aggregate from persistence.
func RestorePayment(p RestorePaymentParams) (*Payment, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.Method.Validate(),
	); err != nil {
		return nil, err
	}
	if _, err := StatusFromString(string(p.Status)); err != nil {
		return nil, err
	}

	return &Payment{
		id:           p.ID,
		orderID:      p.OrderID,
		clientID:     p.ClientID,
		amount:       p.Amount,
		method:       p.Method,
		phone:        p.Phone,
		status:       p.Status,
		providerTxID: p.ProviderTxID,
		failReason:   p.FailReason,
		createdAt:    p.CreatedAt,
		resolvedAt:   p.ResolvedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Payment was built through a constructor.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment attempt's identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// OrderID returns the order this attempt pays for.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// ClientID returns the paying client's identifier.
func (p *Payment) ClientID() kernel.UUID { return p.clientID }

// Amount returns the charged amount in CFA francs.
func (p *Payment) Amount() decimal.Decimal { return p.amount }

// Method returns the payment channel.
func (p *Payment) Method() Method { return p.method }

// Phone returns the mobile-money wallet number, empty for cash.
func (p *Payment) Phone() string { return p.phone }

// Status returns the processing state of the attempt.
func (p *Payment) Status() Status { return p.status }

// ProviderTxID returns the provider's transaction reference once settled.
func (p *Payment) ProviderTxID() string { return p.providerTxID }

// FailReason returns the provider's failure reason, if any.
func (p *Payment) FailReason() string { return p.failReason }

// CreatedAt returns when the attempt was opened.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// ResolvedAt returns when the attempt settled or failed, nil while pending.
func (p *Payment) ResolvedAt() *time.Time { return p.resolvedAt }

// IsSettled reports whether money actually moved on this attempt.
func (p *Payment) IsSettled() bool { return p.status == StatusSuccess }

// DrainEvents returns the buffered events and clears the buffer.
func (p *Payment) DrainEvents() []Event {
	events := p.events
	p.events = nil
	return events
}

// MarkSucceeded settles the attempt with the provider's transaction
// reference. Replaying the same reference on a settled attempt is a no-op; a
// different reference is rejected with the already-paid error.
func (p *Payment) MarkSucceeded(providerTxID string, now time.Time) error {
	if providerTxID == "" {
		return errs.NewValueIsRequiredError("providerTxID")
	}

	switch p.status {
	case StatusSuccess:
		if p.providerTxID == providerTxID {
			return nil
		}
		return errs.NewAlreadyPaidError(p.orderID.String())
	case StatusFailed:
		return errs.NewOrderNotPayableError(p.orderID.String(), "payment attempt already failed")
	}

	p.status = StatusSuccess
	p.providerTxID = providerTxID
	p.resolvedAt = &now

	p.events = append(p.events, SucceededEvent{
		PaymentID:    p.id.String(),
		OrderID:      p.orderID.String(),
		Amount:       p.amount.String(),
		Method:       p.method.String(),
		ProviderTxID: providerTxID,
		At:           now,
	})

	return nil
}

// MarkFailed records a provider failure. A failed attempt is dead; retrying
// means opening a new attempt.
func (p *Payment) MarkFailed(reason string, now time.Time) error {
	switch p.status {
	case StatusSuccess:
		return errs.NewAlreadyPaidError(p.orderID.String())
	case StatusFailed:
		return nil
	}

	p.status = StatusFailed
	p.failReason = reason
	p.resolvedAt = &now
	return nil
}
