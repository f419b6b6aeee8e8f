package commands

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/payment"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/lock"
)

// InitiatePaymentCommandHandler opens payment attempts under the per-order
// critical section. Every check runs after the lock is held — ownership,
// payable status, no settled attempt yet — closing the window where two
// simultaneous initiations both pass an unlocked pre-check. The guarantee:
// at most one attempt per order ever reaches success.
type InitiatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	locks      *lock.KeyedMutex
	clock      ports.Clock
}

// NewInitiatePaymentCommandHandler creates the initiation handler. The keyed
// mutex must be shared with the other order-mutating handlers.
func NewInitiatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	locks *lock.KeyedMutex,
	clock ports.Clock,
) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clock,
	}
}

// Handle processes one initiation attempt and returns the opened pending
// payment.
func (h InitiatePaymentCommandHandler) Handle(ctx context.Context, cmd InitiatePaymentCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !aggregate.ClientID().IsEqual(cmd.ClientID()) {
		return nil, errs.NewUnauthorizedError(cmd.ClientID().String(),
			"order "+cmd.OrderID().String())
	}

	if aggregate.Status() != order.Pending && aggregate.Status() != order.Assigned {
		return nil, errs.NewOrderNotPayableError(cmd.OrderID().String(),
			aggregate.Status().String())
	}

	paymentRepo := uow.PaymentRepository()

	attempts, err := paymentRepo.GetAllByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	for _, attempt := range attempts {
		if attempt.IsSettled() {
			return nil, errs.NewAlreadyPaidError(cmd.OrderID().String())
		}
	}

	attempt, err := payment.NewPayment(
		cmd.PaymentID(),
		cmd.OrderID(),
		cmd.ClientID(),
		aggregate.Pricing().TotalPrice(),
		cmd.Method(),
		cmd.Phone(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = paymentRepo.Add(ctx, attempt); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return attempt, nil
}
