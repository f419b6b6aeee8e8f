package commands

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/lock"
)

// ConfirmPaymentCommandHandler applies provider callbacks to payment
// attempts under the order's critical section. A settlement re-checks that
// no sibling attempt already settled for the same order, so at most one
// attempt per order ever reaches success even if the provider confirms two
// attempts; late and duplicate callbacks are no-ops.
type ConfirmPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	locks      *lock.KeyedMutex
	publisher  ports.EventPublisher
	clock      ports.Clock
}

// NewConfirmPaymentCommandHandler creates the confirmation handler. The
// keyed mutex must be shared with the initiation handler.
func NewConfirmPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	locks *lock.KeyedMutex,
	publisher ports.EventPublisher,
	clock ports.Clock,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes one provider callback.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()

	// The lock key is the order, not the payment: settlement races with
	// initiation and with sibling attempts of the same order.
	attempt, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return err
	}

	unlock := h.locks.Lock(attempt.OrderID().String())
	defer unlock()

	// Re-read under the lock; a concurrent callback may have settled it.
	attempt, err = paymentRepo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return err
	}

	if cmd.Succeeded() {
		siblings, err := paymentRepo.GetAllByOrder(ctx, attempt.OrderID())
		if err != nil {
			return err
		}
		for _, sibling := range siblings {
			if sibling.IsSettled() && !sibling.ID().IsEqual(attempt.ID()) {
				return errs.NewAlreadyPaidError(attempt.OrderID().String())
			}
		}

		if err = attempt.MarkSucceeded(cmd.ProviderTxID(), h.clock.Now()); err != nil {
			return err
		}
	} else {
		if err = attempt.MarkFailed(cmd.FailReason(), h.clock.Now()); err != nil {
			return err
		}
	}

	if err = paymentRepo.Update(ctx, attempt); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, attempt.DrainEvents())
	return nil
}
