package commands

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/lock"
)

// TransitionOrderCommandHandler drives every non-assignment lifecycle
// transition through the aggregate's state machine, inside the same
// per-order critical section the assignment path uses. Racing transitions
// (a client cancelling while the courier marks delivered) resolve by lock
// order: the loser fails the precondition check, which is a normal outcome.
//
// When a transition ends the delivery (delivered or cancelled after
// assignment), the courier's active load and outcome window update in the
// same transaction.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	locks      *lock.KeyedMutex
	publisher  ports.EventPublisher
	clock      ports.Clock
}

// NewTransitionOrderCommandHandler creates the transition handler. The keyed
// mutex must be shared with the assignment handler.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	locks *lock.KeyedMutex,
	publisher ports.EventPublisher,
	clock ports.Clock,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes one transition request.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	hadCourier := aggregate.Courier() != nil

	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor(), cmd.Params(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if aggregate.Status().IsTerminal() && hadCourier {
		if err = h.releaseCourier(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, aggregate.DrainEvents())
	return nil
}

// releaseCourier frees the courier's delivery slot and records the outcome
// once the order reached a terminal status.
func (h TransitionOrderCommandHandler) releaseCourier(ctx context.Context, uow UoW, aggregate *order.Order) error {
	courierRepo := uow.CourierRepository()

	assigned, err := courierRepo.Get(ctx, *aggregate.Courier())
	if err != nil {
		return err
	}

	completed := aggregate.Status() == order.Delivered
	if err = assigned.CompleteDelivery(aggregate.ID(), completed, h.clock.Now()); err != nil {
		return err
	}

	return courierRepo.Update(ctx, assigned)
}
