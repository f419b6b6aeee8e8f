package commands

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/lock"
)

// AssignOrderCommandHandler resolves the race between concurrent claim
// attempts for the same order. All preconditions are re-checked inside a
// per-order critical section wrapped around the transaction, so two couriers
// reading status=pending at the same time cannot both claim the order: the
// loser re-reads the already-assigned row and fails.
//
// Preconditions, checked under the lock:
//   - order exists, is pending and has no courier link
//   - courier exists, is active, online, has a known position and zero
//     orders in assigned/picked_up/in_transit
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	locks      *lock.KeyedMutex
	publisher  ports.EventPublisher
	clock      ports.Clock
}

// NewAssignOrderCommandHandler creates the assignment handler. The keyed
// mutex must be the same instance across every handler mutating orders, so
// all per-order critical sections serialize against each other.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	locks *lock.KeyedMutex,
	publisher ports.EventPublisher,
	clock ports.Clock,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes one claim attempt. On success the courier link and the
// pending->assigned transition commit atomically and the drained lifecycle
// events are published.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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
	courierRepo := uow.CourierRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	claimant, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	activeCount, err := orderRepo.CountActiveByCourier(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if activeCount > 0 {
		return errs.NewCourierUnavailableError(cmd.CourierID().String(),
			"already has an active delivery")
	}

	if err = claimant.BeginDelivery(); err != nil {
		return err
	}

	if err = aggregate.Assign(cmd.CourierID(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, claimant); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, aggregate.DrainEvents())
	return nil
}
