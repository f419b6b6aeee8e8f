package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/services"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
)

// DispatchPendingOrdersCommandHandler runs the proactive matching sweep. It
// reads outside any lock — the pool and the pending set are a snapshot — and
// funnels every actual claim through the assignment handler, which re-checks
// all preconditions under the per-order lock. A courier snatched away
// between the snapshot and the claim is a normal per-order failure, not a
// sweep failure.
type DispatchPendingOrdersCommandHandler struct {
	uowFactory    UoWFactory
	matcher       services.Matcher
	assignHandler AssignOrderCommandHandler
	radiusKm      float64
	logger        *slog.Logger
}

// NewDispatchPendingOrdersCommandHandler creates the sweep handler.
// radiusKm is the search radius around each order's pickup point.
func NewDispatchPendingOrdersCommandHandler(
	uowFactory UoWFactory,
	matcher services.Matcher,
	assignHandler AssignOrderCommandHandler,
	radiusKm float64,
	logger *slog.Logger,
) DispatchPendingOrdersCommandHandler {
	return DispatchPendingOrdersCommandHandler{
		uowFactory:    uowFactory,
		matcher:       matcher,
		assignHandler: assignHandler,
		radiusKm:      radiusKm,
		logger:        logger,
	}
}

// Handle runs one sweep over the pending orders.
func (h DispatchPendingOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchPendingOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, err := h.snapshotPending(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range pending {
		if err := h.dispatchOne(ctx, aggregate); err != nil {
			return err
		}
	}
	return nil
}

// snapshotPending reads the pending orders in a short read-only transaction.
func (h DispatchPendingOrdersCommandHandler) snapshotPending(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllPending(ctx)
}

// dispatchOne matches one order and claims the best candidate. Per-order
// contention failures are logged and swallowed; infrastructure errors
// propagate.
func (h DispatchPendingOrdersCommandHandler) dispatchOne(ctx context.Context, aggregate *order.Order) error {
	pool, err := h.snapshotPool(ctx, aggregate)
	if err != nil {
		return err
	}

	candidate, err := h.matcher.FindBest(pool, aggregate.Pickup(), aggregate.Attributes(), h.radiusKm)
	if errors.Is(err, services.ErrNoCandidates) {
		h.logger.DebugContext(ctx, "no candidate courier for order",
			slog.String("order_id", aggregate.ID().String()),
		)
		return nil
	}
	if err != nil {
		return err
	}

	cmd, err := NewAssignOrderCommand(aggregate.ID(), candidate.Courier.ID())
	if err != nil {
		return err
	}

	err = h.assignHandler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrOrderNotAssignable), errors.Is(err, errs.ErrCourierUnavailable):
		h.logger.InfoContext(ctx, "order claimed by someone else during sweep",
			slog.String("order_id", aggregate.ID().String()),
			slog.Any("reason", err),
		)
		return nil
	case err != nil:
		return err
	}

	h.logger.InfoContext(ctx, "order dispatched",
		slog.String("order_id", aggregate.ID().String()),
		slog.String("courier_id", candidate.Courier.ID().String()),
		slog.Float64("score", candidate.Score.Total),
	)
	return nil
}

// snapshotPool reads the available couriers around the pickup point.
func (h DispatchPendingOrdersCommandHandler) snapshotPool(ctx context.Context, aggregate *order.Order) ([]*courier.Courier, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.CourierRepository().GetAvailableWithin(ctx, aggregate.Pickup(), h.radiusKm)
}
