package commands

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
)

// UpdateCourierLocationCommandHandler applies device position reports to the
// courier profile. Reports are frequent and only touch the courier row, so
// no per-order lock is involved.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      ports.Clock
}

// NewUpdateCourierLocationCommandHandler creates a handler for position
// reports.
func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
	clock ports.Clock,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes one position report.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
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

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdatePosition(cmd.Position(), h.clock.Now()); err != nil {
		return err
	}

	if cmd.GoOnline() {
		if err = aggregate.GoOnline(); err != nil {
			return err
		}
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
