package commands

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand represents one position report from a
// courier's device, optionally flipping availability at the same time (the
// app sends goOnline with the first report of a shift).
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	position  kernel.GeoPoint
	goOnline  bool

	guard guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a validated position report.
func NewUpdateCourierLocationCommand(
	courierID kernel.UUID,
	position kernel.GeoPoint,
	goOnline bool,
) (UpdateCourierLocationCommand, error) {
	if err := errors.Join(
		courierID.Validate(),
		position.Validate(),
	); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		courierID: courierID,
		position:  position,
		goOnline:  goOnline,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c UpdateCourierLocationCommand) CourierID() kernel.UUID { return c.courierID }

// Position returns the reported coordinates.
func (c UpdateCourierLocationCommand) Position() kernel.GeoPoint { return c.position }

// GoOnline reports whether the courier also wants to become available.
func (c UpdateCourierLocationCommand) GoOnline() bool { return c.goOnline }
