package commands

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand represents onboarding a new courier onto the
// platform.
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	phone     string
	vehicle   courier.VehicleType

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand creates a validated onboarding request.
func NewRegisterCourierCommand(
	courierID kernel.UUID,
	name, phone string,
	vehicle courier.VehicleType,
) (RegisterCourierCommand, error) {
	if err := errors.Join(
		courierID.Validate(),
		vehicle.Validate(),
	); err != nil {
		return RegisterCourierCommand{}, err
	}
	if name == "" {
		return RegisterCourierCommand{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return RegisterCourierCommand{}, errs.NewValueIsRequiredError("phone")
	}

	return RegisterCourierCommand{
		courierID: courierID,
		name:      name,
		phone:     phone,
		vehicle:   vehicle,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

// CourierID returns the identifier the new profile will carry.
func (c RegisterCourierCommand) CourierID() kernel.UUID { return c.courierID }

// Name returns the courier's display name.
func (c RegisterCourierCommand) Name() string { return c.name }

// Phone returns the courier's contact number.
func (c RegisterCourierCommand) Phone() string { return c.phone }

// Vehicle returns the declared vehicle type.
func (c RegisterCourierCommand) Vehicle() courier.VehicleType { return c.vehicle }
