package courier

import (
	"fmt"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
)

// VehicleType is the kind of vehicle a courier rides. It constrains what the
// courier can physically carry and feeds the vehicle-fit component of the
// dispatch score.
type VehicleType string

const (
	VehicleBicycle    VehicleType = "bicycle"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleCar        VehicleType = "car"
	VehicleVan        VehicleType = "van"
)

var vehicleMaxLoadKg = map[VehicleType]float64{
	VehicleBicycle:    10,
	VehicleMotorcycle: 30,
	VehicleCar:        100,
	VehicleVan:        500,
}

// VehicleTypeFromString parses a stored vehicle type name.
func VehicleTypeFromString(s string) (VehicleType, error) {
	v := VehicleType(s)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v, nil
}

// Validate checks the vehicle type is one of the known kinds.
func (v VehicleType) Validate() error {
	if _, ok := vehicleMaxLoadKg[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType",
			fmt.Errorf("unknown vehicle type %q", string(v)))
	}
	return nil
}

// String returns the stored name of the vehicle type.
func (v VehicleType) String() string {
	return string(v)
}

// MaxLoadKg returns the carrying capacity of the vehicle.
func (v VehicleType) MaxLoadKg() float64 {
	return vehicleMaxLoadKg[v]
}

// CanCarryLarge reports whether the vehicle can take oversized parcels.
func (v VehicleType) CanCarryLarge() bool {
	return v == VehicleCar || v == VehicleVan
}
