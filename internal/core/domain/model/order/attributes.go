package order

import (
	"fmt"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
)

// Type classifies what the courier is carrying. The dispatch scorer uses
// it in the vehicle-fit matrix (e.g. food favors motorcycles).
type Type string

const (
	// TypeParcel is a generic package.
	TypeParcel Type = "parcel"

	// TypeFood is a restaurant or street-food delivery.
	TypeFood Type = "food"

	// TypeDocument is a flat envelope or paperwork.
	TypeDocument Type = "document"

	// TypeGrocery is a market or supermarket run.
	TypeGrocery Type = "grocery"
)

func validTypes() map[Type]struct{} {
	return map[Type]struct{}{
		TypeParcel:   {},
		TypeFood:     {},
		TypeDocument: {},
		TypeGrocery:  {},
	}
}

// TypeFromString parses an order type name.
func TypeFromString(s string) (Type, error) {
	t := Type(s)
	if _, ok := validTypes()[t]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("orderType",
			fmt.Errorf("%q is not a valid order type", s))
	}
	return t, nil
}

// Validate checks the Type is one of the defined kinds.
func (t Type) Validate() error {
	if _, ok := validTypes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderType",
			fmt.Errorf("%q is not a valid order type", string(t)))
	}
	return nil
}

// Attributes are the physical order properties the scorer matches against
// a courier's vehicle. They are fixed at creation.
type Attributes struct {
	IsLarge   bool
	IsFragile bool
	OrderType Type
	WeightKg  float64
}

// Validate checks the attributes are internally consistent.
func (a Attributes) Validate() error {
	if err := a.OrderType.Validate(); err != nil {
		return err
	}
	if a.WeightKg < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%f is negative", a.WeightKg))
	}
	return nil
}
