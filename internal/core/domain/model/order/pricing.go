package order

import (
	"errors"
	"fmt"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrPricingIsNotConstructed is returned when a Pricing instance was not
// created through NewPricing or RestorePricing.
var ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing or RestorePricing")

// Pricing holds the monetary breakdown of an order in CFA francs.
// It is immutable after order creation: the total, the platform commission
// and the courier's earnings are fixed when the order enters pending.
type Pricing struct {
	basePrice       decimal.Decimal
	distancePrice   decimal.Decimal
	totalPrice      decimal.Decimal
	commission      decimal.Decimal
	courierEarnings decimal.Decimal
	guard           guard.ConstructorGuard
}

// NewPricing derives the full breakdown from the base fare, the
// distance-proportional fare and the platform commission rate.
// Amounts are rounded to whole francs.
func NewPricing(basePrice, distancePrice, commissionRate decimal.Decimal) (Pricing, error) {
	if basePrice.IsNegative() {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("basePrice",
			fmt.Errorf("%s is negative", basePrice))
	}
	if distancePrice.IsNegative() {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("distancePrice",
			fmt.Errorf("%s is negative", distancePrice))
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return Pricing{}, errs.NewValueIsOutOfRangeError("commissionRate", commissionRate.String(), "0", "1")
	}

	total := basePrice.Add(distancePrice).Round(0)
	commission := total.Mul(commissionRate).Round(0)

	return Pricing{
		basePrice:       basePrice.Round(0),
		distancePrice:   distancePrice.Round(0),
		totalPrice:      total,
		commission:      commission,
		courierEarnings: total.Sub(commission),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestorePricing rebuilds a Pricing from persisted amounts without
// re-deriving them.
func RestorePricing(basePrice, distancePrice, totalPrice, commission, courierEarnings decimal.Decimal) (Pricing, error) {
	if totalPrice.IsNegative() {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%s is negative", totalPrice))
	}

	return Pricing{
		basePrice:       basePrice,
		distancePrice:   distancePrice,
		totalPrice:      totalPrice,
		commission:      commission,
		courierEarnings: courierEarnings,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the Pricing was created through a constructor.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// BasePrice returns the flat pickup fare.
func (p Pricing) BasePrice() decimal.Decimal {
	return p.basePrice
}

// DistancePrice returns the distance-proportional part of the fare.
func (p Pricing) DistancePrice() decimal.Decimal {
	return p.distancePrice
}

// TotalPrice returns the amount charged to the client.
func (p Pricing) TotalPrice() decimal.Decimal {
	return p.totalPrice
}

// Commission returns the platform's cut of the total.
func (p Pricing) Commission() decimal.Decimal {
	return p.commission
}

// CourierEarnings returns the courier's share of the total.
func (p Pricing) CourierEarnings() decimal.Decimal {
	return p.courierEarnings
}
