package commands

import "github.com/shopspring/decimal"

// PricingConfig carries the fare tuning values used when an order is
// created. Amounts are CFA francs.
type PricingConfig struct {
	// BaseFare is the flat pickup fare.
	BaseFare decimal.Decimal
	// PerKmRate multiplies the pickup-to-dropoff Haversine distance.
	PerKmRate decimal.Decimal
	// CommissionRate is the platform's cut of the total, in [0,1].
	CommissionRate decimal.Decimal
}

// DefaultPricingConfig returns the production fare values.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		BaseFare:       decimal.NewFromInt(500),
		PerKmRate:      decimal.NewFromInt(150),
		CommissionRate: decimal.NewFromFloat(0.20),
	}
}
