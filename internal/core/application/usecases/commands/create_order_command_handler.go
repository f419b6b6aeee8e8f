package commands

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"

	"github.com/shopspring/decimal"
)

// CreateOrderCommandHandler opens a new pending order: it derives the fare
// from the pickup-to-dropoff distance, issues the one-time confirmation code
// and persists the aggregate.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    PricingConfig
	clock      ports.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing PricingConfig,
	clock ports.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		clock:      clock,
	}
}

// Handle processes the order creation command. The order enters pending with
// an immutable pricing breakdown and confirmation code.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	distanceKm := cmd.Pickup().DistanceKmTo(cmd.Dropoff())
	distancePrice := h.pricing.PerKmRate.Mul(decimal.NewFromFloat(distanceKm))

	pricing, err := order.NewPricing(h.pricing.BaseFare, distancePrice, h.pricing.CommissionRate)
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ClientID(),
		cmd.Pickup(), cmd.Dropoff(),
		cmd.PickupAddress(), cmd.DropoffAddress(),
		cmd.Attributes(),
		pricing,
		order.GenerateConfirmationCode(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
