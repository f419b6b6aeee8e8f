package ports

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The courier
	// link, status, history tail and timestamps commit together.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier, history included.
	// Archived orders are still readable.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPending retrieves the unassigned orders waiting for dispatch,
	// oldest first.
	GetAllPending(ctx context.Context) ([]*order.Order, error)

	// GetAllActiveByClient retrieves a client's non-terminal orders.
	GetAllActiveByClient(ctx context.Context, clientID kernel.UUID) ([]*order.Order, error)

	// CountActiveByCourier counts the courier's orders in assigned,
	// picked_up or in_transit. The zero-active-orders assignment
	// precondition reads through this.
	CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int, error)
}
