// Package ports defines the contracts between the application core and the
// outside world: repositories, the transactional unit of work, the event
// publisher and the clock. Adapters implement them; handlers depend on them.
package ports

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier profiles.
type CourierRepository interface {
	// Add persists a new courier profile to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier profile.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier profile by its identifier, including the
	// retained assignment outcome window.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves every online courier on an active account
	// with a known position.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)

	// GetAvailableWithin retrieves available couriers whose last reported
	// position lies within radiusKm of the center. The adapter may
	// prefilter with a bounding box; the matcher re-checks the exact
	// distance.
	GetAvailableWithin(ctx context.Context, center kernel.GeoPoint, radiusKm float64) ([]*courier.Courier, error)
}
