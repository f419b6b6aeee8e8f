package queries

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/services"
)

// OrderReader is the slice of the order repository the candidate preview
// needs.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// CourierPoolReader is the slice of the courier repository the candidate
// preview needs.
type CourierPoolReader interface {
	GetAvailableWithin(ctx context.Context, center kernel.GeoPoint, radiusKm float64) ([]*courier.Courier, error)
}

// GetDispatchCandidatesQueryHandler runs the matcher against a snapshot of
// the courier pool and returns the ranked candidates with their score
// breakdowns. Unlike the raw projection queries it reconstructs aggregates:
// the scoring inputs live on the courier, not in any one column.
type GetDispatchCandidatesQueryHandler struct {
	orders   OrderReader
	couriers CourierPoolReader
	matcher  services.Matcher
	radiusKm float64
}

// NewGetDispatchCandidatesQueryHandler creates a handler for the candidate
// preview. radiusKm is the same search radius the dispatch sweep uses, so the
// preview matches what the sweep would do.
func NewGetDispatchCandidatesQueryHandler(
	orders OrderReader,
	couriers CourierPoolReader,
	matcher services.Matcher,
	radiusKm float64,
) GetDispatchCandidatesQueryHandler {
	return GetDispatchCandidatesQueryHandler{
		orders:   orders,
		couriers: couriers,
		matcher:  matcher,
		radiusKm: radiusKm,
	}
}

// Handle executes the preview. An order with no eligible couriers yields an
// empty slice, not an error.
func (h GetDispatchCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchCandidatesQuery,
) ([]GetDispatchCandidatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	pool, err := h.couriers.GetAvailableWithin(ctx, aggregate.Pickup(), h.radiusKm)
	if err != nil {
		return nil, err
	}

	candidates, err := h.matcher.FindCandidates(
		pool, aggregate.Pickup(), aggregate.Attributes(), h.radiusKm, query.Limit())
	if err != nil {
		return nil, err
	}

	responses := make([]GetDispatchCandidatesQueryResponse, 0, len(candidates))
	for _, candidate := range candidates {
		responses = append(responses, GetDispatchCandidatesQueryResponse{
			CourierID:   candidate.Courier.ID(),
			Name:        candidate.Courier.Name(),
			VehicleType: candidate.Courier.Vehicle().String(),
			Score:       candidate.Score,
		})
	}

	return responses, nil
}
