package queries

import (
	"errors"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/services"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrGetDispatchCandidatesQueryIsNotConstructed = errors.New(
	"GetDispatchCandidatesQuery must be created via NewGetDispatchCandidatesQuery constructor",
)

// GetDispatchCandidatesQuery previews the ranked courier candidates for one
// pending order without claiming anyone. Dispatchers use it to see why the
// sweep picked (or skipped) a courier; the response carries the full score
// breakdown.
type GetDispatchCandidatesQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	limit   int

	guard guard.ConstructorGuard
}

// NewGetDispatchCandidatesQuery creates a candidate preview request. limit
// bounds the number of ranked candidates returned.
func NewGetDispatchCandidatesQuery(orderID kernel.UUID, limit int) (GetDispatchCandidatesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDispatchCandidatesQuery{}, err
	}
	if limit <= 0 {
		return GetDispatchCandidatesQuery{}, errs.NewValueIsInvalidError("limit")
	}

	return GetDispatchCandidatesQuery{
		orderID: orderID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchCandidatesQueryIsNotConstructed)
}

// OrderID returns the order to preview candidates for.
func (q GetDispatchCandidatesQuery) OrderID() kernel.UUID { return q.orderID }

// Limit returns the maximum number of candidates to return.
func (q GetDispatchCandidatesQuery) Limit() int { return q.limit }

// GetDispatchCandidatesQueryResponse is one ranked candidate with the score
// that ranked them.
type GetDispatchCandidatesQueryResponse struct {
	CourierID   kernel.UUID
	Name        string
	VehicleType string
	Score       services.Score
}
