package queries

import (
	"errors"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the transition trail of one order: every
// status change with who triggered it, when, and where. Support staff use it
// to reconstruct disputed deliveries.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for one order's transition trail.
func NewGetOrderHistoryQuery(orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderHistoryQueryResponse is one recorded transition. Latitude and
// longitude are nil when the actor's position was not captured.
type GetOrderHistoryQueryResponse struct {
	FromStatus string
	ToStatus   string
	ActorID    kernel.UUID
	ActorRole  string
	Note       string
	Latitude   *float64
	Longitude  *float64
	At         time.Time
}
