package queries

import (
	"errors"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves a client's in-flight orders: everything
// between pending and the terminal statuses. The client app's order list
// polls it.
type GetActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for one client's active orders.
func NewGetActiveOrdersQuery(clientID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := clientID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// ClientID returns the client whose orders are requested.
func (q GetActiveOrdersQuery) ClientID() kernel.UUID { return q.clientID }

// GetActiveOrdersQueryResponse is one row of the active order read model.
type GetActiveOrdersQueryResponse struct {
	ID             kernel.UUID
	Status         string
	CourierID      *kernel.UUID
	PickupAddress  string
	DropoffAddress string
	TotalPrice     decimal.Decimal
	CreatedAt      time.Time
}
