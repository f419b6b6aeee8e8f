package queries

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads a client's in-flight orders from the
// database with a raw projection query.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for the active order
// query.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Terminal and archived orders are excluded;
// results come back oldest first so the list is stable while polling.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			courier_id,
			pickup_address,
			dropoff_address,
			total_price,
			created_at
		FROM orders
		WHERE client_id = ?
		  AND status IN ('pending', 'assigned', 'picked_up', 'in_transit')
		  AND archived_at IS NULL
		ORDER BY created_at
	`, query.ClientID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetActiveOrdersQueryResponse
		var id uuid.UUID
		var courierID *uuid.UUID

		err = rows.Scan(
			&id,
			&orderResp.Status,
			&courierID,
			&orderResp.PickupAddress,
			&orderResp.DropoffAddress,
			&orderResp.TotalPrice,
			&orderResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID

		if courierID != nil {
			cID, courierErr := kernel.UUIDFromBytes((*courierID)[:])
			if courierErr != nil {
				return nil, courierErr
			}
			orderResp.CourierID = &cID
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
