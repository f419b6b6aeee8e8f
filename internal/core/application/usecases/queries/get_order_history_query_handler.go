package queries

import (
	"context"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads one order's transition trail from the
// history table, oldest entry first.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for the transition trail
// query.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query. An unknown order yields an empty trail, not an
// error: the read side does not distinguish "never existed" from "no
// transitions yet".
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	trail := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			actor_id,
			actor_role,
			note,
			latitude,
			longitude,
			at
		FROM order_history
		WHERE order_id = ?
		ORDER BY at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetOrderHistoryQueryResponse
		var actorID uuid.UUID

		err = rows.Scan(
			&record.FromStatus,
			&record.ToStatus,
			&actorID,
			&record.ActorRole,
			&record.Note,
			&record.Latitude,
			&record.Longitude,
			&record.At,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}
		record.ActorID = id
		trail = append(trail, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return trail, nil
}
