// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows, including
// the append-only transition history stored in its own table.
package orderrepo

import (
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and courier assignment are indexed for the dispatch sweep's pending
// scan and the per-courier active count.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`
	Status    string     `gorm:"type:varchar(32);not null;index"`

	PickupLatitude   float64 `gorm:"type:double precision;not null"`
	PickupLongitude  float64 `gorm:"type:double precision;not null"`
	PickupAddress    string  `gorm:"type:varchar(255);not null"`
	DropoffLatitude  float64 `gorm:"type:double precision;not null"`
	DropoffLongitude float64 `gorm:"type:double precision;not null"`
	DropoffAddress   string  `gorm:"type:varchar(255);not null"`

	OrderType string  `gorm:"type:varchar(32);not null"`
	WeightKg  float64 `gorm:"type:double precision;not null"`
	IsLarge   bool    `gorm:"not null"`
	IsFragile bool    `gorm:"not null"`

	BasePrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DistancePrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Commission      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CourierEarnings decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	ConfirmationCode   string `gorm:"type:varchar(8);not null"`
	RecipientConfirmed bool   `gorm:"not null"`
	CancelReason       string `gorm:"type:varchar(255)"`

	CreatedAt   time.Time `gorm:"not null"`
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	ArchivedAt  *time.Time `gorm:"index"`

	History []TransitionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// TransitionDTO represents one row of the append-only transition history.
// Latitude and longitude are null when the actor's position was not captured
// with the transition.
type TransitionDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus string    `gorm:"type:varchar(32);not null"`
	ToStatus   string    `gorm:"type:varchar(32);not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	ActorRole  string    `gorm:"type:varchar(16);not null"`
	Note       string    `gorm:"type:varchar(255)"`
	Latitude   *float64  `gorm:"type:double precision"`
	Longitude  *float64  `gorm:"type:double precision"`
	At         time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for transition history rows.
func (TransitionDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order aggregate to its database representation,
// history rows included.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	history := make([]TransitionDTO, 0, len(aggregate.History()))
	for _, record := range aggregate.History() {
		history = append(history, transitionFromDomain(orderID, record))
	}

	attrs := aggregate.Attributes()
	pricing := aggregate.Pricing()

	return OrderDTO{
		ID:        orderID,
		ClientID:  aggregate.ClientID().Bytes(),
		CourierID: courierID,
		Status:    aggregate.Status().String(),

		PickupLatitude:   aggregate.Pickup().Latitude(),
		PickupLongitude:  aggregate.Pickup().Longitude(),
		PickupAddress:    aggregate.PickupAddress(),
		DropoffLatitude:  aggregate.Dropoff().Latitude(),
		DropoffLongitude: aggregate.Dropoff().Longitude(),
		DropoffAddress:   aggregate.DropoffAddress(),

		OrderType: string(attrs.OrderType),
		WeightKg:  attrs.WeightKg,
		IsLarge:   attrs.IsLarge,
		IsFragile: attrs.IsFragile,

		BasePrice:       pricing.BasePrice(),
		DistancePrice:   pricing.DistancePrice(),
		TotalPrice:      pricing.TotalPrice(),
		Commission:      pricing.Commission(),
		CourierEarnings: pricing.CourierEarnings(),

		ConfirmationCode:   aggregate.ConfirmationCode(),
		RecipientConfirmed: aggregate.RecipientConfirmed(),
		CancelReason:       aggregate.CancelReason(),

		CreatedAt:   aggregate.CreatedAt(),
		AssignedAt:  aggregate.AssignedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		InTransitAt: aggregate.InTransitAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		CancelledAt: aggregate.CancelledAt(),
		ArchivedAt:  aggregate.ArchivedAt(),

		History: history,
	}
}

func transitionFromDomain(orderID uuid.UUID, record order.TransitionRecord) TransitionDTO {
	var latitude, longitude *float64
	if pos := record.At(); pos != nil {
		lat, lon := pos.Latitude(), pos.Longitude()
		latitude, longitude = &lat, &lon
	}

	return TransitionDTO{
		ID:         record.ID().Bytes(),
		OrderID:    orderID,
		FromStatus: record.Previous().String(),
		ToStatus:   record.Next().String(),
		ActorID:    record.Actor().ID().Bytes(),
		ActorRole:  record.Actor().Role().String(),
		Note:       record.Note(),
		Latitude:   latitude,
		Longitude:  longitude,
		At:         record.OccurredAt(),
	}
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, which re-checks the status/courier invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLatitude, dto.PickupLongitude)
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewGeoPoint(dto.DropoffLatitude, dto.DropoffLongitude)
	if err != nil {
		return nil, err
	}

	orderType, err := order.TypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}

	pricing, err := order.RestorePricing(
		dto.BasePrice, dto.DistancePrice, dto.TotalPrice, dto.Commission, dto.CourierEarnings)
	if err != nil {
		return nil, err
	}

	history := make([]order.TransitionRecord, 0, len(dto.History))
	for _, row := range dto.History {
		record, recordErr := transitionToDomain(row)
		if recordErr != nil {
			return nil, recordErr
		}
		history = append(history, record)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:        id,
		ClientID:  clientID,
		CourierID: courierID,

		Pickup:         pickup,
		Dropoff:        dropoff,
		PickupAddress:  dto.PickupAddress,
		DropoffAddress: dto.DropoffAddress,

		Attributes: order.Attributes{
			IsLarge:   dto.IsLarge,
			IsFragile: dto.IsFragile,
			OrderType: orderType,
			WeightKg:  dto.WeightKg,
		},
		Pricing: pricing,

		ConfirmationCode:   dto.ConfirmationCode,
		RecipientConfirmed: dto.RecipientConfirmed,

		Status:       status,
		CancelReason: dto.CancelReason,

		CreatedAt:   dto.CreatedAt,
		AssignedAt:  dto.AssignedAt,
		PickedUpAt:  dto.PickedUpAt,
		InTransitAt: dto.InTransitAt,
		DeliveredAt: dto.DeliveredAt,
		CancelledAt: dto.CancelledAt,
		ArchivedAt:  dto.ArchivedAt,

		History: history,
	})
}

func transitionToDomain(dto TransitionDTO) (order.TransitionRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}

	role, err := order.RoleFromString(dto.ActorRole)
	if err != nil {
		return order.TransitionRecord{}, err
	}

	actor, err := order.NewActor(actorID, role)
	if err != nil {
		return order.TransitionRecord{}, err
	}

	from, err := order.StatusFromString(dto.FromStatus)
	if err != nil {
		return order.TransitionRecord{}, err
	}

	to, err := order.StatusFromString(dto.ToStatus)
	if err != nil {
		return order.TransitionRecord{}, err
	}

	var at *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		pos, posErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if posErr != nil {
			return order.TransitionRecord{}, posErr
		}
		at = &pos
	}

	return order.RestoreTransitionRecord(id, from, to, actor, dto.Note, at, dto.At), nil
}
