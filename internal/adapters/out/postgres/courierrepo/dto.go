// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. It implements the repository pattern for the
// courier profile aggregate, including the recent assignment outcome window
// stored in its own table.
package courierrepo

import (
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// profiles. Position columns are null until the first device report.
type CourierDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Phone       string    `gorm:"type:varchar(32);not null"`
	VehicleType string    `gorm:"type:varchar(32);not null"`

	Status    string `gorm:"type:varchar(32);not null;index"`
	Available bool   `gorm:"not null;index"`

	Latitude   *float64 `gorm:"type:double precision"`
	Longitude  *float64 `gorm:"type:double precision"`
	LastSeenAt *time.Time

	RatingAvg   float64 `gorm:"type:double precision;not null"`
	RatingCount int     `gorm:"not null"`

	ActiveOrderCount int `gorm:"not null"`

	RecentAssignments []AssignmentOutcomeDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// AssignmentOutcomeDTO represents one retained past assignment outcome.
// Rows beyond the aggregate's window are trimmed on restore, not deleted.
type AssignmentOutcomeDTO struct {
	CourierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Completed bool      `gorm:"not null"`
	At        time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for assignment outcome rows.
func (AssignmentOutcomeDTO) TableName() string {
	return "courier_assignments"
}

// fromDomain converts a courier aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	courierID := aggregate.ID().Bytes()

	var latitude, longitude *float64
	if pos := aggregate.Position(); pos != nil {
		lat, lon := pos.Latitude(), pos.Longitude()
		latitude, longitude = &lat, &lon
	}

	recent := make([]AssignmentOutcomeDTO, 0, len(aggregate.RecentAssignments()))
	for _, outcome := range aggregate.RecentAssignments() {
		recent = append(recent, AssignmentOutcomeDTO{
			CourierID: courierID,
			OrderID:   outcome.OrderID.Bytes(),
			Completed: outcome.Completed,
			At:        outcome.At,
		})
	}

	return CourierDTO{
		ID:          courierID,
		Name:        aggregate.Name(),
		Phone:       aggregate.Phone(),
		VehicleType: aggregate.Vehicle().String(),

		Status:    aggregate.Status().String(),
		Available: aggregate.IsAvailable(),

		Latitude:   latitude,
		Longitude:  longitude,
		LastSeenAt: aggregate.LastSeenAt(),

		RatingAvg:   aggregate.RatingAvg(),
		RatingCount: aggregate.RatingCount(),

		ActiveOrderCount: aggregate.ActiveOrderCount(),

		RecentAssignments: recent,
	}
}

// toDomain converts a database DTO back to a courier aggregate using
// RestoreCourier, which re-checks the availability invariant.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := courier.VehicleTypeFromString(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	status, err := courier.AccountStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		pos, posErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if posErr != nil {
			return nil, posErr
		}
		position = &pos
	}

	recent := make([]courier.AssignmentOutcome, 0, len(dto.RecentAssignments))
	for _, row := range dto.RecentAssignments {
		orderID, orderErr := kernel.UUIDFromBytes(row.OrderID[:])
		if orderErr != nil {
			return nil, orderErr
		}
		recent = append(recent, courier.AssignmentOutcome{
			OrderID:   orderID,
			Completed: row.Completed,
			At:        row.At,
		})
	}

	return courier.RestoreCourier(courier.RestoreCourierParams{
		ID:      id,
		Name:    dto.Name,
		Phone:   dto.Phone,
		Vehicle: vehicle,

		Status:    status,
		Available: dto.Available,

		Position:   position,
		LastSeenAt: dto.LastSeenAt,

		RatingAvg:   dto.RatingAvg,
		RatingCount: dto.RatingCount,

		ActiveOrderCount:  dto.ActiveOrderCount,
		RecentAssignments: recent,
	})
}
