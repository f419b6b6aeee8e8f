package courierrepo

import (
	"context"
	"errors"
	"math"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kmPerLatDegree is the approximate surface distance of one degree of
// latitude, used for the coarse bounding-box prefilter.
const kmPerLatDegree = 111.0

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a freshly onboarded courier profile.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing courier profile. Outcome rows are upserted by
// their composite key; the window trim happens on restore, so stale rows are
// harmless.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	recent := dto.RecentAssignments
	dto.RecentAssignments = nil

	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("RecentAssignments").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(recent) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&recent).Error
}

// Get retrieves a courier by ID with the recent assignment outcomes.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	err := r.db.WithContext(ctx).
		Preload("RecentAssignments", func(db *gorm.DB) *gorm.DB { return db.Order("at") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves every courier open for dispatch: active, online
// and with a known position.
func (r *GormCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	err := r.availableScope(ctx).Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAvailableWithin retrieves the available couriers around a point. The SQL
// side applies a coarse bounding box; the exact great-circle cut happens here
// because the box corners overshoot the radius.
func (r *GormCourierRepository) GetAvailableWithin(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
) ([]*courier.Courier, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	latDelta := radiusKm / kmPerLatDegree
	lonDelta := radiusKm / (kmPerLatDegree * math.Cos(center.Latitude()*math.Pi/180))

	var dtos []CourierDTO
	err := r.availableScope(ctx).
		Where("latitude BETWEEN ? AND ?", center.Latitude()-latDelta, center.Latitude()+latDelta).
		Where("longitude BETWEEN ? AND ?", center.Longitude()-lonDelta, center.Longitude()+lonDelta).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	couriers, err := toDomainSlice(dtos)
	if err != nil {
		return nil, err
	}

	within := couriers[:0]
	for _, c := range couriers {
		if c.Position() != nil && center.DistanceKmTo(*c.Position()) <= radiusKm {
			within = append(within, c)
		}
	}
	return within, nil
}

func (r *GormCourierRepository) availableScope(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("RecentAssignments", func(db *gorm.DB) *gorm.DB { return db.Order("at") }).
		Where("status = ? AND available AND latitude IS NOT NULL", courier.StatusActive.String()).
		Order("name")
}

func toDomainSlice(dtos []CourierDTO) ([]*courier.Courier, error) {
	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, aggregate)
	}
	return couriers, nil
}
