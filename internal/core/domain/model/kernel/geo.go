package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the Earth radius used for kilometer-scale distances,
	// such as courier search radii.
	EarthRadiusKm = 6371.0

	// EarthRadiusMeters is the Earth radius used for sub-kilometer geofence
	// checks. Same formula, different unit; callers pick the variant that
	// matches their radius constant.
	EarthRadiusMeters = 6_371_000.0

	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned when a GeoPoint was not created
// through NewGeoPoint. The zero value of GeoPoint is invalid.
var ErrGeoPointIsNotConstructed = errors.New("GeoPoint must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a validated latitude/longitude
// pair in decimal degrees.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(12.3714, -1.5197)
//	if err != nil {
//	    // handle validation error
//	}
//	km := pickup.DistanceKmTo(dropoff)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from decimal-degree coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual compares two points by exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// DistanceKmTo returns the great-circle distance to other in kilometers.
// The distance is symmetric and exactly 0 for identical coordinates.
func (p GeoPoint) DistanceKmTo(other GeoPoint) float64 {
	return p.haversine(other, EarthRadiusKm)
}

// DistanceMetersTo returns the great-circle distance to other in meters.
func (p GeoPoint) DistanceMetersTo(other GeoPoint) float64 {
	return p.haversine(other, EarthRadiusMeters)
}

// haversine implements the Haversine great-circle formula on a sphere of the
// given radius.
func (p GeoPoint) haversine(other GeoPoint, radius float64) float64 {
	if p.IsEqual(other) {
		return 0
	}

	lat1 := degreesToRadians(p.latitude)
	lat2 := degreesToRadians(other.latitude)
	dLat := degreesToRadians(other.latitude - p.latitude)
	dLon := degreesToRadians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < minLatitude || latitude > maxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, minLatitude, maxLatitude)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < minLongitude || longitude > maxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, minLongitude, maxLongitude)
	}
	p.longitude = longitude
	return nil
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
