package kernel_test

import (
	"math"
	"testing"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates point with valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(12.3714, -1.5197)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 12.3714, p.Latitude(), 1e-9)
		assert.InDelta(t, -1.5197, p.Longitude(), 1e-9)
	})

	t.Run("accepts boundary coordinates", func(t *testing.T) {
		for _, tc := range []struct{ lat, lon float64 }{
			{90, 180},
			{-90, -180},
			{0, 0},
		} {
			_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
			require.NoError(t, err)
		}
	})

	t.Run("rejects out of range coordinates", func(t *testing.T) {
		for _, tc := range []struct{ lat, lon float64 }{
			{90.1, 0},
			{-90.1, 0},
			{0, 180.1},
			{0, -180.1},
		} {
			_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
			require.Error(t, err)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.GeoPoint

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_DistanceKmTo(t *testing.T) {
	ouaga := mustGeoPoint(t, 12.3714, -1.5197)
	bobo := mustGeoPoint(t, 11.1771, -4.2979)

	t.Run("identical points are exactly zero", func(t *testing.T) {
		same := mustGeoPoint(t, 12.3714, -1.5197)

		assert.Zero(t, ouaga.DistanceKmTo(same))
		assert.Zero(t, ouaga.DistanceKmTo(ouaga))
	})

	t.Run("is symmetric", func(t *testing.T) {
		assert.InDelta(t, ouaga.DistanceKmTo(bobo), bobo.DistanceKmTo(ouaga), 1e-6)
	})

	t.Run("matches known distance Ouagadougou to Bobo-Dioulasso", func(t *testing.T) {
		// Great-circle distance between the two cities is roughly 327 km.
		km := ouaga.DistanceKmTo(bobo)

		assert.InDelta(t, 327, km, 5)
	})

	t.Run("short hop within the city", func(t *testing.T) {
		a := mustGeoPoint(t, 12.3714, -1.5197)
		b := mustGeoPoint(t, 12.3804, -1.5197)

		// One hundredth of a degree of latitude is just over a kilometer.
		assert.InDelta(t, 1.0, a.DistanceKmTo(b), 0.01)
	})
}

func TestGeoPoint_DistanceMetersTo(t *testing.T) {
	a := mustGeoPoint(t, 12.3714, -1.5197)
	b := mustGeoPoint(t, 12.3723, -1.5197)

	t.Run("meters variant scales the same formula", func(t *testing.T) {
		assert.InDelta(t, a.DistanceKmTo(b)*1000, a.DistanceMetersTo(b), 1e-6)
	})

	t.Run("sub-kilometer geofence resolution", func(t *testing.T) {
		m := a.DistanceMetersTo(b)

		assert.Greater(t, m, 90.0)
		assert.Less(t, m, 110.0)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a := mustGeoPoint(t, 12.3714, -1.5197)
	b := mustGeoPoint(t, 12.3714, -1.5197)
	c := mustGeoPoint(t, 12.3715, -1.5197)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestGeoPoint_AntipodalDistance(t *testing.T) {
	a := mustGeoPoint(t, 0, 0)
	b := mustGeoPoint(t, 0, 180)

	// Half the Earth's circumference.
	assert.InDelta(t, math.Pi*kernel.EarthRadiusKm, a.DistanceKmTo(b), 0.5)
}
