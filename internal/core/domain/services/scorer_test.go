package services_test

import (
	"testing"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow    = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ouagaPlace = mustPoint(12.3714, -1.5197)
)

func mustPoint(lat, lon float64) kernel.GeoPoint {
	p, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		panic(err)
	}
	return p
}

type courierSpec struct {
	vehicle     courier.VehicleType
	position    kernel.GeoPoint
	ratings     []int
	outcomes    []bool
	activeCount int
}

func buildCourier(t *testing.T, spec courierSpec) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(kernel.NewUUID(), "Awa", "+22670020304", spec.vehicle)
	require.NoError(t, err)
	require.NoError(t, c.UpdatePosition(spec.position, testNow))
	require.NoError(t, c.GoOnline())

	for _, r := range spec.ratings {
		require.NoError(t, c.AddRating(r))
	}
	for _, completed := range spec.outcomes {
		require.NoError(t, c.BeginDelivery())
		require.NoError(t, c.CompleteDelivery(kernel.NewUUID(), completed, testNow))
	}
	for range spec.activeCount {
		require.NoError(t, c.BeginDelivery())
	}
	return c
}

func ratings(score, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = score
	}
	return out
}

func TestScorer_CoLocatedTopCourier(t *testing.T) {
	// A perfect courier at the pickup point: motorcycle, 5.0 over 50
	// ratings, no history, no active load, small non-fragile parcel.
	c := buildCourier(t, courierSpec{
		vehicle:  courier.VehicleMotorcycle,
		position: ouagaPlace,
		ratings:  ratings(5, 50),
	})
	scorer := services.NewScorer(services.DefaultScoringConfig())

	score, err := scorer.Score(c, ouagaPlace,
		order.Attributes{OrderType: order.TypeParcel, WeightKg: 2}, 5)

	require.NoError(t, err)
	assert.Equal(t, float64(100), score.Breakdown.Distance.Score)
	assert.Equal(t, float64(100), score.Breakdown.Rating.Score)
	assert.Equal(t, float64(70), score.Breakdown.Response.Score)
	assert.Equal(t, float64(100), score.Breakdown.Load.Score)
	assert.GreaterOrEqual(t, score.Total, 90.0)
}

func TestScorer_DistanceDecay(t *testing.T) {
	scorer := services.NewScorer(services.DefaultScoringConfig())
	attrs := order.Attributes{OrderType: order.TypeParcel, WeightKg: 2}

	t.Run("boundary courier scores zero on distance", func(t *testing.T) {
		// ~5 km east of the pickup at this latitude.
		c := buildCourier(t, courierSpec{
			vehicle:  courier.VehicleMotorcycle,
			position: mustPoint(12.3714, -1.4737),
			ratings:  ratings(4, 20),
		})

		score, err := scorer.Score(c, ouagaPlace, attrs, 5)

		require.NoError(t, err)
		assert.InDelta(t, 0, score.Breakdown.Distance.Score, 2)
	})

	t.Run("closer courier outscores a farther identical one", func(t *testing.T) {
		near := buildCourier(t, courierSpec{
			vehicle:  courier.VehicleMotorcycle,
			position: mustPoint(12.3750, -1.5200),
			ratings:  ratings(4, 20),
		})
		far := buildCourier(t, courierSpec{
			vehicle:  courier.VehicleMotorcycle,
			position: mustPoint(12.4000, -1.5600),
			ratings:  ratings(4, 20),
		})

		nearScore, err := scorer.Score(near, ouagaPlace, attrs, 10)
		require.NoError(t, err)
		farScore, err := scorer.Score(far, ouagaPlace, attrs, 10)
		require.NoError(t, err)

		assert.Greater(t, nearScore.Total, farScore.Total)
	})
}

func TestScorer_RatingConfidence(t *testing.T) {
	scorer := services.NewScorer(services.DefaultScoringConfig())
	attrs := order.Attributes{OrderType: order.TypeParcel, WeightKg: 2}

	// A 5.0 average on one review is worth less than the same average on
	// twenty and more.
	oneReview := buildCourier(t, courierSpec{
		vehicle:  courier.VehicleMotorcycle,
		position: ouagaPlace,
		ratings:  ratings(5, 1),
	})
	manyReviews := buildCourier(t, courierSpec{
		vehicle:  courier.VehicleMotorcycle,
		position: ouagaPlace,
		ratings:  ratings(5, 25),
	})

	low, err := scorer.Score(oneReview, ouagaPlace, attrs, 5)
	require.NoError(t, err)
	high, err := scorer.Score(manyReviews, ouagaPlace, attrs, 5)
	require.NoError(t, err)

	assert.Less(t, low.Breakdown.Rating.Score, high.Breakdown.Rating.Score)
	// One review: (5/5)*100*(0.7 + 0.3*1/20) = 71.5
	assert.InDelta(t, 71.5, low.Breakdown.Rating.Score, 1e-9)
	assert.InDelta(t, 100, high.Breakdown.Rating.Score, 1e-9)
}

func TestScorer_ResponseHistory(t *testing.T) {
	scorer := services.NewScorer(services.DefaultScoringConfig())
	attrs := order.Attributes{OrderType: order.TypeParcel, WeightKg: 2}

	c := buildCourier(t, courierSpec{
		vehicle:  courier.VehicleMotorcycle,
		position: ouagaPlace,
		ratings:  ratings(4, 20),
		outcomes: []bool{true, true, true, false}, // 3 of 4 completed
	})

	score, err := scorer.Score(c, ouagaPlace, attrs, 5)

	require.NoError(t, err)
	assert.InDelta(t, 75, score.Breakdown.Response.Score, 1e-9)
}

func TestScorer_LoadPenalty(t *testing.T) {
	scorer := services.NewScorer(services.DefaultScoringConfig())
	attrs := order.Attributes{OrderType: order.TypeParcel, WeightKg: 2}

	cases := map[int]float64{0: 100, 1: 50, 2: 0, 3: 0}
	for active, expected := range cases {
		c := buildCourier(t, courierSpec{
			vehicle:     courier.VehicleMotorcycle,
			position:    ouagaPlace,
			ratings:     ratings(4, 20),
			activeCount: active,
		})

		score, err := scorer.Score(c, ouagaPlace, attrs, 5)

		require.NoError(t, err)
		assert.Equal(t, expected, score.Breakdown.Load.Score, "active=%d", active)
	}
}

func TestScorer_VehicleFit(t *testing.T) {
	scorer := services.NewScorer(services.DefaultScoringConfig())

	t.Run("motorcycle is boosted for food", func(t *testing.T) {
		c := buildCourier(t, courierSpec{
			vehicle:  courier.VehicleMotorcycle,
			position: ouagaPlace,
			ratings:  ratings(4, 20),
		})

		food, err := scorer.Score(c, ouagaPlace,
			order.Attributes{OrderType: order.TypeFood, WeightKg: 2}, 5)
		require.NoError(t, err)
		parcel, err := scorer.Score(c, ouagaPlace,
			order.Attributes{OrderType: order.TypeParcel, WeightKg: 2}, 5)
		require.NoError(t, err)

		assert.Greater(t, food.Breakdown.Vehicle.Score, parcel.Breakdown.Vehicle.Score)
	})

	t.Run("motorcycle is penalized for large heavy parcels", func(t *testing.T) {
		c := buildCourier(t, courierSpec{
			vehicle:  courier.VehicleMotorcycle,
			position: ouagaPlace,
			ratings:  ratings(4, 20),
		})

		score, err := scorer.Score(c, ouagaPlace,
			order.Attributes{OrderType: order.TypeParcel, IsLarge: true, WeightKg: 25}, 5)

		require.NoError(t, err)
		// 80 - 40 (large) - 40 (heavy), clamped at 0.
		assert.Equal(t, float64(0), score.Breakdown.Vehicle.Score)
	})

	t.Run("van is boosted for large parcels and penalized for trivial runs", func(t *testing.T) {
		c := buildCourier(t, courierSpec{
			vehicle:  courier.VehicleVan,
			position: ouagaPlace,
			ratings:  ratings(4, 20),
		})

		large, err := scorer.Score(c, ouagaPlace,
			order.Attributes{OrderType: order.TypeParcel, IsLarge: true, WeightKg: 40}, 5)
		require.NoError(t, err)
		tiny, err := scorer.Score(c, ouagaPlace,
			order.Attributes{OrderType: order.TypeDocument, WeightKg: 0.2}, 5)
		require.NoError(t, err)

		assert.Greater(t, large.Breakdown.Vehicle.Score, tiny.Breakdown.Vehicle.Score)
	})
}

func TestScorer_Boundedness(t *testing.T) {
	scorer := services.NewScorer(services.DefaultScoringConfig())

	specs := []courierSpec{
		{vehicle: courier.VehicleBicycle, position: ouagaPlace},
		{vehicle: courier.VehicleMotorcycle, position: mustPoint(12.5, -1.7), ratings: ratings(5, 50)},
		{vehicle: courier.VehicleVan, position: mustPoint(12.2, -1.3), ratings: ratings(3, 2), activeCount: 4},
		{vehicle: courier.VehicleCar, position: ouagaPlace, outcomes: []bool{false, false, false}},
	}
	attrsList := []order.Attributes{
		{OrderType: order.TypeParcel, WeightKg: 2},
		{OrderType: order.TypeFood, IsFragile: true, WeightKg: 1},
		{OrderType: order.TypeGrocery, IsLarge: true, WeightKg: 45},
		{OrderType: order.TypeDocument, WeightKg: 0.1},
	}

	for _, spec := range specs {
		c := buildCourier(t, spec)
		for _, attrs := range attrsList {
			score, err := scorer.Score(c, ouagaPlace, attrs, 30)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, score.Total, 0.0)
			assert.LessOrEqual(t, score.Total, 100.0)
			for _, comp := range []services.Component{
				score.Breakdown.Distance,
				score.Breakdown.Rating,
				score.Breakdown.Response,
				score.Breakdown.Load,
				score.Breakdown.Vehicle,
			} {
				assert.GreaterOrEqual(t, comp.Score, 0.0)
				assert.LessOrEqual(t, comp.Score, 100.0)
			}
		}
	}
}

func TestScorer_InputValidation(t *testing.T) {
	scorer := services.NewScorer(services.DefaultScoringConfig())
	attrs := order.Attributes{OrderType: order.TypeParcel, WeightKg: 2}

	t.Run("rejects non-positive radius", func(t *testing.T) {
		c := buildCourier(t, courierSpec{vehicle: courier.VehicleCar, position: ouagaPlace})
		_, err := scorer.Score(c, ouagaPlace, attrs, 0)
		require.Error(t, err)
	})

	t.Run("rejects courier without position", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Awa", "+22670020304", courier.VehicleCar)
		require.NoError(t, err)

		_, err = scorer.Score(c, ouagaPlace, attrs, 5)
		require.Error(t, err)
	})
}
