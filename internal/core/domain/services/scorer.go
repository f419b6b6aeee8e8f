package services

import (
	"fmt"
	"math"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
)

// Weights distribute the five sub-scores into the composite. They are
// business tuning values, not derived from a model; keep them summing to 1.
type Weights struct {
	Distance float64
	Rating   float64
	Response float64
	Load     float64
	Vehicle  float64
}

// VehicleProfile is one row of the vehicle-fit adjustment matrix. All
// adjustments are additive on top of the base vehicle score, then the
// composite is clamped to [0,100].
type VehicleProfile struct {
	// LargeAdjust applies when the parcel is flagged oversized.
	LargeAdjust float64
	// FragileAdjust applies when the parcel is flagged fragile.
	FragileAdjust float64
	// HeavyAdjust applies when the parcel weighs more than HeavyThresholdKg.
	HeavyThresholdKg float64
	HeavyAdjust      float64
	// LightAdjust applies when a small parcel weighs less than
	// LightThresholdKg, for vehicles oversized for trivial runs.
	LightThresholdKg float64
	LightAdjust      float64
	// PreferredAdjust applies when the order type matches PreferredType.
	PreferredType   order.Type
	PreferredAdjust float64
}

// ScoringConfig carries every tuning value of the dispatch score: weights,
// the rating confidence ramp, the neutral response default, the eligibility
// rating floor and the vehicle adjustment matrix.
type ScoringConfig struct {
	Weights Weights

	// MinEligibleRating is the rating floor for candidates. Couriers with no
	// ratings at all are not filtered by it.
	MinEligibleRating float64

	// RatingFullConfidenceCount is how many ratings it takes before the
	// rating sub-score stops being dampened.
	RatingFullConfidenceCount int

	// NeutralResponseScore is the response sub-score of a courier with no
	// assignment history.
	NeutralResponseScore float64

	// LoadPenaltyPerOrder is subtracted from 100 per active delivery.
	LoadPenaltyPerOrder float64

	// VehicleBaseScore is the vehicle-fit score before matrix adjustments.
	VehicleBaseScore float64

	VehicleMatrix map[courier.VehicleType]VehicleProfile
}

// DefaultScoringConfig returns the production tuning values.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: Weights{
			Distance: 0.40,
			Rating:   0.25,
			Response: 0.15,
			Load:     0.10,
			Vehicle:  0.10,
		},
		MinEligibleRating:         3.0,
		RatingFullConfidenceCount: 20,
		NeutralResponseScore:      70,
		LoadPenaltyPerOrder:       50,
		VehicleBaseScore:          80,
		VehicleMatrix: map[courier.VehicleType]VehicleProfile{
			courier.VehicleBicycle: {
				LargeAdjust:      -60,
				FragileAdjust:    -10,
				HeavyThresholdKg: 5,
				HeavyAdjust:      -30,
				PreferredType:    order.TypeDocument,
				PreferredAdjust:  15,
			},
			courier.VehicleMotorcycle: {
				LargeAdjust:      -40,
				HeavyThresholdKg: 20,
				HeavyAdjust:      -40,
				PreferredType:    order.TypeFood,
				PreferredAdjust:  15,
			},
			courier.VehicleCar: {
				LargeAdjust:      10,
				FragileAdjust:    10,
				HeavyThresholdKg: 80,
				HeavyAdjust:      -20,
			},
			courier.VehicleVan: {
				LargeAdjust:      20,
				HeavyThresholdKg: 20,
				HeavyAdjust:      15,
				LightThresholdKg: 3,
				LightAdjust:      -15,
			},
		},
	}
}

// Component is one scored dimension of the composite.
type Component struct {
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Detail   string  `json:"detail"`
}

// Breakdown carries the five components of a dispatch score.
type Breakdown struct {
	Distance Component `json:"distance"`
	Rating   Component `json:"rating"`
	Response Component `json:"response"`
	Load     Component `json:"load"`
	Vehicle  Component `json:"vehicle"`
}

// Score is the derived suitability of one courier for one order. It is never
// persisted; every matching request recomputes it.
type Score struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}

// Scorer computes the weighted composite suitability score of a courier
// against a candidate order. It is pure and safe for concurrent use.
type Scorer struct {
	cfg ScoringConfig
}

// NewScorer creates a Scorer with the given tuning values.
func NewScorer(cfg ScoringConfig) Scorer {
	return Scorer{cfg: cfg}
}

// Config returns the tuning values the scorer runs with.
func (s Scorer) Config() ScoringConfig {
	return s.cfg
}

// Score computes the composite for one courier against the order's pickup
// point and attributes. maxRadiusKm is the search radius of the surrounding
// query: a courier exactly on the boundary scores 0 on distance, a
// co-located one scores 100.
func (s Scorer) Score(
	c *courier.Courier,
	pickup kernel.GeoPoint,
	attrs order.Attributes,
	maxRadiusKm float64,
) (Score, error) {
	if err := c.Validate(); err != nil {
		return Score{}, err
	}
	if maxRadiusKm <= 0 {
		return Score{}, errs.NewValueIsInvalidErrorWithCause("maxRadiusKm",
			fmt.Errorf("%v is not positive", maxRadiusKm))
	}
	if c.Position() == nil {
		return Score{}, errs.NewCourierUnavailableError(c.ID().String(), "position unknown")
	}

	distanceKm := pickup.DistanceKmTo(*c.Position())

	breakdown := Breakdown{
		Distance: s.component(s.distanceScore(distanceKm, maxRadiusKm), s.cfg.Weights.Distance,
			fmt.Sprintf("%.2f km of %.2f km radius", distanceKm, maxRadiusKm)),
		Rating:   s.ratingComponent(c),
		Response: s.responseComponent(c),
		Load: s.component(s.loadScore(c.ActiveOrderCount()), s.cfg.Weights.Load,
			fmt.Sprintf("%d active deliveries", c.ActiveOrderCount())),
		Vehicle: s.component(s.vehicleScore(c.Vehicle(), attrs), s.cfg.Weights.Vehicle,
			string(c.Vehicle())+" vs "+string(attrs.OrderType)),
	}

	total := breakdown.Distance.Weighted +
		breakdown.Rating.Weighted +
		breakdown.Response.Weighted +
		breakdown.Load.Weighted +
		breakdown.Vehicle.Weighted

	return Score{
		Total:     math.Round(total*100) / 100,
		Breakdown: breakdown,
	}, nil
}

func (s Scorer) component(score, weight float64, detail string) Component {
	return Component{
		Score:    score,
		Weight:   weight,
		Weighted: score * weight,
		Detail:   detail,
	}
}

// distanceScore decays linearly from 100 at the pickup point to 0 at the
// search boundary.
func (s Scorer) distanceScore(distanceKm, maxRadiusKm float64) float64 {
	return clamp(100 - (distanceKm/maxRadiusKm)*100)
}

// ratingComponent dampens high averages built on very few reviews: full
// confidence only after RatingFullConfidenceCount ratings.
func (s Scorer) ratingComponent(c *courier.Courier) Component {
	confidence := math.Min(1, float64(c.RatingCount())/float64(s.cfg.RatingFullConfidenceCount))
	score := clamp((c.RatingAvg() / 5) * 100 * (0.7 + 0.3*confidence))
	detail := fmt.Sprintf("%.1f avg over %d ratings", c.RatingAvg(), c.RatingCount())
	return s.component(score, s.cfg.Weights.Rating, detail)
}

// responseComponent measures completion quality over the retained assignment
// window; a courier with no history gets the neutral default.
func (s Scorer) responseComponent(c *courier.Courier) Component {
	completed, total := c.ResponseStats()
	if total == 0 {
		return s.component(s.cfg.NeutralResponseScore, s.cfg.Weights.Response, "no history")
	}
	score := clamp(float64(completed) / float64(total) * 100)
	detail := fmt.Sprintf("%d of %d recent assignments completed", completed, total)
	return s.component(score, s.cfg.Weights.Response, detail)
}

func (s Scorer) loadScore(activeOrders int) float64 {
	return clamp(100 - float64(activeOrders)*s.cfg.LoadPenaltyPerOrder)
}

// vehicleScore applies the additive adjustment matrix over the base score.
func (s Scorer) vehicleScore(v courier.VehicleType, attrs order.Attributes) float64 {
	score := s.cfg.VehicleBaseScore

	profile, ok := s.cfg.VehicleMatrix[v]
	if !ok {
		return clamp(score)
	}

	if attrs.IsLarge {
		score += profile.LargeAdjust
	}
	if attrs.IsFragile {
		score += profile.FragileAdjust
	}
	if profile.HeavyThresholdKg > 0 && attrs.WeightKg > profile.HeavyThresholdKg {
		score += profile.HeavyAdjust
	}
	if profile.LightThresholdKg > 0 && !attrs.IsLarge && attrs.WeightKg < profile.LightThresholdKg {
		score += profile.LightAdjust
	}
	if profile.PreferredType != "" && attrs.OrderType == profile.PreferredType {
		score += profile.PreferredAdjust
	}

	return clamp(score)
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}
