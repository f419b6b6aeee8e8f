package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/courier"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/order"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"

	"github.com/samber/lo"
)

// ErrNoCandidates is returned when no eligible courier exists inside the
// search radius. Widening the pool is the caller's decision, not the
// matcher's.
var ErrNoCandidates = errors.New("no eligible courier found")

// Candidate pairs a courier with its computed dispatch score.
type Candidate struct {
	Courier *courier.Courier
	Score   Score
}

// Matcher ranks couriers against a pending order. It is pure and stateless:
// callers pass the courier pool (typically prefiltered by the repository's
// radius query) and the matcher re-checks eligibility, scores each candidate
// and sorts descending by total.
//
// Ties keep the input order: the sort is stable and no extra tie-break rule
// is applied.
type Matcher struct {
	scorer Scorer
}

// NewMatcher creates a Matcher on top of the given scorer.
func NewMatcher(scorer Scorer) Matcher {
	return Matcher{scorer: scorer}
}

// FindCandidates returns the ranked eligible couriers for the pickup point,
// truncated to limit (limit <= 0 means no truncation).
func (m Matcher) FindCandidates(
	couriers []*courier.Courier,
	pickup kernel.GeoPoint,
	attrs order.Attributes,
	radiusKm float64,
	limit int,
) ([]Candidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%v is not positive", radiusKm))
	}

	eligible := lo.Filter(couriers, func(c *courier.Courier, _ int) bool {
		return m.isEligible(c, pickup, attrs, radiusKm)
	})

	candidates := make([]Candidate, 0, len(eligible))
	for _, c := range eligible {
		score, err := m.scorer.Score(c, pickup, attrs, radiusKm)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{Courier: c, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score.Total > candidates[j].Score.Total
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// FindBest returns the single highest-scoring eligible courier, or
// ErrNoCandidates when the radius holds none.
func (m Matcher) FindBest(
	couriers []*courier.Courier,
	pickup kernel.GeoPoint,
	attrs order.Attributes,
	radiusKm float64,
) (Candidate, error) {
	candidates, err := m.FindCandidates(couriers, pickup, attrs, radiusKm, 1)
	if err != nil {
		return Candidate{}, err
	}
	if len(candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	return candidates[0], nil
}

// isEligible applies the candidate filter: active account, online, known
// position inside the radius, rating floor (unrated couriers pass, lack of
// evidence is not a penalty) and a physically possible load.
func (m Matcher) isEligible(c *courier.Courier, pickup kernel.GeoPoint, attrs order.Attributes, radiusKm float64) bool {
	if c == nil || c.Validate() != nil {
		return false
	}
	if c.Status() != courier.StatusActive || !c.IsAvailable() || c.Position() == nil {
		return false
	}
	if c.RatingCount() > 0 && c.RatingAvg() < m.scorer.Config().MinEligibleRating {
		return false
	}
	if attrs.WeightKg > c.Vehicle().MaxLoadKg() {
		return false
	}
	return pickup.DistanceKmTo(*c.Position()) <= radiusKm
}
