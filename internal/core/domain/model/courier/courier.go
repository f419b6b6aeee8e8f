package courier

import (
	"errors"
	"fmt"
	"time"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/guard"
)

// recentAssignmentWindow caps how many past assignment outcomes are kept on
// the aggregate. Only this window feeds the response-rate score.
const recentAssignmentWindow = 30

var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly
	// initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
)

// AccountStatus is the administrative standing of a courier account.
// Only active couriers are ever considered for dispatch.
type AccountStatus string

const (
	StatusActive      AccountStatus = "active"
	StatusSuspended   AccountStatus = "suspended"
	StatusDeactivated AccountStatus = "deactivated"
)

// AccountStatusFromString parses a stored account status name.
func AccountStatusFromString(s string) (AccountStatus, error) {
	switch st := AccountStatus(s); st {
	case StatusActive, StatusSuspended, StatusDeactivated:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("accountStatus",
			fmt.Errorf("unknown account status %q", s))
	}
}

// String returns the stored name of the account status.
func (s AccountStatus) String() string { return string(s) }

// AssignmentOutcome records how one past assignment ended. The recent window
// of outcomes drives the response-rate component of the dispatch score.
type AssignmentOutcome struct {
	OrderID   kernel.UUID
	Completed bool
	At        time.Time
}

// Courier is the courier profile aggregate. It carries everything dispatch
// needs to decide whether and how well a courier fits an order: vehicle,
// availability, last reported position, rating, recent assignment outcomes
// and the current active delivery load.
//
// Invariants:
//   - suspended or deactivated couriers are never available
//   - the rating average always reflects exactly ratingCount submitted scores
//   - the recent outcome list never exceeds the response-rate window
type Courier struct {
	id    kernel.UUID
	name  string
	phone string

	vehicle VehicleType

	status    AccountStatus
	available bool

	position   *kernel.GeoPoint
	lastSeenAt *time.Time

	ratingAvg   float64
	ratingCount int

	activeOrderCount  int
	recentAssignments []AssignmentOutcome

	guard guard.ConstructorGuard
}

// NewCourier registers a courier. The account starts active but offline, with
// no rating and no known position.
func NewCourier(id kernel.UUID, name, phone string, vehicle VehicleType) (*Courier, error) {
	if err := errors.Join(
		id.Validate(),
		vehicle.Validate(),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}

	return &Courier{
		id:      id,
		name:    name,
		phone:   phone,
		vehicle: vehicle,
		status:  StatusActive,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourierParams carries the persisted state needed to rebuild a
// Courier.
type RestoreCourierParams struct {
	ID                kernel.UUID
	Name              string
	Phone             string
	Vehicle           VehicleType
	Status            AccountStatus
	Available         bool
	Position          *kernel.GeoPoint
	LastSeenAt        *time.Time
	RatingAvg         float64
	RatingCount       int
	ActiveOrderCount  int
	RecentAssignments []AssignmentOutcome
}

// RestoreCourier rebuilds the aggregate from persistence, re-checking the
// availability invariant and trimming the outcome window.
func RestoreCourier(p RestoreCourierParams) (*Courier, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.Vehicle.Validate(),
	); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, ErrNameIsRequired
	}
	if p.Available && p.Status != StatusActive {
		return nil, errs.NewValueIsInvalidErrorWithCause("available",
			fmt.Errorf("%s courier cannot be available", p.Status))
	}
	if p.ActiveOrderCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("activeOrderCount",
			fmt.Errorf("%d is negative", p.ActiveOrderCount))
	}

	recent := p.RecentAssignments
	if len(recent) > recentAssignmentWindow {
		recent = recent[len(recent)-recentAssignmentWindow:]
	}

	return &Courier{
		id:                p.ID,
		name:              p.Name,
		phone:             p.Phone,
		vehicle:           p.Vehicle,
		status:            p.Status,
		available:         p.Available,
		position:          p.Position,
		lastSeenAt:        p.LastSeenAt,
		ratingAvg:         p.RatingAvg,
		ratingCount:       p.RatingCount,
		activeOrderCount:  p.ActiveOrderCount,
		recentAssignments: recent,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Courier was built through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Phone returns the courier's contact number.
func (c *Courier) Phone() string { return c.phone }

// Vehicle returns the courier's vehicle type.
func (c *Courier) Vehicle() VehicleType { return c.vehicle }

// Status returns the administrative account status.
func (c *Courier) Status() AccountStatus { return c.status }

// IsAvailable reports whether the courier is online and accepting work.
func (c *Courier) IsAvailable() bool { return c.available }

// Position returns the last reported position, nil if never reported.
func (c *Courier) Position() *kernel.GeoPoint { return c.position }

// LastSeenAt returns when the position was last reported, nil if never.
func (c *Courier) LastSeenAt() *time.Time { return c.lastSeenAt }

// RatingAvg returns the running average of submitted ratings, 0 when unrated.
func (c *Courier) RatingAvg() float64 { return c.ratingAvg }

// RatingCount returns how many ratings were submitted.
func (c *Courier) RatingCount() int { return c.ratingCount }

// ActiveOrderCount returns the number of deliveries currently in flight.
func (c *Courier) ActiveOrderCount() int { return c.activeOrderCount }

// RecentAssignments returns the retained outcome window, oldest first.
func (c *Courier) RecentAssignments() []AssignmentOutcome {
	out := make([]AssignmentOutcome, len(c.recentAssignments))
	copy(out, c.recentAssignments)
	return out
}

// ResponseStats returns how many of the retained assignments completed,
// alongside the window size.
func (c *Courier) ResponseStats() (completed, total int) {
	for _, a := range c.recentAssignments {
		if a.Completed {
			completed++
		}
	}
	return completed, len(c.recentAssignments)
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// UpdatePosition records a fresh position report.
func (c *Courier) UpdatePosition(position kernel.GeoPoint, at time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = &position
	c.lastSeenAt = &at
	return nil
}

// GoOnline marks the courier available for dispatch. Only active accounts
// with a known position may go online.
func (c *Courier) GoOnline() error {
	if c.status != StatusActive {
		return errs.NewCourierUnavailableError(c.id.String(),
			fmt.Sprintf("account is %s", c.status))
	}
	if c.position == nil {
		return errs.NewCourierUnavailableError(c.id.String(), "position unknown")
	}

	c.available = true
	return nil
}

// GoOffline marks the courier unavailable. In-flight deliveries are not
// affected.
func (c *Courier) GoOffline() {
	c.available = false
}

// Suspend blocks the account from dispatch and forces it offline.
func (c *Courier) Suspend() {
	c.status = StatusSuspended
	c.available = false
}

// Reinstate returns a suspended account to active standing. The courier still
// has to go online explicitly.
func (c *Courier) Reinstate() error {
	if c.status != StatusSuspended {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot reinstate %s courier", c.status))
	}

	c.status = StatusActive
	return nil
}

// AddRating folds one client rating (1 to 5) into the running average.
func (c *Courier) AddRating(score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("rating", score, 1, 5)
	}

	c.ratingAvg = (c.ratingAvg*float64(c.ratingCount) + float64(score)) / float64(c.ratingCount+1)
	c.ratingCount++
	return nil
}

// ValidateCanAccept checks the courier can take a new delivery right now.
// Eligibility relative to a specific order (radius, vehicle fit, minimum
// rating) is the matcher's concern; this is the courier's own state only.
func (c *Courier) ValidateCanAccept() error {
	if c.status != StatusActive {
		return errs.NewCourierUnavailableError(c.id.String(),
			fmt.Sprintf("account is %s", c.status))
	}
	if !c.available {
		return errs.NewCourierUnavailableError(c.id.String(), "courier is offline")
	}
	if c.position == nil {
		return errs.NewCourierUnavailableError(c.id.String(), "position unknown")
	}
	return nil
}

// BeginDelivery claims a new delivery slot after re-checking acceptability.
func (c *Courier) BeginDelivery() error {
	if err := c.ValidateCanAccept(); err != nil {
		return err
	}

	c.activeOrderCount++
	return nil
}

// CompleteDelivery releases a delivery slot and records the outcome in the
// response-rate window.
func (c *Courier) CompleteDelivery(orderID kernel.UUID, completed bool, at time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if c.activeOrderCount == 0 {
		return errs.NewValueIsInvalidErrorWithCause("activeOrderCount",
			errors.New("no active delivery to complete"))
	}

	c.activeOrderCount--
	c.recentAssignments = append(c.recentAssignments, AssignmentOutcome{
		OrderID:   orderID,
		Completed: completed,
		At:        at,
	})
	if len(c.recentAssignments) > recentAssignmentWindow {
		c.recentAssignments = c.recentAssignments[len(c.recentAssignments)-recentAssignmentWindow:]
	}
	return nil
}
