package order

import (
	"fmt"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/domain/model/kernel"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/pkg/errs"
)

// Role identifies the kind of actor driving a transition.
type Role int

const (
	// RoleUnknown is the invalid zero value.
	RoleUnknown Role = iota

	// RoleClient is the order's owner.
	RoleClient

	// RoleCourier is a delivery courier.
	RoleCourier

	// RoleAdmin is a back-office dispatcher or administrator.
	RoleAdmin

	// RoleSystem is the dispatch engine acting on its own behalf,
	// e.g. the proactive assignment job.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleClient:  "client",
		RoleCourier: "courier",
		RoleAdmin:   "admin",
		RoleSystem:  "system",
	}
}

// RoleFromString parses a role name.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String implements fmt.Stringer.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the Role is one of the defined roles.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the identity on whose behalf a transition is requested.
// The Order methods check it against the transition table's actor
// preconditions (e.g. only the assigned courier may mark pickup).
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// SystemActor returns the engine's own identity, used by the proactive
// dispatch job.
func SystemActor() Actor {
	return Actor{id: kernel.NewUUID(), role: RoleSystem}
}

// ID returns the actor's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks the actor carries a valid id and role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
