package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "resident"
)

// User is an authenticated person. Residents are linked to one unit;
// staff users administer the whole association.
type User struct {
	ID         uuid.UUID `json:"id"`
	Auth0ID    string    `json:"auth0Id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name"`
	Phone      *string   `json:"phone,omitempty"`
	IsStaff    bool      `json:"isStaff"`
	IsActive   bool      `json:"isActive"`
	UnitNumber *int32    `json:"unitNumber,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Role derives the caller role from the staff flag
func (u *User) Role() Role {
	if u.IsStaff {
		return RoleAdmin
	}
	return RoleResident
}

// Principal is the identity attached to a request after authentication
type Principal struct {
	UserID     uuid.UUID
	Role       Role
	UnitNumber *int32
}

// IsAdmin reports whether the principal may use administrative operations
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// CanAccessUnit reports whether the principal may read data of a unit
func (p *Principal) CanAccessUnit(unitNumber int32) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	return p.UnitNumber != nil && *p.UnitNumber == unitNumber
}

// UserAccessUpdate is what an administrator may change on a user
type UserAccessUpdate struct {
	IsActive   *bool
	IsStaff    *bool
	UnitNumber *int32
	ClearUnit  bool
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByAuth0ID(ctx context.Context, auth0ID string) (*User, error)
	CreateOrGetByAuth0ID(ctx context.Context, user *User) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateAccess(ctx context.Context, id uuid.UUID, update UserAccessUpdate) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone *string) (*User, error)
}
