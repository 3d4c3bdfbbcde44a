package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// User-specific validation errors
var (
	// ErrUserIDEmpty is returned when a user ID is empty or nil.
	ErrUserIDEmpty = errors.New("user ID cannot be empty")

	// ErrUserTenantIDEmpty is returned when a user's tenant ID is empty or nil.
	ErrUserTenantIDEmpty = errors.New("user tenant ID cannot be empty")

	// ErrUserNameEmpty is returned when a user's display name is empty.
	ErrUserNameEmpty = errors.New("user name cannot be empty")

	// ErrUserRoleInvalid is returned when a user's role is not a known value.
	ErrUserRoleInvalid = errors.New("user role must be admin, manager or member")
)

// UserRole classifies what a tenant user may do within their tenant.
type UserRole string

// Supported user roles.
const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleMember  UserRole = "member"
)

// emailRegex is a simple pattern for basic email validation.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a team member of a tenant who executes tasks.
// HashedPassword is never serialized to JSON.
type User struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Name           string    `json:"name"`
	Role           UserRole  `json:"role"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new active User with a generated ID and timestamps.
// The password field holds the plaintext password only until the store
// hashes it on creation. Returns an error if validation fails.
func NewUser(tenantID uuid.UUID, email, password, name string, role UserRole) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		TenantID:       tenantID,
		Email:          email,
		HashedPassword: password,
		Name:           name,
		Role:           role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}

	if u.TenantID == uuid.Nil {
		return ErrUserTenantIDEmpty
	}

	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	if u.Name == "" {
		return ErrUserNameEmpty
	}

	switch u.Role {
	case RoleAdmin, RoleManager, RoleMember:
	default:
		return ErrUserRoleInvalid
	}

	return nil
}
