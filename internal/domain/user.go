package domain

import "time"

// UserRole controls access to staff and admin surfaces
type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleStaff UserRole = "staff"
	RoleAdmin UserRole = "admin"
)

// User represents a registered guest or staff member
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsStaff reports whether the user can access staff surfaces
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleStaff
}

// GuestProfile carries the user-derived facts the offer engine consumes.
// CompletedStays classifies the guest: 0 = new, >=1 = returning, >=3 = vip.
type GuestProfile struct {
	UserID         int
	CompletedStays int
}

// MatchesUserType reports whether the guest falls in the targeted segment
func (g *GuestProfile) MatchesUserType(target TargetUserType) bool {
	switch target {
	case TargetAllUsers:
		return true
	case TargetNewUser:
		return g.CompletedStays == 0
	case TargetReturningUser:
		return g.CompletedStays >= 1
	case TargetVIP:
		return g.CompletedStays >= 3
	default:
		// Unknown segment never matches; kept explicit rather than a
		// fallthrough so new segments fail validation loudly.
		return false
	}
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByID returns a user by id
	GetByID(id int) (*User, error)
	// GetByEmail returns a user by email
	GetByEmail(email string) (*User, error)
	// Create inserts a new user and fills in its id
	Create(user *User) error
}
