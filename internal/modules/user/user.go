package user

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which surfaces of the platform a user can reach.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleVendor     Role = "VENDOR"
)

// User represents an account in the system. Vendor users carry the id of the
// vendor whose catalog and orders they manage; super-admins have none.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	VendorID     *uuid.UUID `json:"vendor_id,omitempty"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
