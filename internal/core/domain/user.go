package domain

import "time"

// UserRole controls which operations a user may perform.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleAccountant  UserRole = "ACCOUNTANT"
	RoleDistributor UserRole = "DISTRIBUTOR"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleDistributor:
		return true
	}
	return false
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// HasRole reports whether the user holds any of the given roles.
func (u User) HasRole(roles ...UserRole) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
