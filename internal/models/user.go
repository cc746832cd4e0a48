package models

import "time"

// Role is the fixed role of an account.
type Role string

const (
	RoleOwner    Role = "Owner"
	RoleCustomer Role = "Customer"
	RoleDriver   Role = "Driver"
	// RoleAny is only meaningful to the authorization guard: any authenticated caller.
	RoleAny Role = "Any"
)

// IsAccountRole reports whether r can be assigned to an account.
func (r Role) IsAccountRole() bool {
	return r == RoleOwner || r == RoleCustomer || r == RoleDriver
}

// User represents an account of the platform.
type User struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email         string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Username      string    `json:"username" gorm:"type:varchar(100)"`
	Password      string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialised
	EmailVerified bool      `json:"emailVerified" gorm:"default:false"`
	Role          Role      `json:"role" gorm:"type:varchar(20)"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
