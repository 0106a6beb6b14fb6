package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account able to roll gachas in the database
type User struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash        string     `gorm:"not null" json:"-"`
	DisplayName         string     `json:"display_name,omitempty"`
	Role                string     `gorm:"index;not null;default:'user'" json:"role"`
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	CreatedAt           time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"default:now()" json:"updated_at"`
}

// IsLocked reports whether the account is currently locked out from logging in
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
