package models

import (
	"time"

	"github.com/google/uuid"
)

// ErrorLog represents a persisted warning or error from any component
type ErrorLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Component string    `gorm:"index;not null" json:"component"`
	Level     string    `gorm:"index;not null" json:"level"` // WARN, ERROR
	Message   string    `gorm:"type:text;not null" json:"message"`
	Error     string    `gorm:"type:text" json:"error"`
	Fields    JSONMap   `gorm:"type:jsonb" json:"fields"`
	UserID    string    `gorm:"index" json:"user_id"`  // Optional user context
	GachaID   string    `gorm:"index" json:"gacha_id"` // Optional gacha context
	Route     string    `gorm:"index" json:"route"`    // Optional route context
	Timestamp time.Time `gorm:"index;not null;default:now()" json:"timestamp"`
}
