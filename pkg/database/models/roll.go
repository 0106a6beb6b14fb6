package models

import (
	"time"

	"github.com/google/uuid"
)

// GachaRoll is the audit row of one drawn item for one user. Rows are
// append-only: created by the roll executor, never updated or deleted.
type GachaRoll struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	GachaID   uuid.UUID `gorm:"type:uuid;index;not null" json:"gacha_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null" json:"item_id"`
	Rarity    string    `gorm:"index;not null" json:"rarity"`
	CreatedAt time.Time `gorm:"index;default:now()" json:"created_at"`
}
