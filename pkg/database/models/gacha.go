package models

import (
	"time"

	"github.com/google/uuid"
)

// Gacha represents a configured randomized-draw item collection in the database
type Gacha struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	Title       string      `gorm:"index;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Category    string      `gorm:"index" json:"category,omitempty"`
	Thumbnail   string      `gorm:"type:text" json:"thumbnail,omitempty"`
	RarityRates RarityRates `gorm:"type:jsonb" json:"rarity_rates"`
	AuthorID    uuid.UUID   `gorm:"type:uuid;index" json:"author_id"`
	CreatedAt   time.Time   `gorm:"index;default:now()" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"default:now()" json:"updated_at"`

	// Relationships
	Items []GachaItem `gorm:"foreignKey:GachaID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// GachaItem represents one drawable item owned by exactly one gacha
type GachaItem struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()" json:"id"`
	GachaID uuid.UUID `gorm:"type:uuid;index;not null" json:"gacha_id"`
	Name    string    `gorm:"not null" json:"name"`
	Rarity  string    `gorm:"index;not null" json:"rarity"`
	ImgSrc  string    `gorm:"type:text" json:"img_src,omitempty"`
	Weight  int       `gorm:"not null;default:1" json:"weight"`
}
