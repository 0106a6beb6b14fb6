package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"github.com/yumeno/gachapon-api/pkg/gacha"
	"gorm.io/gorm"
)

// RollRepository handles database operations for roll history. It is the
// gacha.History collaborator of the roll executor.
type RollRepository struct {
	db *gorm.DB
}

var _ gacha.History = (*RollRepository)(nil)

func NewRollRepository(db *gorm.DB) *RollRepository {
	return &RollRepository{db: db}
}

// SaveDraws runs fn inside a single transaction. Any error from fn rolls the
// whole batch back, so partial roll batches are never recorded.
func (r *RollRepository) SaveDraws(ctx context.Context, fn func(w gacha.RollWriter) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&rollWriter{tx: tx})
	})
}

// rollWriter inserts records on the open transaction handle
type rollWriter struct {
	tx *gorm.DB
}

func (w *rollWriter) Insert(rec gacha.Record) error {
	return w.tx.Create(&models.GachaRoll{
		UserID:  rec.UserID,
		GachaID: rec.GachaID,
		ItemID:  rec.ItemID,
		Rarity:  rec.Rarity,
	}).Error
}

// RollsByUserID returns the user's roll history, newest first
func (r *RollRepository) RollsByUserID(userID uuid.UUID, limit int) ([]models.GachaRoll, error) {
	var rolls []models.GachaRoll
	q := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rolls).Error; err != nil {
		return nil, err
	}
	return rolls, nil
}

// CountRollsByGachaID returns how many rolls were recorded for a gacha
func (r *RollRepository) CountRollsByGachaID(gachaID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.GachaRoll{}).Where("gacha_id = ?", gachaID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
