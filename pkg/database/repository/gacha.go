package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"github.com/yumeno/gachapon-api/pkg/gacha"
	"gorm.io/gorm"
)

// GachaRepository handles database operations for the Gacha catalog. It is
// also the read-only gacha.Catalog used by the roll executor.
type GachaRepository struct {
	db *gorm.DB
}

var _ gacha.Catalog = (*GachaRepository)(nil)

func NewGachaRepository(db *gorm.DB) *GachaRepository {
	return &GachaRepository{db: db}
}

// ListGachas returns catalog summaries, newest first
func (r *GachaRepository) ListGachas() ([]models.Gacha, error) {
	var gachas []models.Gacha
	if err := r.db.
		Select("id", "title", "thumbnail", "category", "rarity_rates", "created_at").
		Order("created_at DESC").
		Find(&gachas).Error; err != nil {
		return nil, err
	}
	return gachas, nil
}

// GetGachaByID returns one gacha with its items preloaded
func (r *GachaRepository) GetGachaByID(id uuid.UUID) (*models.Gacha, error) {
	var g models.Gacha
	if err := r.db.Preload("Items").First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gacha.ErrGachaNotFound
		}
		return nil, err
	}
	return &g, nil
}

// CreateGacha inserts a gacha together with its items in one transaction
func (r *GachaRepository) CreateGacha(g *models.Gacha) error {
	return r.db.Create(g).Error
}

// UpdateGacha updates catalog metadata. Items are managed separately.
func (r *GachaRepository) UpdateGacha(id uuid.UUID, g *models.Gacha) error {
	return r.db.Model(&models.Gacha{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":        g.Title,
		"description":  g.Description,
		"category":     g.Category,
		"thumbnail":    g.Thumbnail,
		"rarity_rates": g.RarityRates,
	}).Error
}

// DeleteGacha removes a gacha; its items cascade at the database level
func (r *GachaRepository) DeleteGacha(id uuid.UUID) error {
	return r.db.Delete(&models.Gacha{}, "id = ?", id).Error
}

// GachaByID implements gacha.Catalog
func (r *GachaRepository) GachaByID(ctx context.Context, id uuid.UUID) (*gacha.Profile, error) {
	var g models.Gacha
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gacha.ErrGachaNotFound
		}
		return nil, err
	}
	return &gacha.Profile{
		ID:    g.ID,
		Title: g.Title,
		Rates: g.RarityRates,
	}, nil
}

// ItemsByGachaID implements gacha.Catalog
func (r *GachaRepository) ItemsByGachaID(ctx context.Context, id uuid.UUID) ([]gacha.Item, error) {
	var rows []models.GachaItem
	if err := r.db.WithContext(ctx).Where("gacha_id = ?", id).Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]gacha.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, gacha.Item{
			ID:     row.ID,
			Name:   row.Name,
			Rarity: row.Rarity,
			ImgSrc: row.ImgSrc,
			Weight: row.Weight,
		})
	}
	return items, nil
}
