package gacha

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yumeno/gachapon-api/pkg/logging"
)

const (
	// MinDrawCount and MaxDrawCount bound a single roll batch. Out-of-range
	// counts are clamped, not rejected.
	MinDrawCount = 1
	MaxDrawCount = 100
)

// ClampCount normalizes a requested draw count into [MinDrawCount, MaxDrawCount].
func ClampCount(count int) int {
	if count < MinDrawCount {
		return MinDrawCount
	}
	if count > MaxDrawCount {
		return MaxDrawCount
	}
	return count
}

// Profile is the catalog view of a gacha the roll paths need.
type Profile struct {
	ID    uuid.UUID
	Title string
	Rates map[string]float64
}

// Catalog is the read-only gacha catalog. Implementations return
// ErrGachaNotFound for unknown ids.
type Catalog interface {
	GachaByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	ItemsByGachaID(ctx context.Context, id uuid.UUID) ([]Item, error)
}

// Record is one persisted draw. Records are append-only: nothing in this
// package ever updates or deletes them.
type Record struct {
	UserID  uuid.UUID
	GachaID uuid.UUID
	ItemID  uuid.UUID
	Rarity  string
}

// RollWriter inserts records inside an open transaction.
type RollWriter interface {
	Insert(rec Record) error
}

// History persists roll batches. SaveDraws runs fn inside a single
// transaction and must roll everything back when fn returns an error.
type History interface {
	SaveDraws(ctx context.Context, fn func(w RollWriter) error) error
}

// DrawResult is one drawn item as returned to the caller.
type DrawResult struct {
	ItemID  uuid.UUID `json:"item_id"`
	Name    string    `json:"name"`
	Rarity  string    `json:"rarity"`
	ImgSrc  string    `json:"img_src"`
	GachaID uuid.UUID `json:"gacha_id"`
}

// Executor performs weighted roll batches: it loads a gacha's item pool and
// writes one history record per draw, all-or-nothing.
type Executor struct {
	catalog Catalog
	history History
	rng     RandomSource
	logger  logging.Logger
}

// NewExecutor creates a roll executor. A nil rng falls back to the
// production source.
func NewExecutor(catalog Catalog, history History, rng RandomSource, logger logging.Logger) *Executor {
	if rng == nil {
		rng = DefaultSource()
	}
	return &Executor{
		catalog: catalog,
		history: history,
		rng:     rng,
		logger:  logger,
	}
}

// Roll draws count items from the gacha's flat weighted pool and records each
// draw inside one transaction. Draws are independent and with replacement.
// On any persistence failure nothing is kept and no results are returned.
func (e *Executor) Roll(ctx context.Context, gachaID, userID uuid.UUID, count int) ([]DrawResult, error) {
	count = ClampCount(count)

	if _, err := e.catalog.GachaByID(ctx, gachaID); err != nil {
		return nil, err
	}

	items, err := e.catalog.ItemsByGachaID(ctx, gachaID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItemsAvailable
	}

	pool := BuildFlatPool(items)

	results := make([]DrawResult, 0, count)
	err = e.history.SaveDraws(ctx, func(w RollWriter) error {
		for i := 0; i < count; i++ {
			item, err := pool.Draw(e.rng)
			if err != nil {
				return err
			}
			results = append(results, DrawResult{
				ItemID:  item.ID,
				Name:    item.Name,
				Rarity:  item.Rarity,
				ImgSrc:  item.ImgSrc,
				GachaID: gachaID,
			})
			if err := w.Insert(Record{
				UserID:  userID,
				GachaID: gachaID,
				ItemID:  item.ID,
				Rarity:  item.Rarity,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if e.logger != nil {
			e.logger.Error("roll batch aborted", err, map[string]interface{}{
				"gacha_id": gachaID.String(),
				"user_id":  userID.String(),
				"count":    count,
			})
		}
		return nil, fmt.Errorf("%w: %v", ErrRollPersist, err)
	}

	return results, nil
}

// Preview draws count items with the tiered strategy and persists nothing.
// This mirrors the capsule-preview path, where tier rates drive the pick and
// an empty tier falls back to the whole item set.
func (e *Executor) Preview(ctx context.Context, gachaID uuid.UUID, count int) ([]DrawResult, error) {
	count = ClampCount(count)

	profile, err := e.catalog.GachaByID(ctx, gachaID)
	if err != nil {
		return nil, err
	}

	items, err := e.catalog.ItemsByGachaID(ctx, gachaID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItemsAvailable
	}

	pool := NewTieredPool(OrderedTierRates(profile.Rates), GroupItemsByTier(items))

	results := make([]DrawResult, 0, count)
	for i := 0; i < count; i++ {
		item, err := pool.Draw(e.rng)
		if err != nil {
			return nil, err
		}
		results = append(results, DrawResult{
			ItemID:  item.ID,
			Name:    item.Name,
			Rarity:  item.Rarity,
			ImgSrc:  item.ImgSrc,
			GachaID: gachaID,
		})
	}
	return results, nil
}
