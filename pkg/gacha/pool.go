package gacha

import (
	"sort"

	"github.com/google/uuid"
)

// Item is one drawable entry of a gacha's pool.
type Item struct {
	ID     uuid.UUID
	Name   string
	Rarity string
	ImgSrc string
	Weight int
}

// SelectionStrategy draws a single item from a prepared pool. The flat and
// tiered strategies have different statistical behavior and are chosen
// explicitly by the caller, never unified.
type SelectionStrategy interface {
	Draw(rng RandomSource) (Item, error)
}

// FlatPool is the weighted multiset used by the roll endpoint: each item
// appears max(1, weight) times, so a uniform index pick selects an item with
// probability weight / sum(weights).
type FlatPool []Item

// BuildFlatPool expands items into a FlatPool. Input order is preserved and
// non-positive weights count as 1.
func BuildFlatPool(items []Item) FlatPool {
	pool := make(FlatPool, 0, len(items))
	for _, item := range items {
		w := item.Weight
		if w < 1 {
			w = 1
		}
		for i := 0; i < w; i++ {
			pool = append(pool, item)
		}
	}
	return pool
}

// Draw picks one item by uniform index.
func (p FlatPool) Draw(rng RandomSource) (Item, error) {
	if len(p) == 0 {
		return Item{}, ErrNoItemsAvailable
	}
	return p[rng.IntN(len(p))], nil
}

// TierRate pairs a rarity tier with its percentage rate. A slice keeps the
// configured enumeration order, which the tier draw walks deterministically.
type TierRate struct {
	Tier string
	Rate float64
}

// canonicalTiers is the rate-map key order the original editor produces.
var canonicalTiers = []string{"N", "R", "SR", "SSR"}

// OrderedTierRates flattens a rarity-rate map into the canonical N/R/SR/SSR
// order, with any extra tiers appended in sorted order so the walk stays
// deterministic.
func OrderedTierRates(rates map[string]float64) []TierRate {
	ordered := make([]TierRate, 0, len(rates))
	seen := make(map[string]bool, len(rates))
	for _, tier := range canonicalTiers {
		if rate, ok := rates[tier]; ok {
			ordered = append(ordered, TierRate{Tier: tier, Rate: rate})
			seen[tier] = true
		}
	}
	extras := make([]string, 0, len(rates))
	for tier := range rates {
		if !seen[tier] {
			extras = append(extras, tier)
		}
	}
	sort.Strings(extras)
	for _, tier := range extras {
		ordered = append(ordered, TierRate{Tier: tier, Rate: rates[tier]})
	}
	return ordered
}

// TieredPool is the preview-path strategy: pick a rarity tier by its rate
// first, then pick uniformly among that tier's items.
type TieredPool struct {
	rates       []TierRate
	itemsByTier map[string][]Item
	union       []Item
	total       float64
}

// NewTieredPool builds a tiered pool over the given rates and per-tier item
// groups. The union fallback is assembled in rate order, then leftover tiers
// in sorted order, so draws are reproducible under a seeded source.
func NewTieredPool(rates []TierRate, itemsByTier map[string][]Item) *TieredPool {
	p := &TieredPool{rates: rates, itemsByTier: itemsByTier}
	seen := make(map[string]bool, len(rates))
	for _, tr := range rates {
		p.total += tr.Rate
		if !seen[tr.Tier] {
			p.union = append(p.union, itemsByTier[tr.Tier]...)
			seen[tr.Tier] = true
		}
	}
	extras := make([]string, 0, len(itemsByTier))
	for tier := range itemsByTier {
		if !seen[tier] {
			extras = append(extras, tier)
		}
	}
	sort.Strings(extras)
	for _, tier := range extras {
		p.union = append(p.union, itemsByTier[tier]...)
	}
	return p
}

// GroupItemsByTier buckets items by their rarity tier, preserving input order
// within each bucket.
func GroupItemsByTier(items []Item) map[string][]Item {
	byTier := make(map[string][]Item)
	for _, item := range items {
		byTier[item.Rarity] = append(byTier[item.Rarity], item)
	}
	return byTier
}

// DrawTier selects a rarity tier using the configured rates. A non-positive
// rate total degenerates to the first configured tier.
func (p *TieredPool) DrawTier(rng RandomSource) string {
	if len(p.rates) == 0 {
		return ""
	}
	if p.total <= 0 {
		return p.rates[0].Tier
	}
	r := rng.Float64() * p.total
	for _, tr := range p.rates {
		r -= tr.Rate
		if r <= 0 {
			return tr.Tier
		}
	}
	return p.rates[len(p.rates)-1].Tier
}

// Draw picks a tier by rate, then one item uniformly from that tier. A tier
// with no items falls back to the union of every tier's items.
func (p *TieredPool) Draw(rng RandomSource) (Item, error) {
	tier := p.DrawTier(rng)
	pool := p.itemsByTier[tier]
	if len(pool) == 0 {
		pool = p.union
	}
	if len(pool) == 0 {
		return Item{}, ErrNoItemsAvailable
	}
	return pool[rng.IntN(len(pool))], nil
}
