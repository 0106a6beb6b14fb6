package gacha

import "errors"

var (
	// ErrGachaNotFound is returned when the requested gacha does not exist.
	ErrGachaNotFound = errors.New("gacha not found")

	// ErrNoItemsAvailable is returned when a gacha owns no drawable items,
	// or a tiered pool has nothing to fall back to.
	ErrNoItemsAvailable = errors.New("gacha has no items")

	// ErrRollPersist wraps any failure while writing a roll batch. The whole
	// batch is rolled back before this is returned.
	ErrRollPersist = errors.New("failed to persist roll batch")
)
