package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap is a jsonb column holding arbitrary structured fields.
type JSONMap map[string]interface{}

// Value implements driver.Valuer for jsonb storage
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for jsonb retrieval
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}

// RarityRates maps a rarity tier name (e.g. N, R, SR, SSR) to its percentage
// rate. Rates are not required to sum to 100 at the storage layer; the editor
// enforces that before saving.
type RarityRates map[string]float64

// Value implements driver.Valuer for jsonb storage
func (r RarityRates) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for jsonb retrieval
func (r *RarityRates) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return errors.New("unsupported type for RarityRates")
	}
}
