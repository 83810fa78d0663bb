package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SpecMap stores category-specific product attributes ("RAM" -> "8GB") as an
// ordered string map. Insertion order survives serialization, so the
// storefront can render spec tables in the order the admin entered them.
// The column is stored as JSON text.
type SpecMap struct {
	*orderedmap.OrderedMap[string, string]
}

// NewSpecMap returns an empty, ready-to-use SpecMap.
func NewSpecMap() SpecMap {
	return SpecMap{orderedmap.New[string, string]()}
}

// Set adds or replaces an attribute and returns the map for chaining. A
// zero-value SpecMap is usable; callers must keep the returned value.
func (m SpecMap) Set(key, value string) SpecMap {
	if m.OrderedMap == nil {
		m.OrderedMap = orderedmap.New[string, string]()
	}
	m.OrderedMap.Set(key, value)
	return m
}

// MarshalJSON renders the map as a JSON object in insertion order. A nil map
// marshals as an empty object.
func (m SpecMap) MarshalJSON() ([]byte, error) {
	if m.OrderedMap == nil {
		return []byte("{}"), nil
	}
	return m.OrderedMap.MarshalJSON()
}

// UnmarshalJSON replaces the map contents with the given JSON object.
func (m *SpecMap) UnmarshalJSON(data []byte) error {
	m.OrderedMap = orderedmap.New[string, string]()
	return m.OrderedMap.UnmarshalJSON(data)
}

// Value implements driver.Valuer so GORM can persist the map as text.
func (m SpecMap) Value() (driver.Value, error) {
	if m.OrderedMap == nil || m.Len() == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading the text column back.
func (m *SpecMap) Scan(src any) error {
	m.OrderedMap = orderedmap.New[string, string]()
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return m.UnmarshalJSON(v)
	case string:
		if v == "" {
			return nil
		}
		return m.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported specs column type %T", src)
	}
}

// GormDataType tells GORM which column type to migrate to.
func (SpecMap) GormDataType() string {
	return "text"
}
