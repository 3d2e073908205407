// internal/model/customer.go
package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Customer struct {
	ID           string       `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Phone        string       `db:"phone" json:"phone"`
	Measurements Measurements `db:"measurements" json:"measurements"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time   `db:"updated_at" json:"updated_at,omitempty"`
}

// HasMeasurementType reports whether a capitalized type name ("Top") is already recorded.
func (c *Customer) HasMeasurementType(typeName string) bool {
	_, ok := c.Measurements[typeName]
	return ok
}

// Measurements maps a capitalized measurement type ("Top", "Blouse", "Salwar")
// to that type's field values. Stored as a JSONB column.
type Measurements map[string]MeasurementSet

// MeasurementSet maps a field id ("chest", "waist") to its value.
type MeasurementSet map[string]Measure

// Measure holds a measurement in text form. It decodes from either a JSON
// number or a JSON string and always encodes as a string.
type Measure string

func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Measure(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("measurement must be a number or string: %w", err)
	}
	*m = Measure(n.String())
	return nil
}

// Value encodes as a JSON string; lib/pq would send []byte as bytea.
func (m Measurements) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Measurements) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = Measurements{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported measurements column type %T", src)
	}
	out := Measurements{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Clone copies the map so callers can merge without touching the original.
func (m Measurements) Clone() Measurements {
	out := make(Measurements, len(m))
	for typeName, set := range m {
		cp := make(MeasurementSet, len(set))
		for k, v := range set {
			cp[k] = v
		}
		out[typeName] = cp
	}
	return out
}
