package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is an open, schema-less string-keyed mapping stored as a JSON
// column. Values keep the shapes the decoder produces: string, float64, bool,
// nil, []interface{} or nested map[string]interface{}.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		m = JSONMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// StringList is an ordered list of strings stored as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// JSONList is an ordered list of arbitrary values stored as a JSON column.
type JSONList []interface{}

// Value implements driver.Valuer.
func (l JSONList) Value() (driver.Value, error) {
	if l == nil {
		l = JSONList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *JSONList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// scanJSON decodes a JSON column value. MySQL drivers hand JSON columns back
// as []byte or string depending on configuration.
func scanJSON(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json column source %T", src)
	}
}
