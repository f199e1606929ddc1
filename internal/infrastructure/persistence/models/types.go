package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB stores a free-form object as a JSON column.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}

	bytes, err := coerceBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, j)
}

// StringArray stores a list of strings as a JSON column.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	bytes, err := coerceBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// Int64Array stores a list of int64 as a JSON column.
type Int64Array []int64

func (a Int64Array) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Int64Array) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	bytes, err := coerceBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// UintArray stores a list of uint as a JSON column.
type UintArray []uint

func (a UintArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *UintArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	bytes, err := coerceBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// IntArray stores a list of int as a JSON column.
type IntArray []int

func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *IntArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	bytes, err := coerceBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// coerceBytes accepts []byte or string column payloads; sqlite hands back
// strings where mysql hands back bytes.
func coerceBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T for JSON scan", value)
	}
}
