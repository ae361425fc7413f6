package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringSlice stores a string list as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		// nil 슬라이스인 경우 DB에 빈 JSON 배열 문자열 "[]"로 저장
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // []byte 대신 string 반환
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	b, err := clobBytes(value)
	if err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if b == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// JSON stores any JSON-encodable value in a CLOB column. Valid is false for
// SQL NULL.
type JSON[T any] struct {
	Data  T
	Valid bool
}

func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{Data: v, Valid: true}
}

// Value implements the driver.Valuer interface
func (j JSON[T]) Value() (driver.Value, error) {
	if !j.Valid {
		return nil, nil
	}
	b, err := json.Marshal(j.Data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (j *JSON[T]) Scan(value interface{}) error {
	b, err := clobBytes(value)
	if err != nil {
		return fmt.Errorf("JSON Scan: %w", err)
	}
	var zero T
	j.Data = zero
	j.Valid = false
	if b == nil {
		return nil
	}
	if err := json.Unmarshal(b, &j.Data); err != nil {
		return err
	}
	j.Valid = true
	return nil
}

// clobBytes normalizes a CLOB column value. NULL, empty and "null" all map
// to nil.
func clobBytes(value interface{}) ([]byte, error) {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New("unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
